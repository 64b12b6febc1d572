package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"skillswap/internal/app"
	"skillswap/internal/style"
	skillswapsdk "skillswap/sdk/go"
)

type overview struct {
	Profile   *skillswapsdk.User      `json:"profile"`
	OpenTasks skillswapsdk.TaskList   `json:"open_tasks"`
	Ratings   skillswapsdk.RatingList `json:"ratings"`
}

// loadOverview fetches the dashboard reads concurrently. The identity is read
// once per request, so all three carry the same actor.
func loadOverview(ctx context.Context, client skillswapsdk.API, limit int) (overview, error) {
	var (
		ov      overview
		profile skillswapsdk.User
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := client.GetProfile(ctx)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		return res.Decode(&profile)
	})
	g.Go(func() error {
		res, err := client.GetOpenTasks(ctx, skillswapsdk.TaskQuery{Limit: limit})
		if err != nil {
			return fmt.Errorf("open tasks: %w", err)
		}
		ov.OpenTasks = skillswapsdk.TransformTaskList(res.Body)
		return nil
	})
	g.Go(func() error {
		res, err := client.GetMyRatings(ctx)
		if err != nil {
			return fmt.Errorf("ratings: %w", err)
		}
		ov.Ratings = skillswapsdk.TransformRatingList(res.Body)
		return nil
	})
	if err := g.Wait(); err != nil {
		return overview{}, err
	}
	ov.Profile = &profile
	return ov, nil
}

func (c *cli) overviewCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Your profile, open tasks and rating summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				ov, err := loadOverview(ctx, a.Client, limit)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return c.printJSON(ov)
				}
				p := ov.Profile
				fmt.Fprintf(c.out, "%s %s (%s)\n", style.Heading("Signed in as"), p.FullName, p.ID)
				stats := ov.Ratings.Statistics
				fmt.Fprintf(c.out, "%s %.2f from %d ratings\n", style.Heading("Rating"), stats.AverageRating, stats.TotalRatings)
				fmt.Fprintln(c.out, style.Heading(fmt.Sprintf("Open tasks (%d)", ov.OpenTasks.Count)))
				for _, t := range ov.OpenTasks.Tasks {
					fmt.Fprintf(c.out, "  %s %s %s\n", style.ArrowPrefix, t.Title, style.Dim.Render(t.TaskID))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "open tasks to show")
	return cmd
}
