package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"skillswap/internal/app"
	"skillswap/internal/forms"
	"skillswap/internal/style"
	skillswapsdk "skillswap/sdk/go"
)

func (c *cli) ratingCmd() *cobra.Command {
	r := &cobra.Command{
		Use:   "rating",
		Short: "Rate users and read ratings",
		Long:  "A rating needs a completed task that both users worked on. Each rater can rate a user once per task.",
	}
	r.AddCommand(c.ratingListCmd("received", "Ratings you received", func(ctx context.Context, a *app.App, _ []string) (*skillswapsdk.Response, error) {
		return a.Client.GetMyRatings(ctx)
	}))
	r.AddCommand(c.ratingListCmd("given", "Ratings you gave", func(ctx context.Context, a *app.App, _ []string) (*skillswapsdk.Response, error) {
		return a.Client.GetMyGivenRatings(ctx)
	}))
	r.AddCommand(c.ratingUserCmd())
	r.AddCommand(c.ratingListCmd("task <task-id>", "Ratings left on a task", func(ctx context.Context, a *app.App, args []string) (*skillswapsdk.Response, error) {
		return a.Client.GetTaskRatings(ctx, args[0])
	}))
	r.AddCommand(c.ratingCreateCmd())
	r.AddCommand(c.ratingFlagCmd())
	return r
}

func (c *cli) printRatings(res *skillswapsdk.Response) error {
	if c.jsonOutput() {
		return c.printRaw(res)
	}
	list := skillswapsdk.TransformRatingList(res.Body)
	tw := c.newTable("ID", "From", "To", "Task", "Rating", "Comment", "Flagged")
	for _, r := range list.Ratings {
		tw.AppendRow(table.Row{r.RatingID, r.FromUserID, r.ToUserID, r.TaskID, style.Stars(r.Rating), r.Comment, r.IsFlagged})
	}
	tw.Render()
	fmt.Fprintln(c.out, style.Dim.Render(fmt.Sprintf("%d ratings", list.Count)))
	if s := list.Statistics; s.TotalRatings > 0 {
		fmt.Fprintf(c.out, "%s %.2f average over %d (%s)\n", style.ArrowPrefix, s.AverageRating, s.TotalRatings, distribution(s.RatingDistribution))
	}
	return nil
}

func distribution(d map[string]int) string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s★ %d", k, d[k]))
	}
	return strings.Join(parts, ", ")
}

func (c *cli) ratingListCmd(use, short string, fetch func(context.Context, *app.App, []string) (*skillswapsdk.Response, error)) *cobra.Command {
	positional := cobra.NoArgs
	if strings.Contains(use, "<") {
		positional = cobra.ExactArgs(1)
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := fetch(ctx, a, args)
				if err != nil {
					return err
				}
				return c.printRatings(res)
			})
		},
	}
}

func (c *cli) ratingUserCmd() *cobra.Command {
	var includeFlagged bool
	cmd := &cobra.Command{
		Use:   "user <user-id>",
		Short: "Ratings a user received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.GetUserRatings(ctx, args[0], includeFlagged)
				if err != nil {
					return err
				}
				return c.printRatings(res)
			})
		},
	}
	cmd.Flags().BoolVar(&includeFlagged, "include-flagged", false, "include ratings under moderation")
	return cmd
}

func (c *cli) ratingCreateCmd() *cobra.Command {
	var f forms.RatingForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Rate a user for a completed task",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := f.Draft()
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.CreateRating(ctx, draft)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return c.printRaw(res)
				}
				var r skillswapsdk.Rating
				if err := res.Decode(&r); err != nil {
					return err
				}
				style.Successf(c.out, "rated %s %s on task %s (%s)", r.ToUserID, style.Stars(r.Rating), r.TaskID, r.RatingID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.ToUserID, "to", "", "user to rate")
	cmd.Flags().StringVar(&f.TaskID, "task", "", "completed task id")
	cmd.Flags().IntVar(&f.Rating, "rating", 0, "1 to 5")
	cmd.Flags().StringVar(&f.Comment, "comment", "", "optional comment")
	return cmd
}

func (c *cli) ratingFlagCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "flag <rating-id>",
		Short: "Send a rating to moderation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := forms.FlagForm{RatingID: args[0], Reason: reason}.Check()
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.FlagRating(ctx, f.RatingID, f.Reason)
				if err != nil {
					return err
				}
				return c.printMessage(res, "rating flagged")
			})
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "why the rating should be reviewed")
	return cmd
}

func (c *cli) reportCmd() *cobra.Command {
	r := &cobra.Command{Use: "report", Short: "Report users"}
	r.AddCommand(c.reportCreateCmd())
	r.AddCommand(c.reportListCmd("sent", "Reports you filed", func(ctx context.Context, a *app.App) (*skillswapsdk.Response, error) {
		return a.Client.GetMyReports(ctx)
	}))
	r.AddCommand(c.reportListCmd("received", "Reports filed against you", func(ctx context.Context, a *app.App) (*skillswapsdk.Response, error) {
		return a.Client.GetReportsAgainstMe(ctx)
	}))
	return r
}

func (c *cli) reportCreateCmd() *cobra.Command {
	var f forms.ReportForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Report a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := f.Draft()
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.CreateReport(ctx, draft)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return c.printRaw(res)
				}
				var rep skillswapsdk.Report
				if err := res.Decode(&rep); err != nil {
					return err
				}
				style.Successf(c.out, "reported %s (%s)", rep.ToUserID, rep.ReportID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.ToUserID, "to", "", "user to report")
	cmd.Flags().StringVar(&f.TaskID, "task", "", "related task id")
	cmd.Flags().StringVar(&f.Reason, "reason", "", "what happened")
	return cmd
}

func (c *cli) reportListCmd(use, short string, fetch func(context.Context, *app.App) (*skillswapsdk.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := fetch(ctx, a)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return c.printRaw(res)
				}
				var reps []skillswapsdk.Report
				if err := res.Decode(&reps); err != nil {
					return err
				}
				tw := c.newTable("ID", "From", "To", "Task", "Reason", "Created")
				for _, r := range reps {
					tw.AppendRow(table.Row{r.ReportID, r.FromUserID, r.ToUserID, r.TaskID, r.Reason, r.CreatedAt})
				}
				tw.Render()
				return nil
			})
		},
	}
}
