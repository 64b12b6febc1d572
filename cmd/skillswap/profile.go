package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"skillswap/internal/app"
	"skillswap/internal/forms"
	"skillswap/internal/style"
	skillswapsdk "skillswap/sdk/go"
)

func (c *cli) profileCmd() *cobra.Command {
	p := &cobra.Command{Use: "profile", Short: "Manage your profile"}
	p.AddCommand(c.profileShowCmd())
	p.AddCommand(c.profileCreateCmd())
	p.AddCommand(c.profileUpdateCmd())
	p.AddCommand(c.profileDeactivateCmd())
	p.AddCommand(c.profileReactivateCmd())
	return p
}

func (c *cli) printUser(res *skillswapsdk.Response) error {
	if c.jsonOutput() {
		return c.printRaw(res)
	}
	var u skillswapsdk.User
	if err := res.Decode(&u); err != nil {
		return err
	}
	c.printFields([][2]string{
		{"ID", u.ID},
		{"Name", u.FullName},
		{"Email", u.Email},
		{"Skill", u.Skill},
		{"Bio", u.Bio},
		{"Active", strconv.FormatBool(u.IsActive)},
	})
	return nil
}

func (c *cli) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.GetProfile(ctx)
				if err != nil {
					return err
				}
				return c.printUser(res)
			})
		},
	}
}

func (c *cli) profileCreateCmd() *cobra.Command {
	var f forms.SignupForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := f.User()
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.CreateUser(ctx, u)
				if err != nil {
					return err
				}
				return c.printUser(res)
			})
		},
	}
	cmd.Flags().StringVar(&f.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.Skill, "skill", "", "main skill")
	cmd.Flags().StringVar(&f.Bio, "bio", "", "short bio")
	return cmd
}

func (c *cli) profileUpdateCmd() *cobra.Command {
	var name, skill, bio string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			upd, err := forms.ProfileForm{
				FullName: optionalString(cmd, "name", name),
				Skill:    optionalString(cmd, "skill", skill),
				Bio:      optionalString(cmd, "bio", bio),
			}.Update()
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.UpdateProfile(ctx, upd)
				if err != nil {
					return err
				}
				return c.printUser(res)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&skill, "skill", "", "main skill")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")
	return cmd
}

func (c *cli) profileDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.DeactivateAccount(ctx)
				if err != nil {
					return err
				}
				return c.printMessage(res, "account deactivated")
			})
		},
	}
}

func (c *cli) profileReactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate [user-id]",
		Short: "Reactivate an account (yours by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				target := a.Session.Store().ActorID()
				if len(args) == 1 {
					target = args[0]
				}
				res, err := a.Client.ReactivateUser(ctx, target)
				if err != nil {
					return err
				}
				return c.printMessage(res, "account reactivated")
			})
		},
	}
}

func (c *cli) usersCmd() *cobra.Command {
	u := &cobra.Command{Use: "users", Short: "Browse other users"}
	u.AddCommand(c.usersListCmd())
	return u
}

func (c *cli) usersListCmd() *cobra.Command {
	var q skillswapsdk.UserQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.ListUsers(ctx, q)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return c.printRaw(res)
				}
				var body struct {
					Items []skillswapsdk.User `json:"items"`
					Count int                 `json:"count"`
				}
				if err := res.Decode(&body); err != nil {
					return err
				}
				tw := c.newTable("ID", "Name", "Skill", "Email")
				for _, u := range body.Items {
					tw.AppendRow(table.Row{u.ID, u.FullName, u.Skill, u.Email})
				}
				tw.Render()
				fmt.Fprintln(c.out, style.Dim.Render(fmt.Sprintf("%d users", body.Count)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&q.Skill, "skill", "", "skill filter")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "max users")
	return cmd
}
