package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"skillswap/internal/app"
	"skillswap/internal/forms"
	"skillswap/internal/style"
	skillswapsdk "skillswap/sdk/go"
)

func (c *cli) taskCmd() *cobra.Command {
	t := &cobra.Command{
		Use:   "task",
		Short: "Browse and manage tasks",
		Long:  "Tasks move open -> accepted -> completed. Only the poster can delete an open task and only the acceptor can complete it.",
	}
	t.AddCommand(c.taskOpenCmd())
	t.AddCommand(c.taskListCmd("posted", "Tasks you posted", func(ctx context.Context, a *app.App) (*skillswapsdk.Response, error) {
		return a.Client.GetMyPostedTasks(ctx)
	}))
	t.AddCommand(c.taskListCmd("accepted", "Tasks you accepted", func(ctx context.Context, a *app.App) (*skillswapsdk.Response, error) {
		return a.Client.GetMyAcceptedTasks(ctx)
	}))
	t.AddCommand(c.taskListCmd("all", "Every task", func(ctx context.Context, a *app.App) (*skillswapsdk.Response, error) {
		return a.Client.ListTasks(ctx)
	}))
	t.AddCommand(c.taskShowCmd())
	t.AddCommand(c.taskCreateCmd())
	t.AddCommand(c.taskActionCmd("accept", "Accept an open task", "task accepted", func(ctx context.Context, a *app.App, id string) (*skillswapsdk.Response, error) {
		return a.Client.AcceptTask(ctx, id)
	}))
	t.AddCommand(c.taskActionCmd("complete", "Complete a task you accepted", "task completed", func(ctx context.Context, a *app.App, id string) (*skillswapsdk.Response, error) {
		return a.Client.CompleteTask(ctx, id)
	}))
	t.AddCommand(c.taskDeleteCmd())
	return t
}

func (c *cli) printTasks(res *skillswapsdk.Response, filter string) error {
	if c.jsonOutput() {
		return c.printRaw(res)
	}
	list := skillswapsdk.TransformTaskList(res.Body)
	tasks := skillswapsdk.FilterTasks(list.Tasks, filter)
	tw := c.newTable("ID", "Title", "Status", "Tags", "Location", "Posted by")
	for _, t := range tasks {
		tw.AppendRow(table.Row{t.TaskID, t.Title, style.Status(t.Status), strings.Join(t.Tags, ", "), t.Location, t.PostedBy})
	}
	tw.Render()
	count := list.Count
	if filter != "" {
		count = len(tasks)
	}
	fmt.Fprintln(c.out, style.Dim.Render(fmt.Sprintf("%d tasks", count)))
	return nil
}

func (c *cli) taskOpenCmd() *cobra.Command {
	var q skillswapsdk.TaskQuery
	var filter string
	cmd := &cobra.Command{
		Use:   "open",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.GetOpenTasks(ctx, q)
				if err != nil {
					return err
				}
				return c.printTasks(res, filter)
			})
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "server side text search")
	cmd.Flags().StringVar(&q.Tag, "tag", "", "tag filter")
	cmd.Flags().StringVar(&q.Location, "location", "", "location filter")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "max tasks")
	cmd.Flags().StringVar(&filter, "filter", "", "keep tasks whose title or tags contain this text")
	return cmd
}

func (c *cli) taskListCmd(use, short string, fetch func(context.Context, *app.App) (*skillswapsdk.Response, error)) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := fetch(ctx, a)
				if err != nil {
					return err
				}
				return c.printTasks(res, filter)
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "keep tasks whose title or tags contain this text")
	return cmd
}

func (c *cli) printTask(res *skillswapsdk.Response) error {
	if c.jsonOutput() {
		return c.printRaw(res)
	}
	var t skillswapsdk.Task
	if err := res.Decode(&t); err != nil {
		return err
	}
	c.printFields([][2]string{
		{"ID", t.TaskID},
		{"Title", t.Title},
		{"Description", t.Description},
		{"Status", style.Status(t.Status)},
		{"Tags", strings.Join(t.Tags, ", ")},
		{"Location", t.Location},
		{"Time", t.Time},
		{"Posted by", t.PostedBy},
		{"Posted at", t.Timestamp},
		{"Accepted by", t.AcceptedBy},
		{"Completed at", t.CompletedAt},
	})
	return nil
}

func (c *cli) taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.GetTask(ctx, args[0])
				if err != nil {
					return err
				}
				return c.printTask(res)
			})
		},
	}
}

func (c *cli) taskCreateCmd() *cobra.Command {
	var f forms.TaskForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := f.Draft()
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.CreateTask(ctx, draft)
				if err != nil {
					return err
				}
				return c.printTask(res)
			})
		},
	}
	cmd.Flags().StringVar(&f.Title, "title", "", "task title")
	cmd.Flags().StringVar(&f.Description, "description", "", "what needs doing")
	cmd.Flags().StringVar(&f.Tags, "tags", "", "comma separated tags")
	cmd.Flags().StringVar(&f.Location, "location", "", "where")
	cmd.Flags().StringVar(&f.Time, "time", "", "when")
	return cmd
}

func (c *cli) taskActionCmd(use, short, done string, act func(context.Context, *app.App, string) (*skillswapsdk.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := act(ctx, a, args[0])
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return c.printRaw(res)
				}
				style.Successf(c.out, "%s: %s", done, args[0])
				return nil
			})
		},
	}
}

func (c *cli) taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete an open task you posted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				res, err := a.Client.DeleteTask(ctx, args[0])
				if err != nil {
					return err
				}
				return c.printMessage(res, "task deleted")
			})
		},
	}
}
