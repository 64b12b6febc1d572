package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"skillswap/internal/app"
	"skillswap/internal/config"
	"skillswap/internal/forms"
	"skillswap/internal/style"
	skillswapsdk "skillswap/sdk/go"
)

// cli holds per-invocation state so commands can be built and run in tests.
type cli struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	c := &cli{v: viper.New(), out: os.Stdout, errOut: os.Stderr}
	if err := c.rootCmd().ExecuteContext(ctx); err != nil {
		c.fail(err)
		stop()
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "skillswap",
		Short: "SkillSwap marketplace client",
		Long: `SkillSwap lets neighbors post small tasks, accept each other's work and
leave ratings once a task is completed.
- Identity: every request carries x-user-id. Use --user-id to act as someone else.
- Mock mode: --mode mock runs the API in-process over a local SQLite file (.skillswap/mock.db).
- Output: tables by default, the raw backend JSON with --json.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	c.addPersistentFlags(root)
	root.AddCommand(c.profileCmd())
	root.AddCommand(c.usersCmd())
	root.AddCommand(c.taskCmd())
	root.AddCommand(c.ratingCmd())
	root.AddCommand(c.reportCmd())
	root.AddCommand(c.overviewCmd())
	root.AddCommand(c.mockCmd())
	root.AddCommand(c.configCmd())
	return root
}

func (c *cli) addPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default <workspace>/skillswap.yml)")
	flags.String("api-url", "", "backend base url")
	flags.String("mode", "", "backend mode: http or mock")
	flags.String("user-id", "", "act as this user id")
	flags.Bool("json", false, "output JSON")
	flags.StringP("workspace", "w", "", "workspace directory for the mock backend")
	for _, name := range []string{"config", "api-url", "mode", "user-id", "json", "workspace"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}
	c.v.SetEnvPrefix("SKILLSWAP")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
}

// loadConfig reads the config file and applies global flag overrides.
func (c *cli) loadConfig() (*config.Config, error) {
	path := c.v.GetString("config")
	if path == "" {
		path = config.Path(c.v.GetString("workspace"))
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(c.v.GetString("api-url")); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(c.v.GetString("mode")); v != "" {
		cfg.API.Mode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(c.v.GetString("workspace")); v != "" {
		cfg.Mock.Workspace = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) logger() *log.Logger {
	return log.New(c.errOut, "", log.LstdFlags)
}

func (c *cli) withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	a, err := app.Open(ctx, app.Options{
		Config: cfg,
		UserID: c.v.GetString("user-id"),
		Logger: c.logger(),
	})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// fail prints err as a red notice. Backend errors show their normalized detail.
func (c *cli) fail(err error) {
	var apiErr *skillswapsdk.APIError
	var formErr *forms.ValidationError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode != 0:
		style.Errorf(c.errOut, "%s (status %d)", apiErr.Detail, apiErr.StatusCode)
	case errors.As(err, &apiErr):
		style.Errorf(c.errOut, "%s", apiErr.Detail)
	case errors.As(err, &formErr):
		style.Errorf(c.errOut, "%s", formErr.Error())
	default:
		style.Errorf(c.errOut, "%v", err)
	}
}

// printRaw writes the backend body as indented JSON.
func (c *cli) printRaw(res *skillswapsdk.Response) error {
	var v any
	if err := json.Unmarshal(res.Body, &v); err != nil {
		_, err = c.out.Write(res.Body)
		return err
	}
	return c.printJSON(v)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) jsonOutput() bool {
	return c.v.GetBool("json")
}

func (c *cli) newTable(header ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	tw.AppendHeader(table.Row(header))
	return tw
}

// printFields renders label/value pairs as a two column table.
func (c *cli) printFields(rows [][2]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	for _, r := range rows {
		tw.AppendRow(table.Row{style.Bold.Render(r[0]), r[1]})
	}
	tw.Render()
}

// printMessage prints a {"message": ...} body as a success notice.
func (c *cli) printMessage(res *skillswapsdk.Response, fallback string) error {
	if c.jsonOutput() {
		return c.printRaw(res)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := res.Decode(&body); err != nil || body.Message == "" {
		body.Message = fallback
	}
	style.Successf(c.out, "%s", body.Message)
	return nil
}

func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func (c *cli) configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Inspect client config",
		Long:  "Config lives in skillswap.yml: the backend (api), the synthetic identity used before a real login exists, and the mock backend settings. SKILLSWAP_* variables and global flags override it.",
	}
	cfg.AddCommand(c.configShowCmd())
	cfg.AddCommand(c.configInitCmd())
	return cfg
}

func (c *cli) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return c.printJSON(cfg)
			}
			b, err := cfg.ToYAML()
			if err != nil {
				return err
			}
			_, err = c.out.Write(b)
			return err
		},
	}
}

func (c *cli) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default skillswap.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.v.GetString("config")
			if path == "" {
				path = config.Path(c.v.GetString("workspace"))
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault()), 0o644); err != nil {
				return err
			}
			style.Successf(c.out, "wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
