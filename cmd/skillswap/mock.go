package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"skillswap/internal/app"
	"skillswap/internal/db"
	"skillswap/internal/engine"
	"skillswap/internal/migrate"
)

func (c *cli) mockCmd() *cobra.Command {
	m := &cobra.Command{
		Use:   "mock",
		Short: "Run or inspect the local mock backend",
	}
	m.AddCommand(c.mockServeCmd())
	m.AddCommand(c.mockLogCmd())
	return m
}

func (c *cli) mockServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Mock.Addr
			}
			ctx := cmd.Context()
			backend, err := app.OpenBackend(ctx, cfg, app.Identity(cfg, c.v.GetString("user-id")), c.logger(), false)
			if err != nil {
				return err
			}
			defer backend.Close()
			srv := &http.Server{Addr: addr, Handler: backend.Handler}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()
			fmt.Fprintf(c.out, "Serving SkillSwap mock API on http://%s (OpenAPI at /openapi.json, Swagger UI at /docs)\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default mock.addr)")
	return cmd
}

func (c *cli) mockLogCmd() *cobra.Command {
	var n int
	var evtType string
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent mock backend events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			conn, err := db.Open(db.Config{Workspace: cfg.Mock.Workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if _, err := migrate.Migrate(cmd.Context(), conn); err != nil {
				return err
			}
			events, err := engine.New(conn).LatestEvents(cmd.Context(), n, evtType)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return c.printJSON(events)
			}
			tw := c.newTable("ID", "Time", "Type", "Entity", "Actor")
			for _, e := range events {
				tw.AppendRow(table.Row{e.ID, e.TS, e.Type, e.EntityKind + ":" + e.EntityID, e.ActorID})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	cmd.Flags().StringVar(&evtType, "type", "", "event type filter")
	return cmd
}
