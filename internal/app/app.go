// Package app wires config, identity, client and the optional mock backend.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/db"
	"skillswap/internal/engine"
	"skillswap/internal/migrate"
	"skillswap/internal/mock"
	skillswapsdk "skillswap/sdk/go"
)

// Options for Open. UserID, when set, replaces the configured identity.
type Options struct {
	Config   *config.Config
	UserID   string
	Logger   *log.Logger
	InMemory bool
}

// App is a started session with a client bound to it.
type App struct {
	Config  *config.Config
	Session *skillswapsdk.Session
	Client  *skillswapsdk.Client
	// Backend is nil in http mode.
	Backend *Backend
}

// Backend is the in-process mock API and its storage.
type Backend struct {
	DB      *sql.DB
	Engine  engine.Engine
	Handler http.Handler
}

// Close releases the database.
func (b *Backend) Close() error {
	if b == nil || b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// Identity maps the configured test user onto the SDK user type.
func Identity(cfg *config.Config, userID string) skillswapsdk.User {
	u := skillswapsdk.User{
		ID:       cfg.Identity.ID,
		FullName: cfg.Identity.FullName,
		Email:    cfg.Identity.Email,
		Skill:    cfg.Identity.Skill,
		IsActive: true,
	}
	if id := strings.TrimSpace(userID); id != "" && id != u.ID {
		u = skillswapsdk.User{ID: id, FullName: id, IsActive: true}
	}
	return u
}

// OpenBackend opens the mock database, migrates it and seeds it when configured.
func OpenBackend(ctx context.Context, cfg *config.Config, identity skillswapsdk.User, logger *log.Logger, inMemory bool) (*Backend, error) {
	conn, err := db.Open(db.Config{Workspace: cfg.Mock.Workspace, InMemory: inMemory})
	if err != nil {
		return nil, fmt.Errorf("open mock db: %w", err)
	}
	b := &Backend{DB: conn, Engine: engine.New(conn)}
	if _, err := migrate.Migrate(ctx, conn); err != nil {
		b.Close()
		return nil, fmt.Errorf("migrate mock db: %w", err)
	}
	if cfg.Mock.Seed {
		profile := engine.UserInput{FullName: identity.FullName, Email: identity.Email, Skill: identity.Skill}
		if profile.Email == "" {
			profile.Email = identity.ID + "@example.com"
		}
		if err := b.Engine.Seed(ctx, identity.ID, profile); err != nil {
			b.Close()
			return nil, fmt.Errorf("seed mock db: %w", err)
		}
	}
	b.Handler, err = mock.New(mock.Config{Engine: b.Engine, Logger: logger})
	if err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// Open builds the client for cfg.API.Mode and starts the session. Nothing is
// sent to the backend before the session holds an identity.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	identity := Identity(cfg, opts.UserID)
	session := skillswapsdk.NewSession(nil)

	a := &App{Config: cfg, Session: session}
	baseURL := cfg.API.BaseURL
	var httpClient *http.Client
	if cfg.API.Mode == config.ModeMock {
		a.Backend, err = OpenBackend(ctx, cfg, identity, opts.Logger, opts.InMemory)
		if err != nil {
			return nil, err
		}
		baseURL = mock.BaseURL
		httpClient = mock.NewClient(a.Backend.Handler)
	}
	client := skillswapsdk.New(baseURL, session.Store())
	client.HTTPClient = httpClient
	client.Logger = opts.Logger
	if timeout > 0 {
		client.Timeout = timeout
	}
	a.Client = client

	session.Start(identity)
	return a, nil
}

// Close releases the mock backend, if any.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Backend.Close()
}
