package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"skillswap/internal/events"
	"skillswap/internal/repo"
)

// TimeLayout is fixed width so stored timestamps sort lexically.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

var (
	ErrInvalid   = errors.New("invalid")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// RuleError carries the user-facing message of a broken marketplace rule.
// Kind is one of the sentinel errors above or repo.ErrNotFound.
type RuleError struct {
	Kind error
	Msg  string
}

func (e RuleError) Error() string { return e.Msg }
func (e RuleError) Unwrap() error { return e.Kind }

func invalid(msg string) error   { return RuleError{Kind: ErrInvalid, Msg: msg} }
func forbidden(msg string) error { return RuleError{Kind: ErrForbidden, Msg: msg} }
func conflict(msg string) error  { return RuleError{Kind: ErrConflict, Msg: msg} }
func notFound(msg string) error  { return RuleError{Kind: repo.ErrNotFound, Msg: msg} }

type Engine struct {
	DB     *sql.DB
	Repo   repo.Repo
	Events events.Writer
	Now    func() time.Time
	NewID  func() string
}

func New(db *sql.DB) Engine {
	return Engine{
		DB:     db,
		Repo:   repo.Repo{DB: db},
		Events: events.Writer{},
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Engine) timestamp() string {
	return e.now().UTC().Format(TimeLayout)
}

func (e Engine) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e Engine) writer() events.Writer {
	w := e.Events
	if w.Now == nil {
		w.Now = e.now
	}
	return w
}

// inTx runs fn in a transaction and commits when it returns nil.
func (e Engine) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
