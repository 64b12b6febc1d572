package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"skillswap/internal/domain"
	"skillswap/internal/events"
	"skillswap/internal/repo"
)

// TaskInput is the body of a new task.
type TaskInput struct {
	Title       string
	Description string
	Tags        []string
	Location    string
	Time        string
}

func (e Engine) CreateTask(ctx context.Context, actorID string, in TaskInput) (domain.Task, error) {
	t := domain.Task{
		TaskID:      e.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Tags:        normalizeTags(in.Tags),
		Location:    strings.TrimSpace(in.Location),
		Time:        strings.TrimSpace(in.Time),
		Status:      domain.StatusOpen,
		PostedBy:    actorID,
		Timestamp:   e.timestamp(),
	}
	if t.Title == "" {
		return domain.Task{}, invalid("title is required")
	}
	if t.Description == "" {
		return domain.Task{}, invalid("description is required")
	}
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.Repo.InsertTask(ctx, tx, t); err != nil {
			return err
		}
		return e.writer().Append(ctx, tx, events.TaskCreated, "task", t.TaskID, actorID, events.EventPayload{"title": t.Title, "tags": t.Tags})
	})
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (e Engine) GetTask(ctx context.Context, id string) (domain.Task, error) {
	t, err := e.Repo.GetTask(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return t, notFound("Task not found")
	}
	return t, err
}

func (e Engine) getTaskTx(ctx context.Context, tx *sql.Tx, id string) (domain.Task, error) {
	t, err := e.Repo.GetTaskTx(ctx, tx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return t, notFound("Task not found")
	}
	return t, err
}

// OpenTasks lists open tasks newest first.
func (e Engine) OpenTasks(ctx context.Context, f repo.TaskFilters) ([]domain.Task, error) {
	f.Status = domain.StatusOpen
	f.PostedBy, f.AcceptedBy, f.Involving = "", "", ""
	return e.Repo.ListTasks(ctx, f)
}

func (e Engine) PostedTasks(ctx context.Context, actorID string) ([]domain.Task, error) {
	return e.Repo.ListTasks(ctx, repo.TaskFilters{PostedBy: actorID})
}

func (e Engine) AcceptedTasks(ctx context.Context, actorID string) ([]domain.Task, error) {
	return e.Repo.ListTasks(ctx, repo.TaskFilters{AcceptedBy: actorID})
}

func (e Engine) AllTasks(ctx context.Context) ([]domain.Task, error) {
	return e.Repo.ListTasks(ctx, repo.TaskFilters{})
}

// AcceptTask assigns an open task to actorID.
func (e Engine) AcceptTask(ctx context.Context, actorID, id string) (domain.Task, error) {
	var t domain.Task
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if t, err = e.getTaskTx(ctx, tx, id); err != nil {
			return err
		}
		if t.Status != domain.StatusOpen {
			return invalid("Task is already accepted or completed")
		}
		if t.PostedBy == actorID {
			return invalid("You cannot accept your own task")
		}
		ok, err := e.Repo.AcceptTask(ctx, tx, id, actorID, e.timestamp())
		if err != nil {
			return err
		}
		if !ok {
			return invalid("Task is already accepted or completed")
		}
		if t, err = e.Repo.GetTaskTx(ctx, tx, id); err != nil {
			return err
		}
		return e.writer().Append(ctx, tx, events.TaskAccepted, "task", id, actorID, events.EventPayload{"posted_by": t.PostedBy})
	})
	return t, err
}

// CompleteTask finishes a task; only its acceptor may do so.
func (e Engine) CompleteTask(ctx context.Context, actorID, id string) (domain.Task, error) {
	var t domain.Task
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if t, err = e.getTaskTx(ctx, tx, id); err != nil {
			return err
		}
		if t.Status != domain.StatusAccepted || t.AcceptedBy == nil || *t.AcceptedBy != actorID {
			return forbidden("Not allowed to complete this task")
		}
		ok, err := e.Repo.CompleteTask(ctx, tx, id, actorID, e.timestamp())
		if err != nil {
			return err
		}
		if !ok {
			return forbidden("Not allowed to complete this task")
		}
		if t, err = e.Repo.GetTaskTx(ctx, tx, id); err != nil {
			return err
		}
		return e.writer().Append(ctx, tx, events.TaskCompleted, "task", id, actorID, events.EventPayload{"posted_by": t.PostedBy})
	})
	return t, err
}

// DeleteTask removes an open task posted by actorID.
func (e Engine) DeleteTask(ctx context.Context, actorID, id string) error {
	return e.inTx(ctx, func(tx *sql.Tx) error {
		t, err := e.getTaskTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if t.PostedBy != actorID {
			return forbidden("You can only delete your own tasks")
		}
		if t.Status != domain.StatusOpen {
			return invalid("Only open tasks can be deleted")
		}
		if err := e.Repo.DeleteTask(ctx, tx, id); err != nil {
			return err
		}
		return e.writer().Append(ctx, tx, events.TaskDeleted, "task", id, actorID, events.EventPayload{"title": t.Title})
	})
}

// normalizeTags trims, drops blanks and removes case-insensitive duplicates.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
