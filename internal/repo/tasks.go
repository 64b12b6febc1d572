package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skillswap/internal/domain"
)

const taskColumns = `task_id,title,description,tags_json,location,time,status,posted_by,timestamp,accepted_by,accepted_at,completed_at`

func scanTask(row scanner) (domain.Task, error) {
	var t domain.Task
	var tagsJSON string
	var acceptedBy, acceptedAt, completedAt sql.NullString
	err := row.Scan(&t.TaskID, &t.Title, &t.Description, &tagsJSON, &t.Location, &t.Time, &t.Status, &t.PostedBy, &t.Timestamp, &acceptedBy, &acceptedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	if err != nil {
		return t, err
	}
	t.Tags = []string{}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
			return t, fmt.Errorf("task %s tags: %w", t.TaskID, err)
		}
	}
	t.AcceptedBy = stringPtr(acceptedBy)
	t.AcceptedAt = stringPtr(acceptedAt)
	t.CompletedAt = stringPtr(completedAt)
	return t, nil
}

func (r Repo) InsertTask(ctx context.Context, tx *sql.Tx, t domain.Task) error {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO tasks(`+taskColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.TaskID, t.Title, t.Description, string(tagsJSON), t.Location, t.Time, t.Status, t.PostedBy, t.Timestamp,
		nullableStringPtr(t.AcceptedBy), nullableStringPtr(t.AcceptedAt), nullableStringPtr(t.CompletedAt))
	return err
}

func (r Repo) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return scanTask(r.DB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id=?`, id))
}

func (r Repo) GetTaskTx(ctx context.Context, tx *sql.Tx, id string) (domain.Task, error) {
	return scanTask(tx.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id=?`, id))
}

type TaskFilters struct {
	Status     string
	PostedBy   string
	AcceptedBy string
	// Involving matches tasks posted or accepted by the user.
	Involving string
	Search    string
	Tag       string
	Location  string
	Limit     int
}

func (r Repo) ListTasks(ctx context.Context, f TaskFilters) ([]domain.Task, error) {
	var clauses []string
	var args []any
	if f.Status != "" {
		clauses = append(clauses, "status=?")
		args = append(args, f.Status)
	}
	if f.PostedBy != "" {
		clauses = append(clauses, "posted_by=?")
		args = append(args, f.PostedBy)
	}
	if f.AcceptedBy != "" {
		clauses = append(clauses, "accepted_by=?")
		args = append(args, f.AcceptedBy)
	}
	if f.Involving != "" {
		clauses = append(clauses, "(posted_by=? OR accepted_by=?)")
		args = append(args, f.Involving, f.Involving)
	}
	if strings.TrimSpace(f.Search) != "" {
		clauses = append(clauses, "(lower(title) LIKE ? OR lower(description) LIKE ?)")
		args = append(args, likePattern(f.Search), likePattern(f.Search))
	}
	if strings.TrimSpace(f.Tag) != "" {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM json_each(tasks.tags_json) WHERE lower(json_each.value)=?)")
		args = append(args, strings.ToLower(strings.TrimSpace(f.Tag)))
	}
	if strings.TrimSpace(f.Location) != "" {
		clauses = append(clauses, "lower(location) LIKE ?")
		args = append(args, likePattern(f.Location))
	}
	query := `SELECT ` + taskColumns + ` FROM tasks ` + whereClause(clauses) + `ORDER BY timestamp DESC, task_id DESC`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// AcceptTask moves an open task to accepted. It reports false when the task
// was no longer open, so two concurrent accepts cannot both win.
func (r Repo) AcceptTask(ctx context.Context, tx *sql.Tx, id, userID, at string) (bool, error) {
	res, err := tx.ExecContext(ctx, `UPDATE tasks SET status='accepted', accepted_by=?, accepted_at=? WHERE task_id=? AND status='open'`, userID, at, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CompleteTask moves a task accepted by userID to completed.
func (r Repo) CompleteTask(ctx context.Context, tx *sql.Tx, id, userID, at string) (bool, error) {
	res, err := tx.ExecContext(ctx, `UPDATE tasks SET status='completed', completed_at=? WHERE task_id=? AND status='accepted' AND accepted_by=?`, at, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r Repo) DeleteTask(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE task_id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
