package repo

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/domain"
)

const ratingColumns = `rating_id,from_user_id,to_user_id,task_id,rating,comment,timestamp,is_flagged,flag_reason,flagged_by,flagged_at`

func scanRating(row scanner) (domain.Rating, error) {
	var rt domain.Rating
	var flagged int
	var reason, by, at sql.NullString
	err := row.Scan(&rt.RatingID, &rt.FromUserID, &rt.ToUserID, &rt.TaskID, &rt.Rating, &rt.Comment, &rt.Timestamp, &flagged, &reason, &by, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return rt, ErrNotFound
	}
	rt.IsFlagged = flagged != 0
	rt.FlagReason = stringPtr(reason)
	rt.FlaggedBy = stringPtr(by)
	rt.FlaggedAt = stringPtr(at)
	return rt, err
}

func (r Repo) InsertRating(ctx context.Context, tx *sql.Tx, rt domain.Rating) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO ratings(`+ratingColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rt.RatingID, rt.FromUserID, rt.ToUserID, rt.TaskID, rt.Rating, rt.Comment, rt.Timestamp, boolInt(rt.IsFlagged),
		nullableStringPtr(rt.FlagReason), nullableStringPtr(rt.FlaggedBy), nullableStringPtr(rt.FlaggedAt))
	return err
}

func (r Repo) GetRatingTx(ctx context.Context, tx *sql.Tx, id string) (domain.Rating, error) {
	return scanRating(tx.QueryRowContext(ctx, `SELECT `+ratingColumns+` FROM ratings WHERE rating_id=?`, id))
}

// RatingExistsTx reports whether from already rated to for the task.
func (r Repo) RatingExistsTx(ctx context.Context, tx *sql.Tx, from, to, taskID string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM ratings WHERE from_user_id=? AND to_user_id=? AND task_id=?`, from, to, taskID).Scan(&n)
	return n > 0, err
}

type RatingFilters struct {
	FromUserID     string
	ToUserID       string
	TaskID         string
	IncludeFlagged bool
	Limit          int
}

func (r Repo) ListRatings(ctx context.Context, f RatingFilters) ([]domain.Rating, error) {
	var clauses []string
	var args []any
	if f.FromUserID != "" {
		clauses = append(clauses, "from_user_id=?")
		args = append(args, f.FromUserID)
	}
	if f.ToUserID != "" {
		clauses = append(clauses, "to_user_id=?")
		args = append(args, f.ToUserID)
	}
	if f.TaskID != "" {
		clauses = append(clauses, "task_id=?")
		args = append(args, f.TaskID)
	}
	if !f.IncludeFlagged {
		clauses = append(clauses, "is_flagged=0")
	}
	query := `SELECT ` + ratingColumns + ` FROM ratings ` + whereClause(clauses) + `ORDER BY timestamp DESC, rating_id DESC`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Rating{}
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rt)
	}
	return res, rows.Err()
}

func (r Repo) FlagRating(ctx context.Context, tx *sql.Tx, id, reason, by, at string) error {
	res, err := tx.ExecContext(ctx, `UPDATE ratings SET is_flagged=1, flag_reason=?, flagged_by=?, flagged_at=? WHERE rating_id=? AND is_flagged=0`, reason, by, at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
