package repo

import (
	"context"
	"database/sql"

	"skillswap/internal/domain"
)

const reportColumns = `report_id,task_id,from_user_id,to_user_id,reason,created_at`

func (r Repo) InsertReport(ctx context.Context, tx *sql.Tx, rep domain.Report) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO reports(`+reportColumns+`) VALUES (?,?,?,?,?,?)`,
		rep.ReportID, rep.TaskID, rep.FromUserID, rep.ToUserID, rep.Reason, rep.CreatedAt)
	return err
}

type ReportFilters struct {
	FromUserID string
	ToUserID   string
}

func (r Repo) ListReports(ctx context.Context, f ReportFilters) ([]domain.Report, error) {
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
	rows, err := r.DB.QueryContext(ctx, `SELECT `+reportColumns+` FROM reports `+whereClause(clauses)+`ORDER BY created_at DESC, report_id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Report{}
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ReportID, &rep.TaskID, &rep.FromUserID, &rep.ToUserID, &rep.Reason, &rep.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, rep)
	}
	return res, rows.Err()
}
