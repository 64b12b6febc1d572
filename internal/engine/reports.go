package engine

import (
	"context"
	"database/sql"
	"strings"

	"skillswap/internal/domain"
	"skillswap/internal/events"
	"skillswap/internal/repo"
)

// ReportInput is the body of a new report.
type ReportInput struct {
	ToUserID string
	TaskID   string
	Reason   string
}

func (e Engine) CreateReport(ctx context.Context, actorID string, in ReportInput) (domain.Report, error) {
	rep := domain.Report{
		ReportID:   e.newID(),
		TaskID:     strings.TrimSpace(in.TaskID),
		FromUserID: actorID,
		ToUserID:   strings.TrimSpace(in.ToUserID),
		Reason:     strings.TrimSpace(in.Reason),
		CreatedAt:  e.timestamp(),
	}
	if rep.ToUserID == "" {
		return domain.Report{}, invalid("to_user_id is required")
	}
	if rep.Reason == "" {
		return domain.Report{}, invalid("reason is required")
	}
	if rep.ToUserID == actorID {
		return domain.Report{}, invalid("You cannot report yourself")
	}
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.Repo.InsertReport(ctx, tx, rep); err != nil {
			return err
		}
		return e.writer().Append(ctx, tx, events.ReportCreated, "report", rep.ReportID, actorID,
			events.EventPayload{"to_user_id": rep.ToUserID, "task_id": rep.TaskID})
	})
	if err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

func (e Engine) SentReports(ctx context.Context, actorID string) ([]domain.Report, error) {
	return e.Repo.ListReports(ctx, repo.ReportFilters{FromUserID: actorID})
}

func (e Engine) ReceivedReports(ctx context.Context, actorID string) ([]domain.Report, error) {
	return e.Repo.ListReports(ctx, repo.ReportFilters{ToUserID: actorID})
}
