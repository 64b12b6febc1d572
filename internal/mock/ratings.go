package mock

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"skillswap/internal/domain"
	"skillswap/internal/engine"
)

// RatingLimit is the shared limit query of rating lists.
type RatingLimit struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"100"`
}

func ratingList(page engine.RatingPage) *response[RatingListResponse] {
	return reply(RatingListResponse{
		Ratings:    page.Ratings,
		Count:      len(page.Ratings),
		Statistics: page.Statistics,
		Message:    page.Message,
	})
}

func registerRatings(api huma.API, s *service) {
	huma.Register(api, huma.Operation{
		OperationID: "create-rating",
		Method:      http.MethodPost,
		Path:        "/ratings/",
		Summary:     "Rate a user for a completed task",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		Body CreateRatingRequest
	}) (*response[domain.Rating], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		rt, err := s.engine.CreateRating(ctx, actorID, engine.RatingInput{
			ToUserID: input.Body.ToUserID,
			TaskID:   input.Body.TaskID,
			Rating:   input.Body.Rating,
			Comment:  input.Body.Comment,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(rt), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-received-ratings",
		Method:      http.MethodGet,
		Path:        "/ratings/my/received",
		Summary:     "Ratings I received",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, input *RatingLimit) (*response[RatingListResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		page, err := s.engine.ReceivedRatings(ctx, actorID, input.Limit)
		if err != nil {
			return nil, s.fail(err)
		}
		return ratingList(page), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-given-ratings",
		Method:      http.MethodGet,
		Path:        "/ratings/my/given",
		Summary:     "Ratings I gave",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, input *RatingLimit) (*response[RatingListResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		page, err := s.engine.GivenRatings(ctx, actorID, input.Limit)
		if err != nil {
			return nil, s.fail(err)
		}
		return ratingList(page), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-user-ratings",
		Method:      http.MethodGet,
		Path:        "/ratings/user/{user_id}",
		Summary:     "Ratings a user received",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		UserID         string `path:"user_id"`
		IncludeFlagged bool   `query:"include_flagged"`
		RatingLimit
	}) (*response[RatingListResponse], error) {
		page, err := s.engine.UserRatings(ctx, input.UserID, input.IncludeFlagged, input.Limit)
		if err != nil {
			return nil, s.fail(err)
		}
		return ratingList(page), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-task-ratings",
		Method:      http.MethodGet,
		Path:        "/ratings/task/{task_id}",
		Summary:     "Ratings left on a task",
		Errors:      []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		TaskID string `path:"task_id"`
		RatingLimit
	}) (*response[RatingListResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		page, err := s.engine.TaskRatings(ctx, actorID, input.TaskID, input.Limit)
		if err != nil {
			return nil, s.fail(err)
		}
		return ratingList(page), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "flag-rating",
		Method:      http.MethodPost,
		Path:        "/ratings/{rating_id}/flag",
		Summary:     "Flag a rating for moderation",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		RatingID   string `path:"rating_id"`
		FlagReason string `query:"flag_reason"`
	}) (*response[FlagResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		res, err := s.engine.FlagRating(ctx, actorID, input.RatingID, input.FlagReason)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(FlagResponse{Message: res.Message, RatingID: res.RatingID, FlaggedAt: res.FlaggedAt}), nil
	})
}

func registerReports(api huma.API, s *service) {
	huma.Register(api, huma.Operation{
		OperationID: "create-report",
		Method:      http.MethodPost,
		Path:        "/reports/",
		Summary:     "Report a user",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		Body CreateReportRequest
	}) (*response[domain.Report], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		rep, err := s.engine.CreateReport(ctx, actorID, engine.ReportInput{
			ToUserID: input.Body.ToUserID,
			TaskID:   input.Body.TaskID,
			Reason:   input.Body.Reason,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(rep), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-sent-reports",
		Method:      http.MethodGet,
		Path:        "/reports/my/sent",
		Summary:     "Reports I filed",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, _ *struct{}) (*response[[]domain.Report], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		reps, err := s.engine.SentReports(ctx, actorID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(reps), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-received-reports",
		Method:      http.MethodGet,
		Path:        "/reports/my/received",
		Summary:     "Reports filed against me",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, _ *struct{}) (*response[[]domain.Report], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		reps, err := s.engine.ReceivedReports(ctx, actorID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(reps), nil
	})
}
