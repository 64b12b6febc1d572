package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"skillswap/internal/domain"
	"skillswap/internal/events"
	"skillswap/internal/repo"
)

const (
	minComment    = 3
	maxComment    = 500
	minFlagReason = 10
	maxFlagReason = 500
)

// RatingInput is the body of a new rating.
type RatingInput struct {
	ToUserID string
	TaskID   string
	Rating   int
	Comment  string
}

// CreateRating lets actorID rate the other party of a completed task once.
func (e Engine) CreateRating(ctx context.Context, actorID string, in RatingInput) (domain.Rating, error) {
	in.ToUserID = strings.TrimSpace(in.ToUserID)
	in.TaskID = strings.TrimSpace(in.TaskID)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateRatingInput(in); err != nil {
		return domain.Rating{}, err
	}
	if actorID == in.ToUserID {
		return domain.Rating{}, invalid("You cannot rate yourself. Please select a different user to rate.")
	}
	rt := domain.Rating{
		RatingID:   e.newID(),
		FromUserID: actorID,
		ToUserID:   in.ToUserID,
		TaskID:     in.TaskID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		Timestamp:  e.timestamp(),
	}
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.requireActiveUser(ctx, tx, actorID, "create ratings"); err != nil {
			return err
		}
		if err := e.requireActiveUser(ctx, tx, in.ToUserID, "receive ratings"); err != nil {
			return err
		}
		if err := e.requireRatableTask(ctx, tx, in.TaskID, actorID, in.ToUserID); err != nil {
			return err
		}
		exists, err := e.Repo.RatingExistsTx(ctx, tx, actorID, in.ToUserID, in.TaskID)
		if err != nil {
			return err
		}
		if exists {
			return conflict("You have already rated this user for this task. Each user can only be rated once per completed task.")
		}
		if err := e.Repo.InsertRating(ctx, tx, rt); err != nil {
			return fmt.Errorf("insert rating: %w", err)
		}
		return e.writer().Append(ctx, tx, events.RatingCreated, "rating", rt.RatingID, actorID,
			events.EventPayload{"to_user_id": rt.ToUserID, "task_id": rt.TaskID, "rating": rt.Rating})
	})
	if err != nil {
		return domain.Rating{}, err
	}
	return rt, nil
}

func validateRatingInput(in RatingInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return invalid("Rating must be an integer between 1 and 5.")
	}
	if n := utf8.RuneCountInString(in.Comment); n > 0 {
		if n > maxComment {
			return invalid(fmt.Sprintf("Comment is too long. Maximum %d characters allowed. Current length: %d", maxComment, n))
		}
		if n < minComment {
			return invalid(fmt.Sprintf("Comment must be at least %d characters long if provided.", minComment))
		}
	}
	if in.ToUserID == "" {
		return invalid("Target user ID (to_user_id) cannot be empty.")
	}
	if in.TaskID == "" {
		return invalid("Task ID cannot be empty.")
	}
	return nil
}

func (e Engine) requireRatableTask(ctx context.Context, tx *sql.Tx, taskID, from, to string) error {
	t, err := e.Repo.GetTaskTx(ctx, tx, taskID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound(fmt.Sprintf("Task with ID '%s' does not exist.", taskID))
	}
	if err != nil {
		return err
	}
	if t.Status != domain.StatusCompleted {
		return invalid(fmt.Sprintf("You can only rate completed tasks. This task is currently '%s'.", t.Status))
	}
	if !t.Involves(from) {
		return forbidden("You can only rate users you have worked with on completed tasks.")
	}
	if !t.Involves(to) {
		return invalid("You can only rate users who were involved in this task.")
	}
	return nil
}

// RatingPage is a rating list with its summary.
type RatingPage struct {
	Ratings    []domain.Rating
	Statistics *domain.Statistics
	Message    string
}

// ReceivedRatings lists unflagged ratings for userID.
func (e Engine) ReceivedRatings(ctx context.Context, userID string, limit int) (RatingPage, error) {
	ratings, err := e.Repo.ListRatings(ctx, repo.RatingFilters{ToUserID: userID, Limit: limit})
	if err != nil {
		return RatingPage{}, err
	}
	return pageWithStats(ratings, "ratings", "You haven't received any ratings yet"), nil
}

// UserRatings lists ratings userID received, optionally including flagged ones.
func (e Engine) UserRatings(ctx context.Context, userID string, includeFlagged bool, limit int) (RatingPage, error) {
	if strings.TrimSpace(userID) == "" {
		return RatingPage{}, invalid("User ID cannot be empty.")
	}
	ratings, err := e.Repo.ListRatings(ctx, repo.RatingFilters{ToUserID: userID, IncludeFlagged: includeFlagged, Limit: limit})
	if err != nil {
		return RatingPage{}, err
	}
	return pageWithStats(ratings, "ratings", "No ratings found for this user"), nil
}

// GivenRatings lists ratings actorID left. It carries no statistics.
func (e Engine) GivenRatings(ctx context.Context, actorID string, limit int) (RatingPage, error) {
	ratings, err := e.Repo.ListRatings(ctx, repo.RatingFilters{FromUserID: actorID, IncludeFlagged: true, Limit: limit})
	if err != nil {
		return RatingPage{}, err
	}
	msg := "You haven't given any ratings yet"
	if len(ratings) > 0 {
		msg = fmt.Sprintf("Found %d ratings you have given", len(ratings))
	}
	return RatingPage{Ratings: ratings, Message: msg}, nil
}

// TaskRatings lists ratings on a task the caller took part in.
func (e Engine) TaskRatings(ctx context.Context, actorID, taskID string, limit int) (RatingPage, error) {
	if strings.TrimSpace(taskID) == "" {
		return RatingPage{}, invalid("Task ID cannot be empty.")
	}
	t, err := e.Repo.GetTask(ctx, taskID)
	if errors.Is(err, repo.ErrNotFound) {
		return RatingPage{}, notFound(fmt.Sprintf("Task with ID '%s' does not exist.", taskID))
	}
	if err != nil {
		return RatingPage{}, err
	}
	if !t.Involves(actorID) {
		return RatingPage{}, forbidden("You can only view ratings for tasks you were involved in.")
	}
	ratings, err := e.Repo.ListRatings(ctx, repo.RatingFilters{TaskID: taskID, Limit: limit})
	if err != nil {
		return RatingPage{}, err
	}
	return pageWithStats(ratings, "ratings for this task", "No ratings found for this task"), nil
}

func pageWithStats(ratings []domain.Rating, noun, empty string) RatingPage {
	stats := Summarize(ratings)
	msg := empty
	if len(ratings) > 0 {
		msg = fmt.Sprintf("Found %d %s", len(ratings), noun)
	}
	return RatingPage{Ratings: ratings, Statistics: &stats, Message: msg}
}

// Summarize computes count, mean rounded to two places and per-star counts.
func Summarize(ratings []domain.Rating) domain.Statistics {
	stats := domain.Statistics{RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}}
	if len(ratings) == 0 {
		return stats
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		stats.RatingDistribution[strconv.Itoa(r.Rating)]++
	}
	stats.TotalRatings = len(ratings)
	stats.AverageRating = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	return stats
}

// FlagResult is returned after a successful flag.
type FlagResult struct {
	Message   string
	RatingID  string
	FlaggedAt string
}

// FlagRating sends a rating to moderation.
func (e Engine) FlagRating(ctx context.Context, actorID, ratingID, reason string) (FlagResult, error) {
	ratingID = strings.TrimSpace(ratingID)
	reason = strings.TrimSpace(reason)
	if ratingID == "" {
		return FlagResult{}, invalid("Rating ID cannot be empty.")
	}
	if utf8.RuneCountInString(reason) < minFlagReason {
		return FlagResult{}, invalid("Flag reason must be at least 10 characters long and explain why you're flagging this rating.")
	}
	if utf8.RuneCountInString(reason) > maxFlagReason {
		return FlagResult{}, invalid(fmt.Sprintf("Flag reason is too long. Maximum %d characters allowed.", maxFlagReason))
	}
	res := FlagResult{
		Message:   "Rating has been flagged successfully and will be reviewed by our moderation team.",
		RatingID:  ratingID,
		FlaggedAt: e.timestamp(),
	}
	err := e.inTx(ctx, func(tx *sql.Tx) error {
		if err := e.requireActiveUser(ctx, tx, actorID, "flag ratings"); err != nil {
			return err
		}
		rt, err := e.Repo.GetRatingTx(ctx, tx, ratingID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(fmt.Sprintf("Rating with ID '%s' does not exist.", ratingID))
		}
		if err != nil {
			return err
		}
		if rt.IsFlagged {
			return conflict("This rating has already been flagged and is under review.")
		}
		if rt.FromUserID == actorID {
			return forbidden("You cannot flag your own ratings. If you want to modify your rating, please contact support.")
		}
		if err := e.Repo.FlagRating(ctx, tx, ratingID, reason, actorID, res.FlaggedAt); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return conflict("This rating has already been flagged and is under review.")
			}
			return err
		}
		return e.writer().Append(ctx, tx, events.RatingFlagged, "rating", ratingID, actorID, events.EventPayload{"reason": reason})
	})
	if err != nil {
		return FlagResult{}, err
	}
	return res, nil
}
