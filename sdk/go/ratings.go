package skillswapsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetMyRatings lists ratings the caller received, with statistics.
func (c *Client) GetMyRatings(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "ratings/my/received", nil, nil)
}

// GetMyGivenRatings lists ratings the caller gave.
func (c *Client) GetMyGivenRatings(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "ratings/my/given", nil, nil)
}

// GetUserRatings lists ratings a user received.
func (c *Client) GetUserRatings(ctx context.Context, userID string, includeFlagged bool) (*Response, error) {
	var q url.Values
	if includeFlagged {
		q = url.Values{"include_flagged": {"true"}}
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("ratings/user/%s", url.PathEscape(userID)), q, nil)
}

// GetTaskRatings lists ratings left on a task.
func (c *Client) GetTaskRatings(ctx context.Context, taskID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("ratings/task/%s", url.PathEscape(taskID)), nil, nil)
}

// CreateRating rates another user on a completed task.
func (c *Client) CreateRating(ctx context.Context, draft RatingDraft) (*Response, error) {
	return c.do(ctx, http.MethodPost, "ratings/", nil, draft)
}

// FlagRating sends a rating to moderation. The reason travels as a query parameter.
func (c *Client) FlagRating(ctx context.Context, ratingID, reason string) (*Response, error) {
	q := url.Values{"flag_reason": {reason}}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("ratings/%s/flag", url.PathEscape(ratingID)), q, nil)
}
