package skillswapsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetOpenTasks lists tasks that can still be accepted.
func (c *Client) GetOpenTasks(ctx context.Context, q TaskQuery) (*Response, error) {
	return c.do(ctx, http.MethodGet, "tasks/open", q.values(), nil)
}

// GetMyPostedTasks lists tasks the caller posted.
func (c *Client) GetMyPostedTasks(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "tasks/my/posted", nil, nil)
}

// GetMyAcceptedTasks lists tasks the caller accepted.
func (c *Client) GetMyAcceptedTasks(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "tasks/my/accepted", nil, nil)
}

// ListTasks lists every task, newest first.
func (c *Client) ListTasks(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "tasks/", nil, nil)
}

// GetTask fetches a task by id.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, taskPath(taskID, ""), nil, nil)
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (*Response, error) {
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	return c.do(ctx, http.MethodPost, "tasks/", nil, draft)
}

// AcceptTask accepts an open task.
func (c *Client) AcceptTask(ctx context.Context, taskID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, taskPath(taskID, "accept"), nil, nil)
}

// CompleteTask marks an accepted task completed.
func (c *Client) CompleteTask(ctx context.Context, taskID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, taskPath(taskID, "complete"), nil, nil)
}

// DeleteTask removes an open task the caller posted.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, taskPath(taskID, ""), nil, nil)
}

func taskPath(taskID, action string) string {
	p := fmt.Sprintf("tasks/%s", url.PathEscape(taskID))
	if action != "" {
		p += "/" + action
	}
	return p
}
