package skillswapsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "health", nil, nil)
}

// GetProfile returns the caller's profile. The backend resolves it from the identity header.
func (c *Client) GetProfile(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "users/me", nil, nil)
}

// UpdateProfile sends a partial user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Response, error) {
	return c.do(ctx, http.MethodPut, "users/", nil, update)
}

// CreateUser registers the caller's profile.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (*Response, error) {
	return c.do(ctx, http.MethodPost, "users/", nil, u)
}

// ListUsers lists active users.
func (c *Client) ListUsers(ctx context.Context, q UserQuery) (*Response, error) {
	return c.do(ctx, http.MethodGet, "users/", q.values(), nil)
}

// DeactivateAccount marks the caller inactive.
func (c *Client) DeactivateAccount(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "users/", nil, nil)
}

// ReactivateUser marks a user active again.
func (c *Client) ReactivateUser(ctx context.Context, userID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("users/%s/reactivate", url.PathEscape(userID)), nil, nil)
}
