package skillswapsdk

import (
	"context"
	"net/http"
)

// CreateReport files a report against a user.
func (c *Client) CreateReport(ctx context.Context, draft ReportDraft) (*Response, error) {
	return c.do(ctx, http.MethodPost, "reports/", nil, draft)
}

// GetMyReports lists reports the caller sent.
func (c *Client) GetMyReports(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "reports/my/sent", nil, nil)
}

// GetReportsAgainstMe lists reports filed against the caller.
func (c *Client) GetReportsAgainstMe(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "reports/my/received", nil, nil)
}
