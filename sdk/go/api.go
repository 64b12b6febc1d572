package skillswapsdk

import "context"

// API is the full operation set of the marketplace backend. *Client implements
// it over any http.RoundTripper, so a network transport and an in-process mock
// share one implementation.
type API interface {
	Health(ctx context.Context) (*Response, error)

	GetProfile(ctx context.Context) (*Response, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*Response, error)
	CreateUser(ctx context.Context, u NewUser) (*Response, error)
	ListUsers(ctx context.Context, q UserQuery) (*Response, error)
	DeactivateAccount(ctx context.Context) (*Response, error)
	ReactivateUser(ctx context.Context, userID string) (*Response, error)

	GetOpenTasks(ctx context.Context, q TaskQuery) (*Response, error)
	GetMyPostedTasks(ctx context.Context) (*Response, error)
	GetMyAcceptedTasks(ctx context.Context) (*Response, error)
	ListTasks(ctx context.Context) (*Response, error)
	GetTask(ctx context.Context, taskID string) (*Response, error)
	CreateTask(ctx context.Context, draft TaskDraft) (*Response, error)
	AcceptTask(ctx context.Context, taskID string) (*Response, error)
	CompleteTask(ctx context.Context, taskID string) (*Response, error)
	DeleteTask(ctx context.Context, taskID string) (*Response, error)

	GetMyRatings(ctx context.Context) (*Response, error)
	GetMyGivenRatings(ctx context.Context) (*Response, error)
	GetUserRatings(ctx context.Context, userID string, includeFlagged bool) (*Response, error)
	GetTaskRatings(ctx context.Context, taskID string) (*Response, error)
	CreateRating(ctx context.Context, draft RatingDraft) (*Response, error)
	FlagRating(ctx context.Context, ratingID, reason string) (*Response, error)

	CreateReport(ctx context.Context, draft ReportDraft) (*Response, error)
	GetMyReports(ctx context.Context) (*Response, error)
	GetReportsAgainstMe(ctx context.Context) (*Response, error)
}

var _ API = (*Client)(nil)
