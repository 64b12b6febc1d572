package mock

import "skillswap/internal/domain"

// Request payloads

type CreateUserRequest struct {
	FullName string `json:"full_name" minLength:"1"`
	Email    string `json:"email" format:"email"`
	Skill    string `json:"skill"`
	Bio      string `json:"bio,omitempty"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Skill    *string `json:"skill,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Location    string   `json:"location,omitempty"`
	Time        string   `json:"time,omitempty"`
}

type CreateRatingRequest struct {
	ToUserID string `json:"to_user_id"`
	TaskID   string `json:"task_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

type CreateReportRequest struct {
	ToUserID string `json:"to_user_id"`
	TaskID   string `json:"task_id,omitempty"`
	Reason   string `json:"reason"`
}

// Response payloads

type MessageResponse struct {
	Message string `json:"message"`
}

type UserListResponse struct {
	Items []domain.User `json:"items"`
	Count int           `json:"count"`
}

type OpenTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Count int           `json:"count"`
}

type TaskItemsResponse struct {
	Items []domain.Task `json:"items"`
	Count int           `json:"count"`
}

type RatingListResponse struct {
	Ratings    []domain.Rating    `json:"ratings"`
	Count      int                `json:"count"`
	Statistics *domain.Statistics `json:"statistics,omitempty"`
	Message    string             `json:"message"`
}

type FlagResponse struct {
	Message   string `json:"message"`
	RatingID  string `json:"rating_id"`
	FlaggedAt string `json:"flagged_at" format:"date-time"`
}
