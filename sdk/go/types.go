package skillswapsdk

import (
	"net/url"
	"strconv"
)

// User is a marketplace profile.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Skill    string `json:"skill,omitempty"`
	Bio      string `json:"bio,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Task statuses. Transitions only move forward.
const (
	TaskOpen      = "open"
	TaskAccepted  = "accepted"
	TaskCompleted = "completed"
)

// Task is a posted unit of work.
type Task struct {
	TaskID      string   `json:"task_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location,omitempty"`
	Time        string   `json:"time,omitempty"`
	Status      string   `json:"status"`
	PostedBy    string   `json:"posted_by"`
	Timestamp   string   `json:"timestamp"`
	AcceptedBy  string   `json:"accepted_by,omitempty"`
	AcceptedAt  string   `json:"accepted_at,omitempty"`
	CompletedAt string   `json:"completed_at,omitempty"`
}

// Rating is feedback left for a user on a completed task.
type Rating struct {
	RatingID   string `json:"rating_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	TaskID     string `json:"task_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	Timestamp  string `json:"timestamp"`
	IsFlagged  bool   `json:"is_flagged,omitempty"`
	FlagReason string `json:"flag_reason,omitempty"`
	FlaggedBy  string `json:"flagged_by,omitempty"`
	FlaggedAt  string `json:"flagged_at,omitempty"`
}

// Report is a complaint filed against a user.
type Report struct {
	ReportID   string `json:"report_id"`
	FromUserID string `json:"from_user_id,omitempty"`
	ToUserID   string `json:"to_user_id"`
	TaskID     string `json:"task_id"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Statistics is computed by the backend and passed through unmodified.
type Statistics struct {
	AverageRating      float64        `json:"average_rating"`
	TotalRatings       int            `json:"total_ratings"`
	RatingDistribution map[string]int `json:"rating_distribution,omitempty"`
}

// NewUser is the body for CreateUser.
type NewUser struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Skill    string `json:"skill"`
	Bio      string `json:"bio,omitempty"`
}

// ProfileUpdate is a partial user; nil fields are left untouched.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Skill    *string `json:"skill,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// TaskDraft is the body for CreateTask.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location,omitempty"`
	Time        string   `json:"time,omitempty"`
}

// RatingDraft is the body for CreateRating.
type RatingDraft struct {
	ToUserID string `json:"to_user_id"`
	TaskID   string `json:"task_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// ReportDraft is the body for CreateReport.
type ReportDraft struct {
	ToUserID string `json:"to_user_id"`
	TaskID   string `json:"task_id"`
	Reason   string `json:"reason"`
}

// TaskQuery holds optional filters for GetOpenTasks.
type TaskQuery struct {
	Search   string
	Tag      string
	Location string
	Limit    int
}

func (q TaskQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// UserQuery holds optional filters for ListUsers.
type UserQuery struct {
	Skill string
	Limit int
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	if q.Skill != "" {
		v.Set("skill", q.Skill)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
