package domain

const (
	StatusOpen      = "open"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
)

type User struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Skill     string `json:"skill"`
	Bio       string `json:"bio"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at" format:"date-time"`
	UpdatedAt string `json:"updated_at" format:"date-time"`
}

type Task struct {
	TaskID      string   `json:"task_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	Time        string   `json:"time"`
	Status      string   `json:"status" enum:"open,accepted,completed"`
	PostedBy    string   `json:"posted_by"`
	Timestamp   string   `json:"timestamp" format:"date-time"`
	AcceptedBy  *string  `json:"accepted_by"`
	AcceptedAt  *string  `json:"accepted_at" format:"date-time"`
	CompletedAt *string  `json:"completed_at" format:"date-time"`
}

// Involves reports whether userID posted or accepted the task.
func (t Task) Involves(userID string) bool {
	if t.PostedBy == userID {
		return true
	}
	return t.AcceptedBy != nil && *t.AcceptedBy == userID
}

type Rating struct {
	RatingID   string  `json:"rating_id"`
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	TaskID     string  `json:"task_id"`
	Rating     int     `json:"rating" minimum:"1" maximum:"5"`
	Comment    string  `json:"comment"`
	Timestamp  string  `json:"timestamp" format:"date-time"`
	IsFlagged  bool    `json:"is_flagged"`
	FlagReason *string `json:"flag_reason"`
	FlaggedBy  *string `json:"flagged_by"`
	FlaggedAt  *string `json:"flagged_at" format:"date-time"`
}

type Report struct {
	ReportID   string `json:"report_id"`
	TaskID     string `json:"task_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"created_at" format:"date-time"`
}

type Statistics struct {
	TotalRatings       int            `json:"total_ratings"`
	AverageRating      float64        `json:"average_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

type Event struct {
	ID          int64  `json:"id"`
	TS          string `json:"ts" format:"date-time"`
	Type        string `json:"type"`
	EntityKind  string `json:"entity_kind"`
	EntityID    string `json:"entity_id,omitempty"`
	ActorID     string `json:"actor_id"`
	PayloadJSON string `json:"payload_json"`
}
