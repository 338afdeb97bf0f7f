package model

import "time"

// Notification type categories.
const (
	NotificationTypeInfo     = "info"
	NotificationTypeReminder = "reminder"
	NotificationTypeAlert    = "alert"
)

// Notification represents a message surfaced to the user, optionally
// tied to a task.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// Message is the human-readable notification text.
	Message string `json:"message" db:"message"`

	// TaskID optionally links this notification to a task. The reference
	// is not enforced; a dangling id is legal.
	TaskID string `json:"task_id,omitempty" db:"task_id"`

	// Type is the category tag (use NotificationType* constants).
	Type string `json:"type" db:"type"`

	// Read indicates whether the user has seen this notification.
	// Transitions false to true and never back.
	Read bool `json:"read" db:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
