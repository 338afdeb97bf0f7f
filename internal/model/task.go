package model

import "time"

// Task is a user-created work item tracked by the backend.
type Task struct {
	// ID is the unique identifier for this task, assigned at creation.
	ID string `json:"id" db:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title" db:"title"`

	// Description is the optional full body text.
	Description string `json:"description" db:"description"`

	// DueDate is the optional target time. Stored opaquely; the backend
	// does not validate it beyond presence.
	DueDate *time.Time `json:"due_date,omitempty" db:"due_date"`

	// Completed indicates whether the task has been finished.
	Completed bool `json:"completed" db:"completed"`

	// CreatedAt is when the task was created. Immutable.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TaskPatch describes a partial update to a task. Nil fields are left
// untouched; a non-nil field overwrites the stored value.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Completed == nil
}
