package store

import (
	"context"
	"time"

	"github.com/hnguyen/assistant-backend/internal/model"
)

// Store defines the persistence interface for tasks, notifications,
// memory records, and academic info. Implementations own all entity
// state: ids and creation timestamps are assigned on insert, mutations
// either fully apply or fully no-op, and concurrent writes against the
// same entity are serialized.
type Store interface {
	// === Tasks ===

	// CreateTask stores a new task, assigning its id and timestamps.
	CreateTask(ctx context.Context, t model.Task) (model.Task, error)
	GetTasks(ctx context.Context) ([]model.Task, error)
	// GetTaskByID returns model.ErrNotFound for an unknown id.
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	// UpdateTask applies only the non-nil patch fields and returns the
	// updated task, or model.ErrNotFound.
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	// DeleteTask reports whether the task existed.
	DeleteTask(ctx context.Context, id string) (bool, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error)
	GetNotifications(ctx context.Context) ([]model.Notification, error)
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)
	// MarkNotificationRead sets read=true and returns the notification.
	// Marking an already-read notification is a no-op success.
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)
	DeleteNotification(ctx context.Context, id string) (bool, error)

	// === Memory ===

	// InsertMemory stores a record in the tier named by rec.Tier. A zero
	// CreatedAt defaults to now; short-term expiry is derived from it.
	InsertMemory(ctx context.Context, rec model.MemoryRecord) (model.MemoryRecord, error)
	// SearchMemory returns records whose content contains query
	// (case-insensitive): long-term matches first, most recently accessed
	// first, then unexpired short-term matches, newest first. Long-term
	// matches have last_accessed bumped to now; expired short-term rows
	// are purged.
	SearchMemory(ctx context.Context, query string, now time.Time) ([]model.MemoryRecord, error)

	// === Academic info ===

	InsertAcademic(ctx context.Context, info model.AcademicInfo) (model.AcademicInfo, error)
	// GetAcademic returns stored records, optionally filtered by subject
	// (empty subject matches all), newest first.
	GetAcademic(ctx context.Context, subject string) ([]model.AcademicInfo, error)

	Close() error
}
