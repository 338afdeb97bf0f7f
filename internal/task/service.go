// Package task implements the task registry: validation and partial
// update rules over the entity store, plus domain event emission.
package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/store"
)

// Event verbs emitted on successful task mutations.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Event describes a completed task mutation. Consumers (the
// notification registry) receive it after the store write has applied.
type Event struct {
	Verb   string
	TaskID string
	Title  string
}

// EventHandler consumes task domain events. A handler error is logged
// and never fails the task operation that produced the event.
type EventHandler interface {
	HandleTaskEvent(ctx context.Context, ev Event) error
}

// Service is the task registry.
type Service struct {
	store  store.Store
	events EventHandler
	logger *log.Logger
}

// NewService creates a task registry over the given store. events may
// be nil when no consumer is wired.
func NewService(s store.Store, events EventHandler, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: s, events: events, logger: logger}
}

// Create validates and stores a new task. Title is required; completed
// starts false.
func (s *Service) Create(
	ctx context.Context,
	title, description string,
	dueDate *time.Time,
) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, &model.ValidationError{
			Field:   "title",
			Message: "must not be empty",
		}
	}

	t, err := s.store.CreateTask(ctx, model.Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("storing task: %w", err)
	}

	s.emit(ctx, Event{Verb: EventCreated, TaskID: t.ID, Title: t.Title})
	return t, nil
}

// GetAll returns every task.
func (s *Service) GetAll(ctx context.Context) ([]model.Task, error) {
	return s.store.GetTasks(ctx)
}

// GetByID returns a single task or model.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Task, error) {
	return s.store.GetTaskByID(ctx, id)
}

// Update applies the non-nil patch fields. An empty patch is rejected;
// a patched title must remain non-empty.
func (s *Service) Update(
	ctx context.Context,
	id string,
	patch model.TaskPatch,
) (*model.Task, error) {
	if patch.Empty() {
		return nil, &model.ValidationError{
			Field:   "body",
			Message: "no fields to update",
		}
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &model.ValidationError{
			Field:   "title",
			Message: "must not be empty",
		}
	}

	t, err := s.store.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, Event{Verb: EventUpdated, TaskID: t.ID, Title: t.Title})
	return t, nil
}

// Delete removes a task, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	t, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	existed, err := s.store.DeleteTask(ctx, id)
	if err != nil {
		return false, err
	}
	if existed {
		s.emit(ctx, Event{Verb: EventDeleted, TaskID: id, Title: t.Title})
	}
	return existed, nil
}

func (s *Service) emit(ctx context.Context, ev Event) {
	if s.events == nil {
		return
	}
	if err := s.events.HandleTaskEvent(ctx, ev); err != nil {
		s.logger.Printf("task event handler failed verb=%s task=%s err=%v",
			ev.Verb, ev.TaskID, err)
	}
}
