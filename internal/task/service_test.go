package task

import (
	"context"
	"errors"
	"testing"

	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/store"
)

type recordingHandler struct {
	events []Event
	err    error
}

func (h *recordingHandler) HandleTaskEvent(_ context.Context, ev Event) error {
	h.events = append(h.events, ev)
	return h.err
}

func TestCreateRequiresTitle(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	svc := NewService(s, nil, nil)

	for _, title := range []string{"", "   "} {
		_, err := svc.Create(ctx, title, "", nil)
		if !model.IsValidation(err) {
			t.Errorf("title %q: expected ValidationError, got %v", title, err)
		}
	}

	// Store must be untouched by rejected creates.
	tasks, _ := s.GetTasks(ctx)
	if len(tasks) != 0 {
		t.Errorf("expected empty store after rejected creates, got %d tasks", len(tasks))
	}
}

func TestLifecycleEmitsEvents(t *testing.T) {
	ctx := context.Background()
	handler := &recordingHandler{}
	svc := NewService(store.NewMemStore(), handler, nil)

	created, err := svc.Create(ctx, "Buy milk", "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := true
	if _, err := svc.Update(ctx, created.ID, model.TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}

	existed, err := svc.Delete(ctx, created.ID)
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}

	verbs := []string{EventCreated, EventUpdated, EventDeleted}
	if len(handler.events) != len(verbs) {
		t.Fatalf("expected %d events, got %d", len(verbs), len(handler.events))
	}
	for i, want := range verbs {
		ev := handler.events[i]
		if ev.Verb != want {
			t.Errorf("event %d: verb = %q, want %q", i, ev.Verb, want)
		}
		if ev.TaskID != created.ID {
			t.Errorf("event %d: task id = %q, want %q", i, ev.TaskID, created.ID)
		}
		if ev.Title != "Buy milk" {
			t.Errorf("event %d: title = %q", i, ev.Title)
		}
	}
}

func TestHandlerErrorDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	handler := &recordingHandler{err: errors.New("consumer down")}
	svc := NewService(store.NewMemStore(), handler, nil)

	created, err := svc.Create(ctx, "resilient", "", nil)
	if err != nil {
		t.Fatalf("create should succeed despite handler error: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "resilient" {
		t.Errorf("unexpected task: %+v", got)
	}
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore(), nil, nil)

	created, _ := svc.Create(ctx, "task", "", nil)

	if _, err := svc.Update(ctx, created.ID, model.TaskPatch{}); !model.IsValidation(err) {
		t.Errorf("expected ValidationError for empty patch, got %v", err)
	}

	empty := " "
	if _, err := svc.Update(ctx, created.ID, model.TaskPatch{Title: &empty}); !model.IsValidation(err) {
		t.Errorf("expected ValidationError for blank title, got %v", err)
	}

	done := true
	if _, err := svc.Update(ctx, "missing", model.TaskPatch{Completed: &done}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingTask(t *testing.T) {
	ctx := context.Background()
	handler := &recordingHandler{}
	svc := NewService(store.NewMemStore(), handler, nil)

	existed, err := svc.Delete(ctx, "missing")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if existed {
		t.Error("expected existed=false")
	}
	if len(handler.events) != 0 {
		t.Errorf("no event expected for missing task, got %d", len(handler.events))
	}
}
