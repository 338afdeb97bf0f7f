package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hnguyen/assistant-backend/internal/model"
)

// The in-memory store must honor the same contract as the SQLite store.
var _ Store = (*MemStore)(nil)
var _ Store = (*SQLiteStore)(nil)

func TestMemStoreTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	created, err := s.CreateTask(ctx, model.Task{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetTaskByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Buy milk" || got.Completed {
		t.Errorf("unexpected task: %+v", got)
	}

	completed := true
	updated, err := s.UpdateTask(ctx, created.ID, model.TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Title != "Buy milk" {
		t.Errorf("partial update broke fields: %+v", updated)
	}

	existed, err := s.DeleteTask(ctx, created.ID)
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}

	if _, err := s.GetTaskByID(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	created, _ := s.CreateTask(ctx, model.Task{Title: "original"})

	got, _ := s.GetTaskByID(ctx, created.ID)
	got.Title = "mutated"

	again, _ := s.GetTaskByID(ctx, created.ID)
	if again.Title != "original" {
		t.Error("store state mutated through a returned copy")
	}
}

func TestMemStoreTaskIDUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	const n = 10000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		created, err := s.CreateTask(ctx, model.Task{Title: "t"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id after %d creates: %s", i, created.ID)
		}
		seen[created.ID] = true
	}
}

func TestMemStoreNotifications(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	n, err := s.CreateNotification(ctx, model.Notification{Message: "ping"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.Type != model.NotificationTypeInfo {
		t.Errorf("expected default type info, got %q", n.Type)
	}

	if _, err := s.MarkNotificationRead(ctx, n.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := s.MarkNotificationRead(ctx, n.ID); err != nil {
		t.Fatalf("second mark read should succeed: %v", err)
	}

	unread, _ := s.GetUnreadNotifications(ctx)
	if len(unread) != 0 {
		t.Errorf("expected no unread, got %d", len(unread))
	}

	if _, err := s.MarkNotificationRead(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStoreMemorySemantics(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.InsertMemory(ctx, model.MemoryRecord{
		Tier: model.TierShortTerm, Content: "transient golang tip", CreatedAt: created,
	}); err != nil {
		t.Fatalf("insert short-term: %v", err)
	}
	if _, err := s.InsertMemory(ctx, model.MemoryRecord{
		Tier: model.TierLongTerm, Content: "Golang fundamentals",
	}); err != nil {
		t.Fatalf("insert long-term: %v", err)
	}

	// Case-insensitive match, long-term tier first.
	results, err := s.SearchMemory(ctx, "golang", created.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Tier != model.TierLongTerm || results[1].Tier != model.TierShortTerm {
		t.Errorf("wrong tier ordering: %s then %s", results[0].Tier, results[1].Tier)
	}

	// Past the retention window the short-term record is gone.
	results, err = s.SearchMemory(ctx, "golang", created.Add(61*24*time.Hour))
	if err != nil {
		t.Fatalf("search after expiry: %v", err)
	}
	if len(results) != 1 || results[0].Tier != model.TierLongTerm {
		t.Errorf("expected only the long-term record, got %+v", results)
	}
}
