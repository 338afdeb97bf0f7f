package store

import (
	"context"
	"errors"
	"testing"

	"github.com/hnguyen/assistant-backend/internal/model"
)

func TestCreateNotificationDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.CreateNotification(ctx, model.Notification{Message: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.ID == "" {
		t.Error("expected non-empty ID")
	}
	if n.Type != model.NotificationTypeInfo {
		t.Errorf("expected default type info, got %q", n.Type)
	}
	if n.Read {
		t.Error("expected read=false on creation")
	}
}

func TestNotificationDanglingTaskRef(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// A task_id that references no stored task is legal.
	n, err := s.CreateNotification(ctx, model.Notification{
		Message: "orphan",
		TaskID:  "never-existed",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.TaskID != "never-existed" {
		t.Errorf("task_id not preserved: %q", n.TaskID)
	}
}

func TestGetUnreadNotifications(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.CreateNotification(ctx, model.Notification{Message: "a"})
	b, _ := s.CreateNotification(ctx, model.Notification{Message: "b"})

	if _, err := s.MarkNotificationRead(ctx, a.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, err := s.GetUnreadNotifications(ctx)
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if len(unread) != 1 || unread[0].ID != b.ID {
		t.Errorf("expected only %s unread, got %+v", b.ID, unread)
	}

	all, err := s.GetNotifications(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(all))
	}
}

func TestMarkNotificationReadIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, _ := s.CreateNotification(ctx, model.Notification{Message: "once"})

	first, err := s.MarkNotificationRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("first mark read: %v", err)
	}
	if !first.Read {
		t.Error("expected read=true after first mark")
	}

	second, err := s.MarkNotificationRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("second mark read should be a no-op success: %v", err)
	}
	if !second.Read {
		t.Error("expected read=true after second mark")
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.MarkNotificationRead(ctx, "no-such-id")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotification(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, _ := s.CreateNotification(ctx, model.Notification{Message: "bye"})

	existed, err := s.DeleteNotification(ctx, n.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Error("expected delete to report existence")
	}

	existed, _ = s.DeleteNotification(ctx, n.ID)
	if existed {
		t.Error("expected second delete to report absence")
	}
}
