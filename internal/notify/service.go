// Package notify implements the notification registry: unread tracking,
// idempotent mark-read, and optional fire-and-forget delivery.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hnguyen/assistant-backend/internal/delivery"
	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/store"
	"github.com/hnguyen/assistant-backend/internal/task"
)

// deliveryTimeout bounds the best-effort send that follows a create.
const deliveryTimeout = 10 * time.Second

// Service is the notification registry.
type Service struct {
	store  store.Store
	sender delivery.Sender
	logger *log.Logger

	// async controls whether delivery runs in a goroutine. Tests set it
	// false to observe sends deterministically.
	async bool
}

// NewService creates a notification registry over the given store.
// sender may be nil when no delivery channel is configured.
func NewService(s store.Store, sender delivery.Sender, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: s, sender: sender, logger: logger, async: true}
}

// Create validates and stores a new notification, then forwards it to
// the delivery channel if one is configured. Delivery failure never
// fails the create: the notification is persisted first and the send is
// best-effort.
func (s *Service) Create(
	ctx context.Context,
	message, taskID, typ string,
) (model.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return model.Notification{}, &model.ValidationError{
			Field:   "message",
			Message: "must not be empty",
		}
	}

	n, err := s.store.CreateNotification(ctx, model.Notification{
		Message: message,
		TaskID:  taskID,
		Type:    typ,
	})
	if err != nil {
		return model.Notification{}, fmt.Errorf("storing notification: %w", err)
	}

	s.deliver(n)
	return n, nil
}

// GetAll returns every notification.
func (s *Service) GetAll(ctx context.Context) ([]model.Notification, error) {
	return s.store.GetNotifications(ctx)
}

// GetUnread returns notifications with read=false.
func (s *Service) GetUnread(ctx context.Context) ([]model.Notification, error) {
	return s.store.GetUnreadNotifications(ctx)
}

// MarkRead sets read=true. Marking an already-read notification again
// succeeds without error.
func (s *Service) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	return s.store.MarkNotificationRead(ctx, id)
}

// Delete removes a notification, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteNotification(ctx, id)
}

// HandleTaskEvent records a notification for each task mutation. This
// is the registry's side of the task/notification collaboration.
func (s *Service) HandleTaskEvent(ctx context.Context, ev task.Event) error {
	msg := fmt.Sprintf("Task %s: %q", ev.Verb, ev.Title)
	_, err := s.Create(ctx, msg, ev.TaskID, model.NotificationTypeInfo)
	return err
}

// deliver forwards the notification message on a best-effort basis.
// The send runs detached from the request context so a slow channel
// cannot stall the caller.
func (s *Service) deliver(n model.Notification) {
	if s.sender == nil {
		return
	}

	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		subject := fmt.Sprintf("Assistant notification (%s)", n.Type)
		if err := s.sender.Send(ctx, subject, n.Message); err != nil {
			s.logger.Printf("notification delivery failed id=%s err=%v", n.ID, err)
		}
	}

	if s.async {
		go send()
		return
	}
	send()
}
