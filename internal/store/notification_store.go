package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hnguyen/assistant-backend/internal/model"
)

// CreateNotification inserts a new notification record, assigning its
// id and creation timestamp.
func (s *SQLiteStore) CreateNotification(
	ctx context.Context,
	n model.Notification,
) (model.Notification, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()
	if n.Type == "" {
		n.Type = model.NotificationTypeInfo
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, message, task_id, type, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Message, n.TaskID, n.Type,
		boolToInt(n.Read), n.CreatedAt,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("creating notification: %w", err)
	}

	return n, nil
}

// GetNotifications retrieves all notifications in insertion order.
func (s *SQLiteStore) GetNotifications(
	ctx context.Context,
) ([]model.Notification, error) {
	return s.queryNotifications(ctx,
		"SELECT * FROM notifications ORDER BY created_at, id",
	)
}

// GetUnreadNotifications retrieves all notifications that have not been
// read, in insertion order.
func (s *SQLiteStore) GetUnreadNotifications(
	ctx context.Context,
) ([]model.Notification, error) {
	return s.queryNotifications(ctx,
		"SELECT * FROM notifications WHERE read = 0 ORDER BY created_at, id",
	)
}

// MarkNotificationRead marks a single notification as read and returns
// it. Marking an already-read notification is a no-op success.
func (s *SQLiteStore) MarkNotificationRead(
	ctx context.Context,
	id string,
) (*model.Notification, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return nil, fmt.Errorf("marking notification %s as read: %w", id, err)
	}

	// RowsAffected is 1 even when read was already 1 (SQLite counts
	// matched rows), so a 0 here means the id does not exist.
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, model.ErrNotFound
	}

	row := s.db.QueryRowxContext(ctx, "SELECT * FROM notifications WHERE id = ?", id)
	n, err := scanNotificationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("reading notification %s: %w", id, err)
	}

	return &n, nil
}

// DeleteNotification removes a notification by ID, reporting whether it
// existed.
func (s *SQLiteStore) DeleteNotification(
	ctx context.Context,
	id string,
) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting notification %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *SQLiteStore) queryNotifications(
	ctx context.Context,
	query string,
) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n       model.Notification
		readInt int
	)

	err := rows.Scan(
		&n.ID, &n.Message, &n.TaskID, &n.Type,
		&readInt, &n.CreatedAt,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}

	n.Read = readInt != 0

	return n, nil
}

// scanNotificationRow scans a single notification row from a sqlx.Row.
func scanNotificationRow(row *sqlx.Row) (model.Notification, error) {
	var (
		n       model.Notification
		readInt int
	)

	err := row.Scan(
		&n.ID, &n.Message, &n.TaskID, &n.Type,
		&readInt, &n.CreatedAt,
	)
	if err != nil {
		return model.Notification{}, err
	}

	n.Read = readInt != 0

	return n, nil
}
