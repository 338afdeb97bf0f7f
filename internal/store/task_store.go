package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hnguyen/assistant-backend/internal/model"
)

// CreateTask inserts a new task, assigning its id and timestamps.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	t model.Task,
) (model.Task, error) {
	t.ID = uuid.New().String()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	var due *time.Time
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		due = &d
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, due_date, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, due,
		boolToInt(t.Completed), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}

	return t, nil
}

// GetTasks retrieves all tasks in insertion order.
func (s *SQLiteStore) GetTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// GetTaskByID retrieves a single task by its ID.
func (s *SQLiteStore) GetTaskByID(
	ctx context.Context,
	id string,
) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	t, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	return &t, nil
}

// UpdateTask applies the non-nil patch fields to a task and returns the
// updated row.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	id string,
	patch model.TaskPatch,
) (*model.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, patch.DueDate.UTC())
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*patch.Completed))
	}
	args = append(args, id)

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, model.ErrNotFound
	}

	return s.GetTaskByID(ctx, id)
}

// DeleteTask removes a task by ID, reporting whether it existed.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		t         model.Task
		due       *time.Time
		completed int
	)

	err := rows.Scan(
		&t.ID, &t.Title, &t.Description, &due,
		&completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	t.DueDate = due
	t.Completed = completed != 0

	return t, nil
}

// scanTaskRow scans a single task row from a sqlx.Row.
func scanTaskRow(row *sqlx.Row) (model.Task, error) {
	var (
		t         model.Task
		due       *time.Time
		completed int
	)

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &due,
		&completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	t.DueDate = due
	t.Completed = completed != 0

	return t, nil
}
