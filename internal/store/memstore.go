package store

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/hnguyen/assistant-backend/internal/model"
)

// MemStore implements the Store interface entirely in memory. It serves
// tests and ephemeral deployments; state is lost on process exit.
type MemStore struct {
	mu sync.RWMutex

	tasks     map[string]*model.Task
	taskOrder []string

	notifications map[string]*model.Notification
	notifOrder    []string

	longTerm  map[string]*model.MemoryRecord
	shortTerm map[string]*model.MemoryRecord

	academic      map[string]*model.AcademicInfo
	academicOrder []string

	entropy *rand.Rand
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		tasks:         make(map[string]*model.Task),
		notifications: make(map[string]*model.Notification),
		longTerm:      make(map[string]*model.MemoryRecord),
		shortTerm:     make(map[string]*model.MemoryRecord),
		academic:      make(map[string]*model.AcademicInfo),
		entropy:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

// CreateTask stores a new task, assigning its id and timestamps.
func (s *MemStore) CreateTask(
	_ context.Context,
	t model.Task,
) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.New().String()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	stored := t
	s.tasks[t.ID] = &stored
	s.taskOrder = append(s.taskOrder, t.ID)

	return t, nil
}

// GetTasks retrieves all tasks in insertion order.
func (s *MemStore) GetTasks(_ context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []model.Task
	for _, id := range s.taskOrder {
		if t, ok := s.tasks[id]; ok {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

// GetTaskByID retrieves a single task by its ID.
func (s *MemStore) GetTaskByID(
	_ context.Context,
	id string,
) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// UpdateTask applies the non-nil patch fields to a task.
func (s *MemStore) UpdateTask(
	_ context.Context,
	id string,
	patch model.TaskPatch,
) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, model.ErrNotFound
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		due := patch.DueDate.UTC()
		t.DueDate = &due
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	cp := *t
	return &cp, nil
}

// DeleteTask removes a task by ID, reporting whether it existed.
func (s *MemStore) DeleteTask(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
	return true, nil
}

// CreateNotification stores a new notification, assigning its id and
// creation timestamp.
func (s *MemStore) CreateNotification(
	_ context.Context,
	n model.Notification,
) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()
	if n.Type == "" {
		n.Type = model.NotificationTypeInfo
	}

	stored := n
	s.notifications[n.ID] = &stored
	s.notifOrder = append(s.notifOrder, n.ID)

	return n, nil
}

// GetNotifications retrieves all notifications in insertion order.
func (s *MemStore) GetNotifications(
	_ context.Context,
) ([]model.Notification, error) {
	return s.listNotifications(false), nil
}

// GetUnreadNotifications retrieves unread notifications in insertion order.
func (s *MemStore) GetUnreadNotifications(
	_ context.Context,
) ([]model.Notification, error) {
	return s.listNotifications(true), nil
}

func (s *MemStore) listNotifications(unreadOnly bool) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Notification
	for _, id := range s.notifOrder {
		n, ok := s.notifications[id]
		if !ok {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, *n)
	}
	return out
}

// MarkNotificationRead marks a notification as read. Marking an
// already-read notification is a no-op success.
func (s *MemStore) MarkNotificationRead(
	_ context.Context,
	id string,
) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	n.Read = true

	cp := *n
	return &cp, nil
}

// DeleteNotification removes a notification by ID, reporting whether it
// existed.
func (s *MemStore) DeleteNotification(
	_ context.Context,
	id string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return false, nil
	}
	delete(s.notifications, id)
	s.notifOrder = removeID(s.notifOrder, id)
	return true, nil
}

// InsertMemory stores a record in the tier named by rec.Tier.
func (s *MemStore) InsertMemory(
	_ context.Context,
	rec model.MemoryRecord,
) (model.MemoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	} else {
		rec.CreatedAt = rec.CreatedAt.UTC()
	}

	switch rec.Tier {
	case model.TierLongTerm:
		accessed := rec.CreatedAt
		rec.LastAccessed = &accessed
		rec.ExpiresAt = nil
		stored := rec
		s.longTerm[rec.ID] = &stored

	case model.TierShortTerm:
		expires := rec.CreatedAt.Add(model.ShortTermRetention)
		rec.ExpiresAt = &expires
		rec.LastAccessed = nil
		stored := rec
		s.shortTerm[rec.ID] = &stored

	default:
		return model.MemoryRecord{}, &model.ValidationError{
			Field:   "tier",
			Message: "must be long_term or short_term",
		}
	}

	return rec, nil
}

// SearchMemory returns records whose content contains query
// (case-insensitive), long-term tier first. Expired short-term records
// are purged.
func (s *MemStore) SearchMemory(
	_ context.Context,
	query string,
	now time.Time,
) ([]model.MemoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now = now.UTC()
	needle := strings.ToLower(query)

	var longMatches []*model.MemoryRecord
	for _, rec := range s.longTerm {
		if strings.Contains(strings.ToLower(rec.Content), needle) {
			longMatches = append(longMatches, rec)
		}
	}
	sort.Slice(longMatches, func(i, j int) bool {
		a, b := longMatches[i], longMatches[j]
		if !a.LastAccessed.Equal(*b.LastAccessed) {
			return a.LastAccessed.After(*b.LastAccessed)
		}
		return a.ID > b.ID
	})

	var results []model.MemoryRecord
	for _, rec := range longMatches {
		accessed := now
		rec.LastAccessed = &accessed
		results = append(results, *rec)
	}

	// Lazy purge of dead short-term records.
	for id, rec := range s.shortTerm {
		if !rec.ExpiresAt.After(now) {
			delete(s.shortTerm, id)
		}
	}

	var shortMatches []*model.MemoryRecord
	for _, rec := range s.shortTerm {
		if strings.Contains(strings.ToLower(rec.Content), needle) {
			shortMatches = append(shortMatches, rec)
		}
	}
	sort.Slice(shortMatches, func(i, j int) bool {
		a, b := shortMatches[i], shortMatches[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	for _, rec := range shortMatches {
		results = append(results, *rec)
	}

	return results, nil
}

// InsertAcademic stores a piece of academic info.
func (s *MemStore) InsertAcademic(
	_ context.Context,
	info model.AcademicInfo,
) (model.AcademicInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info.ID = ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	info.CreatedAt = time.Now().UTC()

	stored := info
	s.academic[info.ID] = &stored
	s.academicOrder = append(s.academicOrder, info.ID)

	return info, nil
}

// GetAcademic retrieves stored academic info, newest first.
func (s *MemStore) GetAcademic(
	_ context.Context,
	subject string,
) ([]model.AcademicInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []model.AcademicInfo
	for i := len(s.academicOrder) - 1; i >= 0; i-- {
		info, ok := s.academic[s.academicOrder[i]]
		if !ok {
			continue
		}
		if subject != "" && info.Subject != subject {
			continue
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
