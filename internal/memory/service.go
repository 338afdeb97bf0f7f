// Package memory implements the retrieval service over the two memory
// tiers: durable long-term records and short-term records with a fixed
// 60-day retention window.
package memory

import (
	"context"
	"strings"
	"time"

	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/store"
)

// Service exposes memory storage and retrieval.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a retrieval service. now may be nil, defaulting to
// time.Now; tests inject a fixed clock.
func NewService(s store.Store, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{store: s, now: now}
}

// StoreLongTerm stores a durable memory record.
func (s *Service) StoreLongTerm(
	ctx context.Context,
	content, category string,
) (model.MemoryRecord, error) {
	return s.insert(ctx, model.TierLongTerm, content, category)
}

// StoreShortTerm stores a memory record that expires 60 days after
// creation.
func (s *Service) StoreShortTerm(
	ctx context.Context,
	content, category string,
) (model.MemoryRecord, error) {
	return s.insert(ctx, model.TierShortTerm, content, category)
}

func (s *Service) insert(
	ctx context.Context,
	tier model.MemoryTier,
	content, category string,
) (model.MemoryRecord, error) {
	if strings.TrimSpace(content) == "" {
		return model.MemoryRecord{}, &model.ValidationError{
			Field:   "content",
			Message: "must not be empty",
		}
	}

	return s.store.InsertMemory(ctx, model.MemoryRecord{
		Tier:     tier,
		Content:  content,
		Category: category,
	})
}

// Retrieve returns records whose content contains query, matched
// case-insensitively. Long-term matches come first ordered by most
// recent access, then unexpired short-term matches newest first.
// Long-term hits count as an access.
func (s *Service) Retrieve(
	ctx context.Context,
	query string,
) ([]model.MemoryRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &model.ValidationError{
			Field:   "query",
			Message: "must not be empty",
		}
	}
	return s.store.SearchMemory(ctx, query, s.now())
}

// StoreAcademic stores class material for later summarization and
// flashcard generation.
func (s *Service) StoreAcademic(
	ctx context.Context,
	subject, content, typ string,
) (model.AcademicInfo, error) {
	if strings.TrimSpace(subject) == "" {
		return model.AcademicInfo{}, &model.ValidationError{
			Field:   "subject",
			Message: "must not be empty",
		}
	}
	if strings.TrimSpace(content) == "" {
		return model.AcademicInfo{}, &model.ValidationError{
			Field:   "content",
			Message: "must not be empty",
		}
	}

	return s.store.InsertAcademic(ctx, model.AcademicInfo{
		Subject: subject,
		Content: content,
		Type:    typ,
	})
}

// Academic returns stored academic info, optionally filtered by subject.
func (s *Service) Academic(
	ctx context.Context,
	subject string,
) ([]model.AcademicInfo, error) {
	return s.store.GetAcademic(ctx, subject)
}
