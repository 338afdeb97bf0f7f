package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hnguyen/assistant-backend/internal/model"
)

// InsertMemory stores a record in the tier named by rec.Tier.
func (s *SQLiteStore) InsertMemory(
	ctx context.Context,
	rec model.MemoryRecord,
) (model.MemoryRecord, error) {
	rec.ID = s.newMemoryID()
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

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO long_term_memory (id, content, category, created_at, last_accessed)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ID, rec.Content, rec.Category, rec.CreatedAt, accessed,
		)
		if err != nil {
			return model.MemoryRecord{}, fmt.Errorf("inserting long-term memory: %w", err)
		}

	case model.TierShortTerm:
		expires := rec.CreatedAt.Add(model.ShortTermRetention)
		rec.ExpiresAt = &expires
		rec.LastAccessed = nil

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO short_term_memory (id, content, category, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ID, rec.Content, rec.Category, rec.CreatedAt, expires,
		)
		if err != nil {
			return model.MemoryRecord{}, fmt.Errorf("inserting short-term memory: %w", err)
		}

	default:
		return model.MemoryRecord{}, fmt.Errorf("unknown memory tier %q", rec.Tier)
	}

	return rec, nil
}

// SearchMemory returns records whose content contains query, long-term
// tier first. Expired short-term rows are purged before matching.
// Matching relies on SQLite LIKE, which is case-insensitive for ASCII.
func (s *SQLiteStore) SearchMemory(
	ctx context.Context,
	query string,
	now time.Time,
) ([]model.MemoryRecord, error) {
	now = now.UTC()
	pattern := "%" + query + "%"

	// Lazy purge: short-term rows past their expiry are dead and can go.
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM short_term_memory WHERE expires_at <= ?", now,
	); err != nil {
		return nil, fmt.Errorf("purging expired short-term memory: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning memory search transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, `
		SELECT id, content, category, created_at, last_accessed
		FROM long_term_memory
		WHERE content LIKE ?
		ORDER BY last_accessed DESC, id DESC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("querying long-term memory: %w", err)
	}

	var results []model.MemoryRecord
	var matchedIDs []interface{}
	for rows.Next() {
		var rec model.MemoryRecord
		var accessed time.Time
		if err := rows.Scan(
			&rec.ID, &rec.Content, &rec.Category, &rec.CreatedAt, &accessed,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning long-term memory row: %w", err)
		}
		rec.Tier = model.TierLongTerm
		rec.LastAccessed = &accessed
		results = append(results, rec)
		matchedIDs = append(matchedIDs, rec.ID)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing long-term memory rows: %w", err)
	}

	// A retrieval hit counts as an access.
	for i, id := range matchedIDs {
		if _, err := tx.ExecContext(ctx,
			"UPDATE long_term_memory SET last_accessed = ? WHERE id = ?", now, id,
		); err != nil {
			return nil, fmt.Errorf("updating last_accessed: %w", err)
		}
		bumped := now
		results[i].LastAccessed = &bumped
	}

	rows, err = tx.QueryxContext(ctx, `
		SELECT id, content, category, created_at, expires_at
		FROM short_term_memory
		WHERE content LIKE ? AND expires_at > ?
		ORDER BY created_at DESC, id DESC`,
		pattern, now,
	)
	if err != nil {
		return nil, fmt.Errorf("querying short-term memory: %w", err)
	}

	for rows.Next() {
		var rec model.MemoryRecord
		var expires time.Time
		if err := rows.Scan(
			&rec.ID, &rec.Content, &rec.Category, &rec.CreatedAt, &expires,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning short-term memory row: %w", err)
		}
		rec.Tier = model.TierShortTerm
		rec.ExpiresAt = &expires
		results = append(results, rec)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing short-term memory rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing memory search: %w", err)
	}

	return results, nil
}

// InsertAcademic stores a piece of academic info.
func (s *SQLiteStore) InsertAcademic(
	ctx context.Context,
	info model.AcademicInfo,
) (model.AcademicInfo, error) {
	info.ID = s.newMemoryID()
	info.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO academic_info (id, subject, content, type, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		info.ID, info.Subject, info.Content, info.Type, info.CreatedAt,
	)
	if err != nil {
		return model.AcademicInfo{}, fmt.Errorf("inserting academic info: %w", err)
	}

	return info, nil
}

// GetAcademic retrieves stored academic info, newest first. An empty
// subject matches all records.
func (s *SQLiteStore) GetAcademic(
	ctx context.Context,
	subject string,
) ([]model.AcademicInfo, error) {
	query := "SELECT * FROM academic_info ORDER BY created_at DESC, id DESC"
	args := []interface{}{}
	if subject != "" {
		query = "SELECT * FROM academic_info WHERE subject = ? ORDER BY created_at DESC, id DESC"
		args = append(args, subject)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying academic info: %w", err)
	}
	defer rows.Close()

	var infos []model.AcademicInfo
	for rows.Next() {
		var info model.AcademicInfo
		if err := rows.Scan(
			&info.ID, &info.Subject, &info.Content, &info.Type, &info.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning academic info row: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}
