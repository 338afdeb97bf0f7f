package model

import "time"

// MemoryTier identifies which retention tier a memory record lives in.
type MemoryTier string

const (
	TierLongTerm  MemoryTier = "long_term"
	TierShortTerm MemoryTier = "short_term"
)

// ShortTermRetention is how long a short-term record stays retrievable.
const ShortTermRetention = 60 * 24 * time.Hour

// MemoryRecord is a stored piece of assistant memory. Long-term records
// track when they were last matched by a retrieval; short-term records
// carry an expiry after which they are excluded from results.
type MemoryRecord struct {
	ID        string     `json:"id" db:"id"`
	Tier      MemoryTier `json:"tier" db:"-"`
	Content   string     `json:"content" db:"content"`
	Category  string     `json:"category" db:"category"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	// LastAccessed is set for long-term records only.
	LastAccessed *time.Time `json:"last_accessed,omitempty" db:"last_accessed"`

	// ExpiresAt is set for short-term records only.
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}

// AcademicInfo is stored class material (notes, assignments, exam prep)
// used as source text for summaries and flashcards.
type AcademicInfo struct {
	ID        string    `json:"id" db:"id"`
	Subject   string    `json:"subject" db:"subject"`
	Content   string    `json:"content" db:"content"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Flashcard is a question/answer pair generated from study content.
// Flashcards are returned to the caller and not persisted.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
