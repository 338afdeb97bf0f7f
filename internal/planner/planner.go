// Package planner builds spaced-repetition study plans and hands the
// resulting sessions to a calendar capability.
package planner

import (
	"context"
	"fmt"
	"log"
	"time"
)

// reviewIntervals are the spaced-repetition offsets, in days, between
// plan creation and each review session.
var reviewIntervals = []int{1, 3, 7, 14, 30}

const sessionDuration = time.Hour

// Event is a calendar entry for a single study session.
type Event struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Start       time.Time     `json:"start"`
	Duration    time.Duration `json:"duration"`
}

// Scheduler places events on an external calendar. Calendar integration
// itself lives outside this backend; the planner only invokes the
// capability.
type Scheduler interface {
	Schedule(ctx context.Context, ev Event) error
}

// NopScheduler discards events. Used when no calendar is configured.
type NopScheduler struct{}

func (NopScheduler) Schedule(context.Context, Event) error { return nil }

// Planner generates study plans.
type Planner struct {
	scheduler Scheduler
	logger    *log.Logger
	now       func() time.Time
}

// New creates a planner. scheduler may be nil; now may be nil,
// defaulting to time.Now.
func New(scheduler Scheduler, logger *log.Logger, now func() time.Time) *Planner {
	if scheduler == nil {
		scheduler = NopScheduler{}
	}
	if logger == nil {
		logger = log.Default()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Planner{scheduler: scheduler, logger: logger, now: now}
}

// BuildStudyPlan generates review sessions for a subject leading up to
// examDate. Sessions fall at the spaced-repetition intervals; intervals
// past the exam are dropped. Scheduling each session is best-effort:
// a scheduler failure is logged and the session is still returned.
func (p *Planner) BuildStudyPlan(
	ctx context.Context,
	subject string,
	examDate time.Time,
) []Event {
	now := p.now()
	daysUntilExam := int(examDate.Sub(now).Hours() / 24)

	var sessions []Event
	for _, interval := range reviewIntervals {
		if interval > daysUntilExam {
			continue
		}
		ev := Event{
			Summary: fmt.Sprintf("Study session - %s", subject),
			Description: fmt.Sprintf(
				"Review %s - spaced repetition session at day %d", subject, interval,
			),
			Start:    now.AddDate(0, 0, interval),
			Duration: sessionDuration,
		}
		sessions = append(sessions, ev)

		if err := p.scheduler.Schedule(ctx, ev); err != nil {
			p.logger.Printf("scheduling study session failed subject=%s start=%s err=%v",
				subject, ev.Start.Format(time.RFC3339), err)
		}
	}

	return sessions
}
