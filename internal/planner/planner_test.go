package planner

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

type recordingScheduler struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingScheduler) Schedule(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBuildStudyPlanFullIntervals(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	sched := &recordingScheduler{}
	p := New(sched, log.New(io.Discard, "", 0), fixedClock(now))

	exam := now.AddDate(0, 0, 45)
	sessions := p.BuildStudyPlan(context.Background(), "biology", exam)

	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions, got %d", len(sessions))
	}
	wantDays := []int{1, 3, 7, 14, 30}
	for i, s := range sessions {
		want := now.AddDate(0, 0, wantDays[i])
		if !s.Start.Equal(want) {
			t.Errorf("session %d start = %s, want %s", i, s.Start, want)
		}
		if s.Duration != time.Hour {
			t.Errorf("session %d duration = %s, want 1h", i, s.Duration)
		}
	}
	if len(sched.events) != 5 {
		t.Errorf("expected 5 scheduled events, got %d", len(sched.events))
	}
}

func TestBuildStudyPlanDropsIntervalsPastExam(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	p := New(nil, log.New(io.Discard, "", 0), fixedClock(now))

	exam := now.AddDate(0, 0, 10)
	sessions := p.BuildStudyPlan(context.Background(), "chemistry", exam)

	if len(sessions) != 3 {
		t.Fatalf("expected sessions at days 1, 3, 7, got %d", len(sessions))
	}
	last := sessions[len(sessions)-1]
	if want := now.AddDate(0, 0, 7); !last.Start.Equal(want) {
		t.Errorf("last session start = %s, want %s", last.Start, want)
	}
}

func TestBuildStudyPlanExamTomorrow(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	p := New(nil, log.New(io.Discard, "", 0), fixedClock(now))

	sessions := p.BuildStudyPlan(context.Background(), "history", now.AddDate(0, 0, 1))
	if len(sessions) != 1 {
		t.Fatalf("expected a single day-1 session, got %d", len(sessions))
	}
}

func TestBuildStudyPlanSchedulerFailureIsBestEffort(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	sched := &recordingScheduler{err: errors.New("calendar unreachable")}
	p := New(sched, log.New(io.Discard, "", 0), fixedClock(now))

	sessions := p.BuildStudyPlan(context.Background(), "physics", now.AddDate(0, 0, 45))
	if len(sessions) != 5 {
		t.Fatalf("expected all 5 sessions despite scheduler errors, got %d", len(sessions))
	}
}
