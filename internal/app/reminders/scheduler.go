// Package reminders derives notification events from prayer records that
// carry a future reminder time. Evaluation runs on every change-feed
// delivery; the dedupe set guarantees at most one notification per record
// for the lifetime of the session.
package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
	"github.com/lumenlabs/lumen/internal/store"
)

const (
	// backfireWindow keeps a just-missed reminder alive: anything due within
	// the trailing window still fires, anything older is dropped so login
	// never floods with stale notifications.
	backfireWindow = time.Minute
	// horizon bounds one-shot timers to the plausible session length.
	// Records due further out are re-evaluated by later feed events.
	horizon = 24 * time.Hour
	// PollInterval is how often the ephemeral backend is re-read for
	// out-of-process edits.
	PollInterval = time.Minute
)

// Scheduler watches one user's prayer collection and fires each due reminder
// at most once per session. Deferred timers are not tracked for cancellation;
// a stale timer fires into a re-validation that consults current record
// state instead.
type Scheduler struct {
	notifier domain.Notifier
	now      func() time.Time
	after    func(time.Duration, func()) *time.Timer
	log      zerolog.Logger

	mu       sync.Mutex
	notified map[string]struct{}
	latest   map[string]domain.PrayerRequest
}

func NewScheduler(notifier domain.Notifier) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		now:      time.Now,
		after:    time.AfterFunc,
		log:      observability.WithComponent("reminders"),
		notified: make(map[string]struct{}),
		latest:   make(map[string]domain.PrayerRequest),
	}
}

// Watch subscribes to the prayer collection and evaluates every delivery,
// including the initial state. The returned func detaches the watcher.
func (s *Scheduler) Watch(ctx context.Context, prayers *store.Collection[domain.PrayerRequest]) (func(), error) {
	return prayers.Subscribe(ctx, s.Evaluate)
}

// Evaluate inspects every record against the current time: just-due records
// fire immediately, records due within the horizon get a one-shot timer, and
// everything else waits for a later evaluation.
func (s *Scheduler) Evaluate(records []domain.PrayerRequest) {
	now := s.now()

	s.mu.Lock()
	s.latest = make(map[string]domain.PrayerRequest, len(records))
	for _, r := range records {
		s.latest[r.ID] = r
	}
	due := make([]domain.PrayerRequest, 0)
	deferred := make([]domain.PrayerRequest, 0)
	for _, r := range records {
		if r.ReminderTime == 0 || r.IsAnswered {
			continue
		}
		if _, done := s.notified[r.ID]; done {
			continue
		}
		delta := r.ReminderTime.Time().Sub(now)
		switch {
		case delta <= 0 && delta > -backfireWindow:
			s.notified[r.ID] = struct{}{}
			due = append(due, r)
		case delta > 0 && delta < horizon:
			deferred = append(deferred, r)
		}
	}
	s.mu.Unlock()

	for _, r := range due {
		s.fire(r)
	}
	for _, r := range deferred {
		id := r.ID
		s.after(r.ReminderTime.Time().Sub(now), func() {
			s.fireIfStillDue(id)
		})
	}
}

// fireIfStillDue is the deferred-timer path. The record is re-validated
// against the latest feed state: it may have been deleted, resolved, or
// already notified by an earlier evaluation since the timer was set.
func (s *Scheduler) fireIfStillDue(id string) {
	s.mu.Lock()
	r, ok := s.latest[id]
	if !ok || r.IsAnswered || r.ReminderTime == 0 {
		s.mu.Unlock()
		return
	}
	if _, done := s.notified[id]; done {
		s.mu.Unlock()
		return
	}
	s.notified[id] = struct{}{}
	s.mu.Unlock()

	s.fire(r)
}

func (s *Scheduler) fire(r domain.PrayerRequest) {
	s.log.Info().Str("prayer_id", r.ID).Str("title", r.Title).Msg("reminder due")
	s.notifier.Notify("Prayer Reminder", fmt.Sprintf("It's time to pray for: %s", r.Title))
}
