package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/medtrack/internal/model"
)

type Scheduler struct {
	platform Platform
	now      func() time.Time
}

// NewScheduler returns a Scheduler registering timers on platform.
// A nil now defaults to time.Now.
func NewScheduler(platform Platform, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		platform: platform,
		now:      now,
	}
}

// Schedule registers a one-shot reminder for the next occurrence of med.Time under key.
// A pending reminder with the same key is replaced.
// Returns ErrMalformedTime without registering anything when med.Time does not parse.
func (s *Scheduler) Schedule(med model.Medicine, key string) (*Reminder, error) {
	hour, minute, err := ParseClock(med.Time)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", med.Time, err)
	}

	at := Next(s.now(), hour, minute)
	payload := Extras{ExtraMedicineName: med.Name}

	s.platform.Register(key, at, payload)
	slog.Info("reminder scheduled", "key", key, "medicine", med.Name, "at", at)

	return &Reminder{Key: key, At: at, Payload: payload}, nil
}

func (s *Scheduler) Cancel(key string) bool {
	cancelled := s.platform.Cancel(key)
	if cancelled {
		slog.Info("reminder cancelled", "key", key)
	}
	return cancelled
}

func (s *Scheduler) Pending() []Reminder {
	return s.platform.Pending()
}

func (s *Scheduler) Stop() {
	s.platform.Stop()
}
