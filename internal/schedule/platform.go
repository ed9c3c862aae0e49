package schedule

import (
	"context"
	"log/slog"
	"maps"
	"sort"
	"sync"
	"time"
)

// ExtraMedicineName is the payload key carrying the medicine name to the receiver.
const ExtraMedicineName = "medicine_name"

// Extras is the payload handed back to the Receiver when a timer fires.
type Extras map[string]string

// Reminder is one pending wake timer.
type Reminder struct {
	Key     string    `json:"key"`
	At      time.Time `json:"at"`
	Payload Extras    `json:"payload"`
}

// Receiver is invoked when a wake timer fires.
type Receiver interface {
	Fire(ctx context.Context, payload Extras)
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(ctx context.Context, payload Extras)

func (f ReceiverFunc) Fire(ctx context.Context, payload Extras) {
	f(ctx, payload)
}

// Platform registers one-shot wake timers keyed by a scheduling slot key.
// Registering a key that is already pending replaces the earlier timer.
type Platform interface {
	Register(key string, at time.Time, payload Extras)
	Cancel(key string) bool
	Pending() []Reminder
	Stop()
}

type pendingTimer struct {
	reminder Reminder
	timer    *time.Timer
}

// TimerPlatform is an in-process Platform backed by time.AfterFunc.
// Receivers run on the timer goroutine, never under the platform lock.
type TimerPlatform struct {
	mu       sync.Mutex
	timers   map[string]*pendingTimer
	receiver Receiver
	stopped  bool
}

func NewTimerPlatform(receiver Receiver) *TimerPlatform {
	return &TimerPlatform{
		timers:   make(map[string]*pendingTimer),
		receiver: receiver,
	}
}

func (p *TimerPlatform) Register(key string, at time.Time, payload Extras) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		slog.Warn("timer platform stopped, reminder dropped", "key", key, "at", at)
		return
	}

	old, ok := p.timers[key]
	if ok {
		old.timer.Stop()
		slog.Debug("reminder replaced", "key", key, "old_at", old.reminder.At, "at", at)
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	pt := &pendingTimer{
		reminder: Reminder{Key: key, At: at, Payload: maps.Clone(payload)},
	}
	pt.timer = time.AfterFunc(delay, func() {
		p.fire(key, pt)
	})
	p.timers[key] = pt
}

func (p *TimerPlatform) fire(key string, pt *pendingTimer) {
	p.mu.Lock()
	current, ok := p.timers[key]
	if !ok || current != pt {
		// Replaced or cancelled after the timer already started.
		p.mu.Unlock()
		return
	}
	delete(p.timers, key)
	p.mu.Unlock()

	slog.Debug("reminder fired", "key", key, "at", pt.reminder.At)
	p.receiver.Fire(context.Background(), pt.reminder.Payload)
}

func (p *TimerPlatform) Cancel(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pt, ok := p.timers[key]
	if !ok {
		return false
	}
	pt.timer.Stop()
	delete(p.timers, key)
	return true
}

// Pending returns the pending reminders ordered by fire time.
func (p *TimerPlatform) Pending() []Reminder {
	p.mu.Lock()
	defer p.mu.Unlock()

	reminders := make([]Reminder, 0, len(p.timers))
	for _, pt := range p.timers {
		reminders = append(reminders, pt.reminder)
	}
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].At.Equal(reminders[j].At) {
			return reminders[i].Key < reminders[j].Key
		}
		return reminders[i].At.Before(reminders[j].At)
	})
	return reminders
}

// Stop cancels every pending timer. Later registrations are dropped.
func (p *TimerPlatform) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, pt := range p.timers {
		pt.timer.Stop()
		delete(p.timers, key)
	}
	p.stopped = true
}
