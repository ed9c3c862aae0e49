package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/templui/medtrack/internal/model"
)

// Tray holds displayed alerts by slot, newest last.
// An alert reusing a slot replaces what is shown there; once capacity is reached the oldest is dropped.
type Tray struct {
	mu       sync.Mutex
	alerts   []model.Alert
	capacity int
}

func NewTray(capacity int) *Tray {
	if capacity <= 0 {
		capacity = 50
	}
	return &Tray{capacity: capacity}
}

func (t *Tray) Notify(ctx context.Context, alert model.Alert) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.alerts {
		if t.alerts[i].SlotID == alert.SlotID {
			t.alerts[i] = alert
			return nil
		}
	}

	t.alerts = append(t.alerts, alert)
	if len(t.alerts) > t.capacity {
		dropped := t.alerts[0]
		t.alerts = t.alerts[1:]
		slog.Debug("tray full, oldest alert dropped", "slot", dropped.SlotID)
	}

	slog.Info("alert displayed", "slot", alert.SlotID, "medicine", alert.MedicineName)
	return nil
}

// Alerts returns the displayed alerts, newest first.
func (t *Tray) Alerts() []model.Alert {
	t.mu.Lock()
	defer t.mu.Unlock()

	alerts := make([]model.Alert, len(t.alerts))
	for i, a := range t.alerts {
		alerts[len(t.alerts)-1-i] = a
	}
	return alerts
}

func (t *Tray) Dismiss(slotID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.alerts {
		if t.alerts[i].SlotID == slotID {
			t.alerts = append(t.alerts[:i], t.alerts[i+1:]...)
			return true
		}
	}
	return false
}
