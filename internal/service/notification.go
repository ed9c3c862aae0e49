package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/templui/medtrack/internal/model"
	"github.com/templui/medtrack/internal/schedule"
)

// Notifier displays or delivers an alert.
type Notifier interface {
	Notify(ctx context.Context, alert model.Alert) error
}

// NotificationService turns fired reminders into alerts.
type NotificationService struct {
	notifiers []Notifier
	slotID    func() int
}

func NewNotificationService(notifiers ...Notifier) *NotificationService {
	return &NotificationService{
		notifiers: notifiers,
		slotID:    func() int { return int(rand.Int32()) },
	}
}

// Fire implements schedule.Receiver. A payload without a medicine name is ignored.
func (s *NotificationService) Fire(ctx context.Context, payload schedule.Extras) {
	name, ok := payload[schedule.ExtraMedicineName]
	if !ok {
		slog.Debug("reminder fired without medicine name")
		return
	}

	alert := model.Alert{
		SlotID:       s.slotID(),
		Title:        model.AlertTitle,
		Body:         fmt.Sprintf("It's time to take %s!", name),
		MedicineName: name,
		FiredAt:      time.Now(),
	}

	for _, n := range s.notifiers {
		err := n.Notify(ctx, alert)
		if err != nil {
			slog.Error("failed to deliver reminder", "error", err, "medicine", name, "slot", alert.SlotID)
		}
	}
}
