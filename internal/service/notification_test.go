package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/templui/medtrack/internal/model"
	"github.com/templui/medtrack/internal/schedule"
)

type recordingNotifier struct {
	alerts []model.Alert
	err    error
}

func (n *recordingNotifier) Notify(ctx context.Context, alert model.Alert) error {
	n.alerts = append(n.alerts, alert)
	return n.err
}

func TestFireBuildsAlert(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec)

	svc.Fire(context.Background(), schedule.Extras{schedule.ExtraMedicineName: "Aspirin"})

	if len(rec.alerts) != 1 {
		t.Fatalf("notified %d alerts, want 1", len(rec.alerts))
	}
	alert := rec.alerts[0]
	if alert.Title != model.AlertTitle {
		t.Errorf("title = %q, want %q", alert.Title, model.AlertTitle)
	}
	if !strings.Contains(alert.Body, "Aspirin") {
		t.Errorf("body = %q, want it to name the medicine", alert.Body)
	}
	if alert.MedicineName != "Aspirin" {
		t.Errorf("medicine = %q, want Aspirin", alert.MedicineName)
	}
}

func TestFireWithoutPayloadIsSilent(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec)

	svc.Fire(context.Background(), nil)
	svc.Fire(context.Background(), schedule.Extras{"other": "x"})

	if len(rec.alerts) != 0 {
		t.Errorf("notified %d alerts, want 0", len(rec.alerts))
	}
}

func TestFireEmptyNameStillNotifies(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec)

	svc.Fire(context.Background(), schedule.Extras{schedule.ExtraMedicineName: ""})

	if len(rec.alerts) != 1 {
		t.Errorf("notified %d alerts, want 1", len(rec.alerts))
	}
}

func TestFireContinuesAfterNotifierError(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("smtp down")}
	tray := NewTray(10)
	svc := NewNotificationService(failing, tray)

	svc.Fire(context.Background(), schedule.Extras{schedule.ExtraMedicineName: "Aspirin"})

	if got := len(tray.Alerts()); got != 1 {
		t.Errorf("tray has %d alerts, want 1", got)
	}
}

func TestConcurrentAlertsUseDistinctSlots(t *testing.T) {
	tray := NewTray(10)
	svc := NewNotificationService(tray)
	next := 0
	svc.slotID = func() int { next++; return next }

	svc.Fire(context.Background(), schedule.Extras{schedule.ExtraMedicineName: "Aspirin"})
	svc.Fire(context.Background(), schedule.Extras{schedule.ExtraMedicineName: "Vitamin"})

	alerts := tray.Alerts()
	if len(alerts) != 2 {
		t.Fatalf("tray has %d alerts, want 2", len(alerts))
	}
	if alerts[0].MedicineName != "Vitamin" || alerts[1].MedicineName != "Aspirin" {
		t.Errorf("tray order = %q, %q; want newest first", alerts[0].MedicineName, alerts[1].MedicineName)
	}
}

func TestTray(t *testing.T) {
	t.Run("same slot replaces", func(t *testing.T) {
		tray := NewTray(10)
		tray.Notify(context.Background(), model.Alert{SlotID: 7, MedicineName: "A"})
		tray.Notify(context.Background(), model.Alert{SlotID: 7, MedicineName: "B"})

		alerts := tray.Alerts()
		if len(alerts) != 1 || alerts[0].MedicineName != "B" {
			t.Errorf("alerts = %+v, want only B", alerts)
		}
	})

	t.Run("capacity evicts oldest", func(t *testing.T) {
		tray := NewTray(2)
		for i := 1; i <= 3; i++ {
			tray.Notify(context.Background(), model.Alert{SlotID: i})
		}

		alerts := tray.Alerts()
		if len(alerts) != 2 || alerts[0].SlotID != 3 || alerts[1].SlotID != 2 {
			t.Errorf("alerts = %+v, want slots 3 and 2", alerts)
		}
	})

	t.Run("dismiss", func(t *testing.T) {
		tray := NewTray(10)
		tray.Notify(context.Background(), model.Alert{SlotID: 1})
		tray.Notify(context.Background(), model.Alert{SlotID: 2})

		if !tray.Dismiss(1) {
			t.Error("Dismiss(1) = false, want true")
		}
		if tray.Dismiss(1) {
			t.Error("second Dismiss(1) = true, want false")
		}
		if got := len(tray.Alerts()); got != 1 {
			t.Errorf("alerts after dismiss = %d, want 1", got)
		}
	})
}

func TestEmailServiceDevModeDoesNotSend(t *testing.T) {
	svc := NewEmailService("re_test", "from@example.com", "me@example.com", "http://localhost:8090", "Medtrack", true)

	err := svc.Notify(context.Background(), model.Alert{Title: model.AlertTitle, Body: "It's time to take Aspirin!", MedicineName: "Aspirin"})
	if err != nil {
		t.Errorf("Notify in dev mode: %v", err)
	}
}

func TestEmailServiceWithoutKeyFails(t *testing.T) {
	svc := NewEmailService("", "from@example.com", "me@example.com", "http://localhost:8090", "Medtrack", false)

	err := svc.Notify(context.Background(), model.Alert{MedicineName: "Aspirin"})
	if err == nil {
		t.Error("Notify without RESEND_API_KEY succeeded, want error")
	}
}

func TestReminderEmailTemplate(t *testing.T) {
	subject, body := reminderEmailTemplate(model.Alert{Title: model.AlertTitle, Body: "It's time to take Aspirin!", MedicineName: "Aspirin"}, "https://med.example.com", "Medtrack")

	if subject != "Medicine Time: Aspirin" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"It's time to take Aspirin!", "https://med.example.com", "The Medtrack Team"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
