package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/templui/medtrack/internal/model"
	"github.com/templui/medtrack/internal/repository"
	"github.com/templui/medtrack/internal/schedule"
	"github.com/templui/medtrack/internal/service"
)

type testEnv struct {
	medicines *service.MedicineService
	tray      *service.Tray
	mux       *http.ServeMux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	platform := schedule.NewTimerPlatform(schedule.ReceiverFunc(func(context.Context, schedule.Extras) {}))
	medicines := service.NewMedicineService(repository.NewMemoryMedicineRepository(), schedule.NewScheduler(platform, nil))
	t.Cleanup(medicines.Close)

	tray := service.NewTray(10)
	medicine := NewMedicineHandler(medicines, service.NewExportService(medicines, nil), tray)
	notification := NewNotificationHandler(tray)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", medicine.MedicinesPage)
	mux.HandleFunc("POST /medicines", medicine.Add)
	mux.HandleFunc("POST /medicines/{id}/toggle", medicine.Toggle)
	mux.HandleFunc("GET /medicines/export", medicine.Export)
	mux.HandleFunc("GET /notifications", notification.Tray)
	mux.HandleFunc("DELETE /notifications/{slot}", notification.Dismiss)

	return &testEnv{medicines: medicines, tray: tray, mux: mux}
}

func (e *testEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestAddMedicine(t *testing.T) {
	tests := []struct {
		name      string
		clock     string
		wantToast string
	}{
		{"valid time", "08:00", "Reminder set for"},
		{"malformed time", "8am", "Saved without reminder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodPost, "/medicines", url.Values{"name": {"Aspirin"}, "time": {tt.clock}})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}

			body := rec.Body.String()
			for _, want := range []string{`id="medicine-list"`, "Aspirin", tt.wantToast, `hx-swap-oob="beforeend:#toast-container"`} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}

			meds, _ := env.medicines.Medicines()
			if len(meds) != 1 || meds[0].Time != tt.clock || meds[0].Taken {
				t.Errorf("medicines = %+v", meds)
			}
		})
	}
}

func TestAddEscapesName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/medicines", url.Values{"name": {"<script>x</script>"}, "time": {"10:00"}})
	if strings.Contains(rec.Body.String(), "<script>x</script>") {
		t.Error("medicine name rendered unescaped")
	}
}

func TestToggleMedicine(t *testing.T) {
	env := newTestEnv(t)
	med, _, err := env.medicines.AddMedicine("Vitamin", "23:59")
	if err != nil {
		t.Fatal(err)
	}

	rec := env.do(http.MethodPost, "/medicines/"+med.ID+"/toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), " checked>") {
		t.Error("toggled entry not rendered as checked")
	}

	rec = env.do(http.MethodPost, "/medicines/missing/toggle", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rec.Code)
	}
}

func TestMedicinesPage(t *testing.T) {
	env := newTestEnv(t)
	env.medicines.AddMedicine("Aspirin", "08:00")
	env.medicines.AddMedicine("Ibuprofen", "bad")

	rec := env.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	first := strings.Index(body, "Aspirin")
	second := strings.Index(body, "Ibuprofen")
	if first < 0 || second < 0 || first > second {
		t.Error("entries not rendered in insertion order")
	}
	if !strings.Contains(body, "Next reminder") || !strings.Contains(body, "No reminder pending") {
		t.Error("reminder labels missing")
	}
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.medicines.AddMedicine("Aspirin", "08:00")

	rec := env.do(http.MethodGet, "/medicines/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
	if rec.Header().Get("X-Export-URL") != "" {
		t.Error("export URL set without storage")
	}

	var export service.Export
	err := json.Unmarshal(rec.Body.Bytes(), &export)
	if err != nil {
		t.Fatal(err)
	}
	if len(export.Medicines) != 1 || export.Medicines[0].Name != "Aspirin" {
		t.Errorf("export = %+v", export)
	}
}

func TestNotificationTray(t *testing.T) {
	env := newTestEnv(t)
	env.tray.Notify(context.Background(), model.Alert{
		SlotID:       42,
		Title:        model.AlertTitle,
		Body:         "It's time to take Aspirin!",
		MedicineName: "Aspirin",
		FiredAt:      time.Now(),
	})

	rec := env.do(http.MethodGet, "/notifications", nil)
	if !strings.Contains(rec.Body.String(), "It&#39;s time to take Aspirin!") {
		t.Errorf("tray body = %s", rec.Body.String())
	}

	tests := []struct {
		slot string
		want int
	}{
		{"nope", http.StatusBadRequest},
		{"7", http.StatusNotFound},
		{"42", http.StatusOK},
		{"42", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := env.do(http.MethodDelete, "/notifications/"+tt.slot, nil)
		if rec.Code != tt.want {
			t.Errorf("DELETE %s status = %d, want %d", tt.slot, rec.Code, tt.want)
		}
	}

	if len(env.tray.Alerts()) != 0 {
		t.Error("alert not dismissed")
	}
}
