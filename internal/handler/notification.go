package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/medtrack/internal/service"
	"github.com/templui/medtrack/internal/ui"
	"github.com/templui/medtrack/internal/ui/pages"
)

type NotificationHandler struct {
	tray *service.Tray
}

func NewNotificationHandler(tray *service.Tray) *NotificationHandler {
	return &NotificationHandler{
		tray: tray,
	}
}

func (h *NotificationHandler) Tray(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Tray(h.tray.Alerts()))
}

func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil {
		http.Error(w, "Invalid notification slot", http.StatusBadRequest)
		return
	}

	if !h.tray.Dismiss(slot) {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	ui.Render(w, r, pages.Tray(h.tray.Alerts()))
}
