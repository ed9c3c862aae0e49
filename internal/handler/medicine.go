package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/templui/medtrack/internal/model"
	"github.com/templui/medtrack/internal/repository"
	"github.com/templui/medtrack/internal/service"
	"github.com/templui/medtrack/internal/ui"
	"github.com/templui/medtrack/internal/ui/components/toast"
	"github.com/templui/medtrack/internal/ui/pages"
)

type MedicineHandler struct {
	medicineService *service.MedicineService
	exportService   *service.ExportService
	tray            *service.Tray
}

func NewMedicineHandler(medicineService *service.MedicineService, exportService *service.ExportService, tray *service.Tray) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
		exportService:   exportService,
		tray:            tray,
	}
}

func (h *MedicineHandler) MedicinesPage(w http.ResponseWriter, r *http.Request) {
	meds, err := h.medicineService.Medicines()
	if err != nil {
		slog.Error("failed to list medicines", "error", err)
		http.Error(w, "Failed to load medicines", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Medicines(meds, h.medicineService.Reminders(), h.tray.Alerts()))
}

func (h *MedicineHandler) Add(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	clock := r.FormValue("time")

	med, reminder, err := h.medicineService.AddMedicine(name, clock)
	if err != nil {
		slog.Error("failed to add medicine", "error", err)
		ui.RenderOOB(w, r, toast.Toast(toast.Props{
			Title:       "Error",
			Description: "Failed to save medicine",
			Variant:     toast.VariantError,
			Icon:        true,
			Dismissible: true,
		}), "beforeend:#toast-container")
		return
	}

	h.renderList(w, r)

	if reminder == nil {
		ui.RenderOOB(w, r, toast.Toast(toast.Props{
			Title:       "Saved without reminder",
			Description: fmt.Sprintf("%q is not a valid time, use HH:mm", med.Time),
			Variant:     toast.VariantInfo,
			Icon:        true,
			Dismissible: true,
		}), "beforeend:#toast-container")
		return
	}

	ui.RenderOOB(w, r, toast.Toast(toast.Props{
		Title:       "Saved",
		Description: fmt.Sprintf("Reminder set for %s", reminder.At.Format("Mon 15:04")),
		Variant:     toast.VariantSuccess,
		Icon:        true,
		Dismissible: true,
	}), "beforeend:#toast-container")
}

func (h *MedicineHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, err := h.medicineService.ToggleTakenByID(id)
	if errors.Is(err, repository.ErrMedicineNotFound) {
		http.Error(w, "Medicine not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to toggle medicine", "error", err, "medicine_id", id)
		http.Error(w, "Failed to update medicine", http.StatusInternalServerError)
		return
	}

	h.renderList(w, r)
}

func (h *MedicineHandler) renderList(w http.ResponseWriter, r *http.Request) {
	meds, err := h.medicineService.Medicines()
	if err != nil {
		slog.Error("failed to reload medicines", "error", err)
		meds = []*model.Medicine{}
	}

	ui.Render(w, r, pages.MedicineList(meds, h.medicineService.Reminders()))
}

// Export downloads the list as JSON. When archive storage is configured the
// snapshot is also uploaded and its link returned in X-Export-URL.
func (h *MedicineHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, data, err := h.exportService.Snapshot()
	if err != nil {
		slog.Error("failed to export medicines", "error", err)
		http.Error(w, "Failed to export medicines", http.StatusInternalServerError)
		return
	}

	url, err := h.exportService.Archive(export, data)
	if err != nil {
		slog.Error("failed to archive export", "error", err)
	} else if url != "" {
		w.Header().Set("X-Export-URL", url)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=medicines-export.json")

	_, err = w.Write(data)
	if err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
