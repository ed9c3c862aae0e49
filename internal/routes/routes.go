package routes

import (
	"io/fs"
	"net/http"

	"github.com/templui/medtrack/assets"
	"github.com/templui/medtrack/internal/app"
	"github.com/templui/medtrack/internal/handler"
	"github.com/templui/medtrack/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	medicine := handler.NewMedicineHandler(app.MedicineService, app.ExportService, app.Tray)
	notification := handler.NewNotificationHandler(app.Tray)

	mux := http.NewServeMux()

	// Static assets
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	mux.HandleFunc("GET /healthz", home.Health)

	// Medicines
	rateLimitAdd := middleware.RateLimit(app.Cfg.RateLimitAdd, app.Cfg.RateLimitWindow)
	mux.HandleFunc("GET /{$}", medicine.MedicinesPage)
	mux.HandleFunc("GET /medicines/export", medicine.Export)
	mux.HandleFunc("POST /medicines", rateLimitAdd(medicine.Add))
	mux.HandleFunc("POST /medicines/{id}/toggle", medicine.Toggle)

	// Notification tray
	mux.HandleFunc("GET /notifications", notification.Tray)
	mux.HandleFunc("DELETE /notifications/{slot}", notification.Dismiss)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // before CSRF, which reads IsProduction
		middleware.NonceMiddleware,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)
}
