package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/medtrack/internal/config"
	"github.com/templui/medtrack/internal/db"
	"github.com/templui/medtrack/internal/repository"
	"github.com/templui/medtrack/internal/schedule"
	"github.com/templui/medtrack/internal/service"
	"github.com/templui/medtrack/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Tray                *service.Tray
	Platform            *schedule.TimerPlatform
	MedicineService     *service.MedicineService
	NotificationService *service.NotificationService
	ExportService       *service.ExportService
}

func New(cfg *config.Config) (*App, error) {
	// Repository: in-memory by default, sqlite or postgres when configured
	var database *sqlx.DB
	var medicineRepository repository.MedicineRepository
	if cfg.IsPersistent() {
		var err error
		database, err = db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %v", err)
		}

		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %v", err)
		}
		medicineRepository = repository.NewMedicineRepository(database)
	} else {
		slog.Info("using in-memory medicine list (resets on restart)")
		medicineRepository = repository.NewMemoryMedicineRepository()
	}

	// Notifications
	tray := service.NewTray(cfg.TrayCapacity)
	notifiers := []service.Notifier{tray}
	if cfg.NotifyEmail != "" {
		notifiers = append(notifiers, service.NewEmailService(
			cfg.ResendAPIKey,
			cfg.EmailFrom,
			cfg.NotifyEmail,
			cfg.AppURL,
			cfg.AppName,
			cfg.IsDevelopment(),
		))
	}
	notificationService := service.NewNotificationService(notifiers...)

	// Scheduling: fired timers go straight to the notification service
	platform := schedule.NewTimerPlatform(notificationService)
	scheduler := schedule.NewScheduler(platform, nil)
	medicineService := service.NewMedicineService(medicineRepository, scheduler)

	if cfg.IsPersistent() {
		_, err := medicineService.RestoreReminders()
		if err != nil {
			slog.Error("failed to restore reminders", "error", err)
		}
	}

	// Storage
	archive, err := storage.New(cfg)
	if err != nil {
		medicineService.Close()
		if database != nil {
			database.Close()
		}
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}
	exportService := service.NewExportService(medicineService, archive)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Tray:                tray,
		Platform:            platform,
		MedicineService:     medicineService,
		NotificationService: notificationService,
		ExportService:       exportService,
	}, nil
}

func (a *App) Close() error {
	a.MedicineService.Close()
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
