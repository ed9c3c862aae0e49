package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/medtrack/internal/model"
	"github.com/templui/medtrack/internal/repository"
	"github.com/templui/medtrack/internal/schedule"
)

var (
	ErrMedicineIndexOutOfRange = errors.New("medicine index out of range")
)

type MedicineService struct {
	repo      repository.MedicineRepository
	scheduler *schedule.Scheduler
}

func NewMedicineService(repo repository.MedicineRepository, scheduler *schedule.Scheduler) *MedicineService {
	return &MedicineService{
		repo:      repo,
		scheduler: scheduler,
	}
}

// AddMedicine appends a new entry and schedules its reminder under the entry's id.
// Name and time are stored as given. When the time does not parse the entry is still
// added and the returned reminder is nil; only storage failures return an error.
func (s *MedicineService) AddMedicine(name, clock string) (*model.Medicine, *schedule.Reminder, error) {
	now := time.Now()
	med := &model.Medicine{
		ID:        uuid.New().String(),
		Name:      name,
		Time:      clock,
		Taken:     false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(med)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add medicine: %w", err)
	}

	reminder, err := s.scheduler.Schedule(*med, med.ID)
	if err != nil {
		slog.Warn("medicine added without reminder", "error", err, "medicine_id", med.ID, "time", clock)
		return med, nil, nil
	}

	return med, reminder, nil
}

// ToggleTaken flips the taken flag of the entry at index.
func (s *MedicineService) ToggleTaken(index int) (*model.Medicine, error) {
	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= count {
		return nil, ErrMedicineIndexOutOfRange
	}

	med, err := s.repo.ByPosition(index)
	if err != nil {
		return nil, err
	}

	return s.ToggleTakenByID(med.ID)
}

// ToggleTakenByID flips the taken flag of the entry with the given id.
// The flip happens inside the repository, so concurrent toggles are never lost.
func (s *MedicineService) ToggleTakenByID(id string) (*model.Medicine, error) {
	med, err := s.repo.ToggleTaken(id)
	if errors.Is(err, repository.ErrMedicineNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle medicine: %w", err)
	}

	return med, nil
}

func (s *MedicineService) Medicines() ([]*model.Medicine, error) {
	return s.repo.Medicines()
}

// Reminders returns pending reminders keyed by medicine id.
func (s *MedicineService) Reminders() map[string]schedule.Reminder {
	pending := s.scheduler.Pending()
	reminders := make(map[string]schedule.Reminder, len(pending))
	for _, r := range pending {
		reminders[r.Key] = r
	}
	return reminders
}

// RestoreReminders re-registers reminders for stored entries after a restart.
// Timers live only in process memory, so a persistent list needs them rebuilt.
func (s *MedicineService) RestoreReminders() (int, error) {
	meds, err := s.repo.Medicines()
	if err != nil {
		return 0, fmt.Errorf("failed to load medicines: %w", err)
	}

	restored := 0
	for _, med := range meds {
		_, err := s.scheduler.Schedule(*med, med.ID)
		if err != nil {
			slog.Debug("skipping reminder restore", "error", err, "medicine_id", med.ID)
			continue
		}
		restored++
	}

	slog.Info("reminders restored", "restored", restored, "medicines", len(meds))
	return restored, nil
}

// Close cancels every pending reminder.
func (s *MedicineService) Close() {
	s.scheduler.Stop()
}
