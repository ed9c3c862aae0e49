package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/templui/medtrack/internal/model"
	"github.com/templui/medtrack/internal/storage"
)

type Export struct {
	ExportedAt time.Time         `json:"exported_at"`
	Medicines  []*model.Medicine `json:"medicines"`
}

// ExportService snapshots the medicine list and, when storage is configured, archives it.
type ExportService struct {
	medicineService *MedicineService
	storage         storage.Storage
}

func NewExportService(medicineService *MedicineService, storage storage.Storage) *ExportService {
	return &ExportService{
		medicineService: medicineService,
		storage:         storage,
	}
}

func (s *ExportService) Snapshot() (*Export, []byte, error) {
	meds, err := s.medicineService.Medicines()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	if meds == nil {
		meds = []*model.Medicine{}
	}

	export := &Export{
		ExportedAt: time.Now().UTC(),
		Medicines:  meds,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode export: %w", err)
	}

	return export, data, nil
}

// Archive stores a snapshot and returns a download URL.
// Without storage it does nothing and returns an empty URL.
func (s *ExportService) Archive(export *Export, data []byte) (string, error) {
	if s.storage == nil {
		return "", nil
	}

	path := fmt.Sprintf("exports/medicines-%s.json", export.ExportedAt.Format("20060102T150405Z"))
	err := s.storage.Save(path, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to archive export: %w", err)
	}

	return s.storage.URL(path)
}
