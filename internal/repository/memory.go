package repository

import (
	"sync"
	"time"

	"github.com/templui/medtrack/internal/model"
)

// memoryMedicineRepository keeps the list in process memory. It resets on restart.
type memoryMedicineRepository struct {
	mu        sync.RWMutex
	medicines []model.Medicine
}

func NewMemoryMedicineRepository() MedicineRepository {
	return &memoryMedicineRepository{}
}

func (r *memoryMedicineRepository) Create(med *model.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	med.Position = len(r.medicines)
	r.medicines = append(r.medicines, *med)
	return nil
}

func (r *memoryMedicineRepository) ByID(id string) (*model.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.medicines {
		if r.medicines[i].ID == id {
			med := r.medicines[i]
			return &med, nil
		}
	}
	return nil, ErrMedicineNotFound
}

func (r *memoryMedicineRepository) ByPosition(position int) (*model.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if position < 0 || position >= len(r.medicines) {
		return nil, ErrMedicineNotFound
	}
	med := r.medicines[position]
	return &med, nil
}

func (r *memoryMedicineRepository) Medicines() ([]*model.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meds := make([]*model.Medicine, len(r.medicines))
	for i := range r.medicines {
		med := r.medicines[i]
		meds[i] = &med
	}
	return meds, nil
}

func (r *memoryMedicineRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.medicines), nil
}

func (r *memoryMedicineRepository) ToggleTaken(id string) (*model.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.medicines {
		if r.medicines[i].ID == id {
			r.medicines[i].Taken = !r.medicines[i].Taken
			r.medicines[i].UpdatedAt = time.Now()
			med := r.medicines[i]
			return &med, nil
		}
	}
	return nil, ErrMedicineNotFound
}
