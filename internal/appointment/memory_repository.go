package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Appointment
}

// NewMemoryRepository builds an in-memory appointment store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[int64]Appointment)}
}

func (r *memoryRepository) Create(_ context.Context, a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.UpdatedAt = a.CreatedAt
	r.items[a.ID] = a
	return a, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return Appointment{}, apperr.NotFound("appointment not found")
	}
	return a, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]Appointment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []Appointment
	for _, a := range r.items {
		if filter.PatientID != 0 && a.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != 0 && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].TimeSlot > matched[j].TimeSlot
	})

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return apperr.NotFound("appointment not found")
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	r.items[id] = a
	return nil
}

func (r *memoryRepository) Update(_ context.Context, a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return Appointment{}, apperr.NotFound("appointment not found")
	}
	a.UpdatedAt = time.Now().UTC()
	r.items[a.ID] = a
	return a, nil
}

func (r *memoryRepository) SlotTaken(_ context.Context, doctorID int64, date time.Time, timeSlot string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.DoctorID != doctorID || a.TimeSlot != timeSlot || !a.Date.Equal(date) {
			continue
		}
		if a.Status == StatusCancelled || a.Status == StatusNoShow {
			continue
		}
		return true, nil
	}
	return false, nil
}
