package directory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

type memoryRepository struct {
	mu          sync.RWMutex
	nextDept    int64
	nextDoctor  int64
	departments map[int64]Department
	doctors     map[int64]Doctor
}

// NewMemoryRepository builds an in-memory directory store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		departments: make(map[int64]Department),
		doctors:     make(map[int64]Doctor),
	}
}

func (r *memoryRepository) ListDepartments(_ context.Context, activeOnly bool) ([]Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Department
	for _, d := range r.departments {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) GetDepartment(_ context.Context, id int64) (Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.departments[id]
	if !ok {
		return Department{}, apperr.NotFound("department not found")
	}
	return d, nil
}

func (r *memoryRepository) CreateDepartment(_ context.Context, d Department) (Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.departments {
		if strings.EqualFold(existing.Name, d.Name) {
			return Department{}, apperr.Conflict("department with this name already exists")
		}
	}
	r.nextDept++
	d.ID = r.nextDept
	d.UpdatedAt = d.CreatedAt
	r.departments[d.ID] = d
	return d, nil
}

func (r *memoryRepository) UpdateDepartment(_ context.Context, d Department) (Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.departments[d.ID]; !ok {
		return Department{}, apperr.NotFound("department not found")
	}
	d.UpdatedAt = time.Now().UTC()
	r.departments[d.ID] = d
	return d, nil
}

func (r *memoryRepository) DeleteDepartment(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.departments[id]; !ok {
		return apperr.NotFound("department not found")
	}
	delete(r.departments, id)
	return nil
}

func (r *memoryRepository) ListDoctors(_ context.Context, filter DoctorFilter) ([]Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Doctor
	for _, d := range r.doctors {
		if filter.DepartmentID != 0 && d.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Specialty != "" && !strings.EqualFold(d.Specialty, filter.Specialty) {
			continue
		}
		if filter.AvailableOnly && !d.IsAvailable {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepository) GetDoctor(_ context.Context, id int64) (Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.doctors[id]
	if !ok {
		return Doctor{}, apperr.NotFound("doctor not found")
	}
	return d, nil
}

func (r *memoryRepository) CreateDoctor(_ context.Context, d Doctor) (Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.doctors {
		if existing.UserID == d.UserID {
			return Doctor{}, apperr.Conflict("doctor profile already exists for this user")
		}
	}
	r.nextDoctor++
	d.ID = r.nextDoctor
	d.UpdatedAt = d.CreatedAt
	r.doctors[d.ID] = d
	return d, nil
}

func (r *memoryRepository) UpdateDoctor(_ context.Context, d Doctor) (Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[d.ID]; !ok {
		return Doctor{}, apperr.NotFound("doctor not found")
	}
	d.UpdatedAt = time.Now().UTC()
	r.doctors[d.ID] = d
	return d, nil
}

func (r *memoryRepository) DeleteDoctor(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[id]; !ok {
		return apperr.NotFound("doctor not found")
	}
	delete(r.doctors, id)
	return nil
}
