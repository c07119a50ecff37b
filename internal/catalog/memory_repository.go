package catalog

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
	nextService int64
	nextAmb     int64
	nextProduct int64
	services    map[int64]Service
	ambulances  map[int64]Ambulance
	products    map[int64]EyeProduct
}

// NewMemoryRepository builds an in-memory catalog store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		services:   make(map[int64]Service),
		ambulances: make(map[int64]Ambulance),
		products:   make(map[int64]EyeProduct),
	}
}

func (r *memoryRepository) ListServices(_ context.Context, activeOnly bool) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Service
	for _, s := range r.services {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) GetService(_ context.Context, id int64) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return Service{}, apperr.NotFound("service not found")
	}
	return s, nil
}

func (r *memoryRepository) CreateService(_ context.Context, s Service) (Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.services {
		if strings.EqualFold(existing.Name, s.Name) {
			return Service{}, apperr.Conflict("service with this name already exists")
		}
	}
	r.nextService++
	s.ID = r.nextService
	s.UpdatedAt = s.CreatedAt
	r.services[s.ID] = s
	return s, nil
}

func (r *memoryRepository) UpdateService(_ context.Context, s Service) (Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[s.ID]; !ok {
		return Service{}, apperr.NotFound("service not found")
	}
	s.UpdatedAt = time.Now().UTC()
	r.services[s.ID] = s
	return s, nil
}

func (r *memoryRepository) DeleteService(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return apperr.NotFound("service not found")
	}
	delete(r.services, id)
	return nil
}

func (r *memoryRepository) ListAmbulances(_ context.Context, activeOnly bool) ([]Ambulance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Ambulance
	for _, a := range r.ambulances {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) GetAmbulance(_ context.Context, id int64) (Ambulance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.ambulances[id]
	if !ok {
		return Ambulance{}, apperr.NotFound("ambulance service not found")
	}
	return a, nil
}

func (r *memoryRepository) CreateAmbulance(_ context.Context, a Ambulance) (Ambulance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextAmb++
	a.ID = r.nextAmb
	a.UpdatedAt = a.CreatedAt
	r.ambulances[a.ID] = a
	return a, nil
}

func (r *memoryRepository) UpdateAmbulance(_ context.Context, a Ambulance) (Ambulance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ambulances[a.ID]; !ok {
		return Ambulance{}, apperr.NotFound("ambulance service not found")
	}
	a.UpdatedAt = time.Now().UTC()
	r.ambulances[a.ID] = a
	return a, nil
}

func (r *memoryRepository) DeleteAmbulance(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ambulances[id]; !ok {
		return apperr.NotFound("ambulance service not found")
	}
	delete(r.ambulances, id)
	return nil
}

func (r *memoryRepository) ListEyeProducts(_ context.Context, category string, activeOnly bool) ([]EyeProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []EyeProduct
	for _, p := range r.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) GetEyeProduct(_ context.Context, id int64) (EyeProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return EyeProduct{}, apperr.NotFound("eye product not found")
	}
	return p, nil
}

func (r *memoryRepository) CreateEyeProduct(_ context.Context, p EyeProduct) (EyeProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextProduct++
	p.ID = r.nextProduct
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = p
	return p, nil
}

func (r *memoryRepository) UpdateEyeProduct(_ context.Context, p EyeProduct) (EyeProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return EyeProduct{}, apperr.NotFound("eye product not found")
	}
	p.UpdatedAt = time.Now().UTC()
	r.products[p.ID] = p
	return p, nil
}

func (r *memoryRepository) DeleteEyeProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("eye product not found")
	}
	delete(r.products, id)
	return nil
}
