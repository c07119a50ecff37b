package catalog

import (
	"context"
	"time"

	"github.com/shifa-care/shifa_api/internal/cache"
)

const (
	servicesCacheKey   = "catalog:services:active"
	ambulancesCacheKey = "catalog:ambulances:active"
)

// Catalog serves the public listings, caching the hot active lists in Redis.
type Catalog struct {
	repo  Repository
	cache *cache.Cache
}

func NewCatalog(repo Repository, c *cache.Cache) *Catalog {
	return &Catalog{repo: repo, cache: c}
}

func (s *Catalog) ListServices(ctx context.Context, activeOnly bool) ([]Service, error) {
	if activeOnly {
		var cached []Service
		if s.cache.Get(ctx, servicesCacheKey, &cached) {
			return cached, nil
		}
	}
	services, err := s.repo.ListServices(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		s.cache.Set(ctx, servicesCacheKey, services)
	}
	return services, nil
}

func (s *Catalog) GetService(ctx context.Context, id int64) (Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *Catalog) CreateService(ctx context.Context, svc Service) (Service, error) {
	svc.CreatedAt = time.Now().UTC()
	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return Service{}, err
	}
	s.cache.Delete(ctx, servicesCacheKey)
	return created, nil
}

func (s *Catalog) UpdateService(ctx context.Context, svc Service) (Service, error) {
	updated, err := s.repo.UpdateService(ctx, svc)
	if err != nil {
		return Service{}, err
	}
	s.cache.Delete(ctx, servicesCacheKey)
	return updated, nil
}

func (s *Catalog) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, servicesCacheKey)
	return nil
}

func (s *Catalog) ListAmbulances(ctx context.Context, activeOnly bool) ([]Ambulance, error) {
	if activeOnly {
		var cached []Ambulance
		if s.cache.Get(ctx, ambulancesCacheKey, &cached) {
			return cached, nil
		}
	}
	ambulances, err := s.repo.ListAmbulances(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		s.cache.Set(ctx, ambulancesCacheKey, ambulances)
	}
	return ambulances, nil
}

func (s *Catalog) GetAmbulance(ctx context.Context, id int64) (Ambulance, error) {
	return s.repo.GetAmbulance(ctx, id)
}

func (s *Catalog) CreateAmbulance(ctx context.Context, a Ambulance) (Ambulance, error) {
	a.CreatedAt = time.Now().UTC()
	created, err := s.repo.CreateAmbulance(ctx, a)
	if err != nil {
		return Ambulance{}, err
	}
	s.cache.Delete(ctx, ambulancesCacheKey)
	return created, nil
}

func (s *Catalog) UpdateAmbulance(ctx context.Context, a Ambulance) (Ambulance, error) {
	updated, err := s.repo.UpdateAmbulance(ctx, a)
	if err != nil {
		return Ambulance{}, err
	}
	s.cache.Delete(ctx, ambulancesCacheKey)
	return updated, nil
}

func (s *Catalog) DeleteAmbulance(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAmbulance(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, ambulancesCacheKey)
	return nil
}

func (s *Catalog) ListEyeProducts(ctx context.Context, category string, activeOnly bool) ([]EyeProduct, error) {
	return s.repo.ListEyeProducts(ctx, category, activeOnly)
}

func (s *Catalog) GetEyeProduct(ctx context.Context, id int64) (EyeProduct, error) {
	return s.repo.GetEyeProduct(ctx, id)
}

func (s *Catalog) CreateEyeProduct(ctx context.Context, p EyeProduct) (EyeProduct, error) {
	p.CreatedAt = time.Now().UTC()
	return s.repo.CreateEyeProduct(ctx, p)
}

func (s *Catalog) UpdateEyeProduct(ctx context.Context, p EyeProduct) (EyeProduct, error) {
	return s.repo.UpdateEyeProduct(ctx, p)
}

func (s *Catalog) DeleteEyeProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteEyeProduct(ctx, id)
}
