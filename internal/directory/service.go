package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/cache"
)

const departmentsCacheKey = "directory:departments:active"

// Service exposes department and doctor directory operations. Active
// department listings are served through the Redis cache because they back
// the public site's landing pages.
type Service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) ListDepartments(ctx context.Context, activeOnly bool) ([]Department, error) {
	if activeOnly {
		var cached []Department
		if s.cache.Get(ctx, departmentsCacheKey, &cached) {
			return cached, nil
		}
	}

	departments, err := s.repo.ListDepartments(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		s.cache.Set(ctx, departmentsCacheKey, departments)
	}
	return departments, nil
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (Department, error) {
	return s.repo.GetDepartment(ctx, id)
}

func (s *Service) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	if d.Name == "" {
		return Department{}, apperr.Validation("department name is required")
	}
	d.CreatedAt = time.Now().UTC()
	created, err := s.repo.CreateDepartment(ctx, d)
	if err != nil {
		return Department{}, err
	}
	s.cache.Delete(ctx, departmentsCacheKey)
	return created, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, d Department) (Department, error) {
	if d.Name == "" {
		return Department{}, apperr.Validation("department name is required")
	}
	updated, err := s.repo.UpdateDepartment(ctx, d)
	if err != nil {
		return Department{}, err
	}
	s.cache.Delete(ctx, departmentsCacheKey)
	return updated, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	if err := s.repo.DeleteDepartment(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, departmentsCacheKey)
	return nil
}

func (s *Service) ListDoctors(ctx context.Context, filter DoctorFilter) ([]Doctor, error) {
	return s.repo.ListDoctors(ctx, filter)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}

// CreateDoctor verifies the target department exists before inserting the
// profile.
func (s *Service) CreateDoctor(ctx context.Context, d Doctor) (Doctor, error) {
	if d.Specialty == "" {
		return Doctor{}, apperr.Validation("doctor specialty is required")
	}
	if _, err := s.repo.GetDepartment(ctx, d.DepartmentID); err != nil {
		return Doctor{}, apperr.NotFound(fmt.Sprintf("department %d not found", d.DepartmentID))
	}
	d.CreatedAt = time.Now().UTC()
	return s.repo.CreateDoctor(ctx, d)
}

func (s *Service) UpdateDoctor(ctx context.Context, d Doctor) (Doctor, error) {
	if d.DepartmentID != 0 {
		if _, err := s.repo.GetDepartment(ctx, d.DepartmentID); err != nil {
			return Doctor{}, apperr.NotFound(fmt.Sprintf("department %d not found", d.DepartmentID))
		}
	}
	return s.repo.UpdateDoctor(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	return s.repo.DeleteDoctor(ctx, id)
}
