package admin

import (
	"context"
	"time"
)

// MemoryRepository is a development stand-in used when no database is
// configured. All counters report zero.
type MemoryRepository struct{}

// NewMemoryRepository builds an empty stats repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Dashboard(_ context.Context) (DashboardStats, error) {
	return DashboardStats{Timestamp: time.Now().UTC()}, nil
}

func (r *MemoryRepository) AppointmentsByStatus(_ context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (r *MemoryRepository) AppointmentsSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *MemoryRepository) Users(_ context.Context) (UserStats, error) {
	return UserStats{Timestamp: time.Now().UTC()}, nil
}

func (r *MemoryRepository) MessagesByStatus(_ context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}
