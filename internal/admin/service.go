package admin

import (
	"context"
	"time"

	"github.com/shifa-care/shifa_api/internal/appointment"
	"github.com/shifa-care/shifa_api/internal/contact"
)

// Service computes the aggregate statistics behind the admin dashboards.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Dashboard returns the headline counter set.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	return s.repo.Dashboard(ctx)
}

// Appointments breaks appointments down by status plus a trailing window of
// the given number of days.
func (s *Service) Appointments(ctx context.Context, days int) (AppointmentStats, error) {
	byStatus, err := s.repo.AppointmentsByStatus(ctx)
	if err != nil {
		return AppointmentStats{}, err
	}
	// Every known status appears in the breakdown, even at zero.
	for _, status := range []string{
		appointment.StatusPending,
		appointment.StatusConfirmed,
		appointment.StatusCancelled,
		appointment.StatusCompleted,
		appointment.StatusNoShow,
	} {
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = 0
		}
	}

	recent, err := s.repo.AppointmentsSince(ctx, time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return AppointmentStats{}, err
	}
	return AppointmentStats{
		ByStatus:   byStatus,
		RecentDays: days,
		Recent:     recent,
		Timestamp:  time.Now().UTC(),
	}, nil
}

// Users returns the role/activity breakdown of the user base.
func (s *Service) Users(ctx context.Context) (UserStats, error) {
	return s.repo.Users(ctx)
}

// Messages counts contact messages per triage status.
func (s *Service) Messages(ctx context.Context) (MessageStats, error) {
	byStatus, err := s.repo.MessagesByStatus(ctx)
	if err != nil {
		return MessageStats{}, err
	}
	for _, status := range []string{contact.StatusNew, contact.StatusRead, contact.StatusResolved} {
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = 0
		}
	}
	return MessageStats{ByStatus: byStatus, Timestamp: time.Now().UTC()}, nil
}
