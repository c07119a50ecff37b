package contact

import (
	"context"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/notification"
)

// Service handles contact message intake and triage.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Submit stores a new message and acknowledges the sender.
func (s *Service) Submit(ctx context.Context, m Message) (Message, error) {
	m.Status = StatusNew
	m.CreatedAt = time.Now().UTC()
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return Message{}, err
	}

	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindContactReceived,
		Destination: created.Email,
		Body:        "we received your message and will get back to you soon",
	})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Message, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Message, int, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus transitions a message through the triage states.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Message, error) {
	if !ValidStatus(status) {
		return Message{}, apperr.Validation("invalid message status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Message{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
