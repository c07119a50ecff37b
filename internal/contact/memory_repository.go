package contact

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Message
}

// NewMemoryRepository builds an in-memory message store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[int64]Message)}
}

func (r *memoryRepository) Create(_ context.Context, m Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	m.UpdatedAt = m.CreatedAt
	r.items[m.ID] = m
	return m, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return Message{}, apperr.NotFound("contact message not found")
	}
	return m, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]Message, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []Message
	for _, m := range r.items {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Email != "" && !strings.EqualFold(m.Email, filter.Email) {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

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
	m, ok := r.items[id]
	if !ok {
		return apperr.NotFound("contact message not found")
	}
	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	r.items[id] = m
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound("contact message not found")
	}
	delete(r.items, id)
	return nil
}
