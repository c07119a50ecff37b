package identity

import (
	"context"
	"sync"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]User
}

// NewMemoryRepository builds an in-memory user store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Phone]; exists {
		return User{}, apperr.Conflict("user with this phone number already exists")
	}
	r.nextID++
	user.ID = r.nextID
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	r.users[user.Phone] = user
	return user, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[phone]
	if !ok {
		return User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, apperr.NotFound("user not found")
}

func (r *memoryRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for phone, user := range r.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			user.UpdatedAt = time.Now().UTC()
			r.users[phone] = user
			return nil
		}
	}
	return apperr.NotFound("user not found")
}
