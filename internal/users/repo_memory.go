package users

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byEmail: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	key := strings.ToLower(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[key]; exists {
		return ErrEmailTaken
	}
	r.byEmail[key] = user
	return nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

var _ Repo = (*MemoryRepo)(nil)
