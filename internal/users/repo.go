package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already in use")
)

// Repo defines persistence operations for users.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}
