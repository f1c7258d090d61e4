package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"paggo-backend/internal/shared/auth"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput is returned for missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Service contains registration and login logic.
type Service struct {
	Repo       Repo
	Tokens     *auth.Tokens
	BcryptCost int
}

// NewService constructs a users service.
func NewService(repo Repo, tokens *auth.Tokens, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{Repo: repo, Tokens: tokens, BcryptCost: bcryptCost}
}

// Register creates a new account with a salted one-way password hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.Tokens.Sign(user.ID, user.Email)
}
