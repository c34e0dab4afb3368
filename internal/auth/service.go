// Package auth registers accounts and verifies credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	applog "alerscan/internal/log"
	"alerscan/internal/store"
	"alerscan/models"
)

var (
	// ErrPasswordMismatch is returned when the confirmation differs from the password.
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", store.ErrValidation)

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = fmt.Errorf("%w: password is too long", store.ErrValidation)

	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// UserStore is the persistence the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type Service struct {
	users UserStore
	cost  int
}

// Option adjusts a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost used for new hashes.
func WithCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

func NewService(users UserStore, opts ...Option) *Service {
	s := &Service{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account after checking the password confirmation.
// Usernames are stored exactly as given.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", store.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", store.ErrValidation)
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashed, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, hashed)
	if err != nil {
		return nil, err
	}

	applog.Debug(ctx, "user registered", "userID", user.ID, "username", user.Username)
	return user, nil
}

// Login returns the user when the credentials match.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ProvisionAdmin creates the named account unless it already exists and
// reports whether it was created.
func (s *Service) ProvisionAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Register(ctx, username, password, password)
	switch {
	case err == nil:
		applog.Info(ctx, "provisioned administrator account", "username", username)
		return true, nil
	case errors.Is(err, store.ErrDuplicateUsername):
		applog.Debug(ctx, "administrator account already present", "username", username)
		return false, nil
	default:
		return false, err
	}
}
