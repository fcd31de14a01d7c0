package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lelefon-gaming/lelefon-api/internal/wallet"
)

const minPasswordLength = 6

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service manages account registration and authentication. Passwords are
// stored as bcrypt hashes.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new storefront account with the user role.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	email := wallet.NormalizeEmail(creds.Email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("a valid email is required")
	}
	if len(creds.Password) < minPasswordLength {
		return User{}, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies credentials.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, wallet.NormalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
