package identity

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Email: " Buyer@Example.COM ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, user.Role)
	}

	got, err := svc.Authenticate(ctx, Credentials{Email: "buyer@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.Email != user.Email {
		t.Fatalf("expected %q, got %q", user.Email, got.Email)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Email: "buyer@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Email: "buyer@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, Credentials{Email: "nobody@example.com", Password: "hunter22"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Email: "buyer@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, Credentials{Email: "Buyer@example.com", Password: "another1"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Email: "not-an-email", Password: "hunter22"}); err == nil {
		t.Fatalf("expected an error for a malformed email")
	}
	if _, err := svc.Register(ctx, Credentials{Email: "buyer@example.com", Password: "short"}); err == nil {
		t.Fatalf("expected an error for a short password")
	}
}
