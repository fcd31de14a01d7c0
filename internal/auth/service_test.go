package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/lelefon-gaming/lelefon-api/internal/config"
	"github.com/lelefon-gaming/lelefon-api/internal/identity"
)

func testConfig(ttl time.Duration) config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTokenTTL: ttl}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testConfig(15 * time.Minute))

	token, err := svc.Issue(identity.User{Email: "buyer@example.com", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.ExpiresIn != 900 {
		t.Fatalf("expected expires_in 900, got %d", token.ExpiresIn)
	}

	email, role, err := svc.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "buyer@example.com" || role != identity.RoleUser {
		t.Fatalf("unexpected claims: email=%q role=%q", email, role)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewService(testConfig(15 * time.Minute))

	token, err := svc.Issue(identity.User{Email: "buyer@example.com", Role: identity.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token.AccessToken, ".")
	if len(parts) != 3 {
		t.Fatalf("expected a three-part token, got %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, _, err := svc.Verify(tampered); err == nil {
		t.Fatalf("expected verification to fail for a tampered signature")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewService(testConfig(15 * time.Minute))
	other := NewService(config.Config{JWTSecret: "other-secret", AccessTokenTTL: 15 * time.Minute})

	token, err := svc.Issue(identity.User{Email: "buyer@example.com", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := other.Verify(token.AccessToken); err == nil {
		t.Fatalf("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService(testConfig(-time.Minute))

	token, err := svc.Issue(identity.User{Email: "buyer@example.com", Role: identity.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := svc.Verify(token.AccessToken); err == nil {
		t.Fatalf("expected verification to fail for an expired token")
	}
}
