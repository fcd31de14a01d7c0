package auth

import (
	"errors"
	"time"

	"github.com/lelefon-gaming/lelefon-api/internal/config"
	"github.com/lelefon-gaming/lelefon-api/internal/identity"
)

// Service issues and verifies access tokens for storefront accounts.
type Service struct {
	cfg config.Config
}

// NewService builds an auth service instance.
func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// Token is an issued access token with its lifetime in seconds.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Issue signs an access token carrying the account email and role.
func (s *Service) Issue(user identity.User) (Token, error) {
	now := time.Now()
	exp := now.Add(s.cfg.AccessTokenTTL)
	claims := map[string]any{
		"sub":  user.Email,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(s.cfg.JWTSecret))
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, ExpiresIn: int64(s.cfg.AccessTokenTTL.Seconds())}, nil
}

// Verify checks the token signature and expiry and returns the account
// email and role.
func (s *Service) Verify(token string) (email, role string, err error) {
	claims, parseErr := ParseAndVerifyHS256(token, []byte(s.cfg.JWTSecret))
	if parseErr != nil {
		return "", "", parseErr
	}
	expFloat, _ := claims["exp"].(float64)
	if time.Now().Unix() >= int64(expFloat) {
		return "", "", errors.New("token expired")
	}
	email, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if email == "" {
		return "", "", errors.New("token missing subject")
	}
	return email, role, nil
}
