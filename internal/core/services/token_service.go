package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
)

// TokenService issues signed JWT access tokens.
type TokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvc {
	return &TokenService{
		secret: secret,
		expiry: expiry,
		issuer: issuer,
	}
}

var _ portssvc.TokenSvc = (*TokenService)(nil)

// IssueToken signs an HS256 token whose subject is the user's id.
func (s *TokenService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
