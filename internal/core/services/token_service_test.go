package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	"github.com/checkin-tracker/tracker_backend/internal/core/services"
)

func TestIssueToken_RoundTrip(t *testing.T) {
	secret := "test-secret"
	svc := services.NewTokenService(secret, time.Hour, "checkin-tracker")
	user := &domain.User{UserID: uuid.NewString()}

	signed, err := svc.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, user.UserID, claims.Subject)
	require.Equal(t, "checkin-tracker", claims.Issuer)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssueToken_RejectsWrongSecret(t *testing.T) {
	svc := services.NewTokenService("right-secret", time.Hour, "checkin-tracker")

	signed, err := svc.IssueToken(&domain.User{UserID: uuid.NewString()})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	require.Error(t, err)
}
