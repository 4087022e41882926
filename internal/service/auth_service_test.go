package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

func signAdminToken(t *testing.T, secret string, claims models.AdminClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{Secret: "s3cret", Issuer: "idp", Audience: "intake-admin"})

	token := signAdminToken(t, "s3cret", models.AdminClaims{
		Email: "reviewer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "idp",
			Audience:  jwt.ClaimStrings{"intake-admin"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reviewer@example.com", claims.Email)
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{Secret: "s3cret", Issuer: "idp"})

	cases := map[string]string{
		"wrong secret": signAdminToken(t, "other", models.AdminClaims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "idp"}}),
		"wrong issuer": signAdminToken(t, "s3cret", models.AdminClaims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone"}}),
		"expired": signAdminToken(t, "s3cret", models.AdminClaims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "idp",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}),
		"garbage": "not-a-token",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
		})
	}
}

func TestAuthServiceWithoutSecret(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{})
	_, err := svc.ValidateToken("anything")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
