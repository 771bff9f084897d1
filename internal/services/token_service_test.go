package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("student@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", email)
}

func TestTokenService_Issue_EmptyEmail(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.Issue("")
	assert.Error(t, err)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue("student@example.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "student@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenService("test-secret").Verify(token)
	assert.Error(t, err)
}

func TestTokenService_Verify_MissingEmailClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenService("test-secret").Verify(token)
	assert.Error(t, err)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	_, err := NewTokenService("test-secret").Verify("not-a-token")
	assert.Error(t, err)
}
