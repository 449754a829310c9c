package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/faqdesk/pkg/errors"
)

func TestService_LoginAndValidate(t *testing.T) {
	svc := newServiceUnderTest(t, time.Hour)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "operator", Password: "pass1234"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "operator", resp.Username)
	require.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, "operator", claims.Username)
	require.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newServiceUnderTest(t, time.Hour)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "operator", Password: "wrong-pass"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	_, err = svc.Login(context.Background(), LoginRequest{Username: "intruder", Password: "pass1234"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	_, err = svc.Login(context.Background(), LoginRequest{Username: " ", Password: "pass1234"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_ValidateTokenFailures(t *testing.T) {
	svc := newServiceUnderTest(t, time.Hour)

	_, err := svc.ValidateToken(context.Background(), "")
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	_, err = svc.ValidateToken(context.Background(), "not-a-jwt")
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	other := NewService(Config{Username: "operator", PasswordHash: "x", Secret: "other-secret"}, newTestLogger())
	foreign, err := other.(*service).generateToken("operator", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), foreign)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_ExpiredToken(t *testing.T) {
	svc := newServiceUnderTest(t, time.Minute)
	resp, err := svc.Login(context.Background(), LoginRequest{Username: "operator", Password: "pass1234"})
	require.NoError(t, err)

	svc.(*service).now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(context.Background(), resp.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pass1234")))

	_, err = HashPassword("short")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func newServiceUnderTest(t *testing.T, ttl time.Duration) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(Config{
		Username:     "operator",
		PasswordHash: string(hash),
		Secret:       "test-secret",
		TokenTTL:     ttl,
	}, newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}
