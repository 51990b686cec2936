package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevGolamSever/mind-ease/internal/config"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

func newTestService() *Service {
	cfg := config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}
	return NewService(store.NewMemoryStore(), NewSessionStore(cfg.SessionTTL), cfg)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.SignUp(ctx, "Ann@Example.com", "secret123", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, "Ann", u.Name)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	session, err := svc.SignIn(ctx, "ann@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, session.UserID)
	assert.Equal(t, "Ann", session.Name)
	assert.NotEmpty(t, session.Token)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ann@example.com", "secret123", "Ann")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ANN@example.com", "other456", "Imposter")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ann@example.com", "secret123", "Ann")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "ann@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An unknown email reports the same error as a wrong password.
	_, err = svc.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyAndSignOut(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ann@example.com", "secret123", "Ann")
	require.NoError(t, err)

	session, err := svc.SignIn(ctx, "ann@example.com", "secret123")
	require.NoError(t, err)

	verified, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, verified.UserID)

	svc.SignOut(session.Token)

	_, err = svc.Verify(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
