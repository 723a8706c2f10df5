package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/utang/internal/auth"
)

func TestSettingsService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	settings := NewSettingsService(store, authenticator)

	t.Run("store name missing before bootstrap", func(t *testing.T) {
		_, err := settings.StoreName(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bootstrap seeds defaults", func(t *testing.T) {
		require.NoError(t, settings.Bootstrap(ctx, "", ""))

		s, err := settings.StoreName(ctx)
		require.NoError(t, err)
		assert.Equal(t, "store_name", s.Key)
		assert.Equal(t, DefaultStoreName, s.Value)
		assert.NoError(t, authenticator.Authenticate(ctx, DefaultPassword))
	})

	t.Run("bootstrap never overwrites", func(t *testing.T) {
		require.NoError(t, settings.Bootstrap(ctx, "Other Store", "other-password"))

		s, err := settings.StoreName(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultStoreName, s.Value)
		assert.NoError(t, authenticator.Authenticate(ctx, DefaultPassword))
	})

	t.Run("empty store name accepted", func(t *testing.T) {
		require.NoError(t, settings.UpdateStoreName(ctx, ""))
		s, err := settings.StoreName(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", s.Value)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		err := settings.UpdatePassword(ctx, "")
		assert.ErrorIs(t, err, ErrValidation)
		msg, _ := PublicMessage(err)
		assert.Equal(t, "Password cannot be empty.", msg)
		assert.NoError(t, authenticator.Authenticate(ctx, DefaultPassword))
	})

	t.Run("password change", func(t *testing.T) {
		require.NoError(t, settings.UpdatePassword(ctx, "bago"))
		assert.NoError(t, authenticator.Authenticate(ctx, "bago"))
	})
}

func TestAuthService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	_, err := authenticator.EnsurePassword(ctx, "utang1234")
	require.NoError(t, err)

	sessions := auth.NewSessionManager(store, auth.NewJWTManager("secret"), time.Hour)
	svc := NewAuthService(authenticator, sessions, discardLogger())

	t.Run("wrong password", func(t *testing.T) {
		token, session, err := svc.Login(ctx, "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
		assert.Empty(t, token)
		assert.Nil(t, session)
		msg, _ := PublicMessage(err)
		assert.Equal(t, "Incorrect password.", msg)
	})

	t.Run("login, resolve, logout", func(t *testing.T) {
		token, session, err := svc.Login(ctx, "utang1234")
		require.NoError(t, err)

		got, err := svc.Session(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)

		svc.Logout(ctx, session.ID)
		_, err = svc.Session(ctx, token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Session(ctx, "garbage")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	assert.Equal(t, 3600, svc.SessionTTL())
}
