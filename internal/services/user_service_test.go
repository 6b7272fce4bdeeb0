package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/conduit-be/internal/services"
)

func TestUserService_Register(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	t.Run("stores the email lower-cased", func(t *testing.T) {
		user, err := svc.Register(ctx, "alice", "ALICE@X.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", user.Email)
		assert.NotEqual(t, "secret123", user.PasswordHash)
	})

	t.Run("rejects duplicate email regardless of casing", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice2", "alice@X.COM", "secret123")
		assert.ErrorIs(t, err, services.ErrDuplicateAccount)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other@x.com", "secret123")
		assert.ErrorIs(t, err, services.ErrDuplicateAccount)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "ALICE@x.com", "secret123")
	require.NoError(t, err)

	t.Run("succeeds with the lower-cased email", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "alice@x.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("succeeds with any input casing", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "Alice@X.com", "secret123")
		assert.NoError(t, err)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, badPass := svc.Authenticate(ctx, "alice@x.com", "wrong")
		_, badEmail := svc.Authenticate(ctx, "nobody@x.com", "secret123")

		assert.ErrorIs(t, badPass, services.ErrInvalidCredentials)
		assert.ErrorIs(t, badEmail, services.ErrInvalidCredentials)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	alice := registerUser(t, db, "alice")
	registerUser(t, db, "bob")

	t.Run("applies partial changes", func(t *testing.T) {
		bio := "hello"
		updated, err := svc.UpdateUser(ctx, alice.ID, services.UserChanges{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "hello", updated.Bio)
		assert.Equal(t, alice.Email, updated.Email)
	})

	t.Run("rejects another user's email", func(t *testing.T) {
		email := "bob@example.com"
		_, err := svc.UpdateUser(ctx, alice.ID, services.UserChanges{Email: &email})
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})

	t.Run("rejects another user's username", func(t *testing.T) {
		name := "bob"
		_, err := svc.UpdateUser(ctx, alice.ID, services.UserChanges{Username: &name})
		assert.ErrorIs(t, err, services.ErrUsernameTaken)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		email := "ALICE@example.com"
		updated, err := svc.UpdateUser(ctx, alice.ID, services.UserChanges{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("password change re-hashes", func(t *testing.T) {
		password := "newsecret"
		_, err := svc.UpdateUser(ctx, alice.ID, services.UserChanges{Password: &password})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "alice@example.com", "newsecret")
		assert.NoError(t, err)
	})

	t.Run("empty strings leave credentials untouched", func(t *testing.T) {
		empty := ""
		updated, err := svc.UpdateUser(ctx, alice.ID, services.UserChanges{
			Email:    &empty,
			Username: &empty,
			Password: &empty,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", updated.Email)
		assert.Equal(t, "alice", updated.Username)

		// The old password still works, so no hash of "" was stored.
		_, err = svc.Authenticate(ctx, "alice@example.com", "newsecret")
		assert.NoError(t, err)
	})
}
