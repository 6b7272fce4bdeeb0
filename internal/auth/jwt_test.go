package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/models"
)

var testUser = models.User{
	ID:       "user-1",
	Email:    "alice@x.com",
	Username: "alice",
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")

	token, err := codec.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenCodec_VerifyFailures(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := auth.NewTokenCodec("other-secret")
		token, err := other.Issue(testUser)
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := codec.Verify("not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &auth.Claims{
			UserID:   testUser.ID,
			Email:    testUser.Email,
			Username: testUser.Username,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = codec.Verify(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Verify(unsigned)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
