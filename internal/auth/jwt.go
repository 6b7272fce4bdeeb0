package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/isdelr/conduit-be/internal/models"
)

// ErrInvalidToken is returned for every verification failure. Callers get no
// detail on whether the token was malformed, forged, or expired.
var ErrInvalidToken = errors.New("invalid token")

// TokenTTL is the validity window of issued tokens. There is no revocation
// list: a token stays valid for its full lifetime regardless of later
// server-side changes to the user.
const TokenTTL = 7 * 24 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies tokens with a process-wide secret. The secret
// is injected at construction so tests can run with distinct secrets.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a TokenCodec for the given signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue creates a new signed token for a given user.
func (c *TokenCodec) Issue(user models.User) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token string, returning the embedded claims.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
