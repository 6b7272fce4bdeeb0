package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/isdelr/conduit-be/internal/models"
)

type contextKey string

const (
	userKey  = contextKey("currentUser")
	tokenKey = contextKey("currentToken")
)

// UserFinder resolves a token's user id to a stored user. Implemented by the
// user service.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// Middleware resolves bearer credentials into request-scoped identity.
type Middleware struct {
	codec *TokenCodec
	users UserFinder
}

// NewMiddleware creates an auth Middleware over a codec and a user lookup.
func NewMiddleware(codec *TokenCodec, users UserFinder) *Middleware {
	return &Middleware{codec: codec, users: users}
}

// extractToken pulls the credential out of an Authorization header value.
// Accepted shapes are "Token <jwt>" and "Bearer <jwt>", scheme
// case-insensitive; anything else means no credential is present.
func extractToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return parts[1]
}

// resolve attempts to turn the request's credential into a stored user.
func (m *Middleware) resolve(r *http.Request) (models.User, string, bool) {
	tokenStr := extractToken(r.Header.Get("Authorization"))
	if tokenStr == "" {
		return models.User{}, "", false
	}

	claims, err := m.codec.Verify(tokenStr)
	if err != nil {
		return models.User{}, "", false
	}

	user, err := m.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		return models.User{}, "", false
	}

	return user, tokenStr, true
}

// Required rejects with 401 unless the request carries a valid credential
// that resolves to a stored user.
func (m *Middleware) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, token, ok := m.resolve(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"errors": map[string]any{"body": []string{"Unauthorized"}},
			})
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional performs the same resolution but degrades every failure to an
// anonymous request. It never rejects.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, token, ok := m.resolve(r); ok {
			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the resolved user attached to the request context.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// ViewerID returns the resolved user's id, or "" for anonymous requests.
func ViewerID(ctx context.Context) string {
	if user, ok := CurrentUser(ctx); ok {
		return user.ID
	}
	return ""
}

// CurrentToken returns the raw token the request authenticated with.
func CurrentToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
