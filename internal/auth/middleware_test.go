package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/models"
)

// stubFinder resolves users from a fixed map, standing in for the user
// service.
type stubFinder map[string]models.User

func (f stubFinder) GetUserByID(_ context.Context, id string) (models.User, error) {
	if user, ok := f[id]; ok {
		return user, nil
	}
	return models.User{}, errors.New("not found")
}

func newTestMiddleware(t *testing.T) (*auth.Middleware, string) {
	t.Helper()
	codec := auth.NewTokenCodec("middleware-secret")
	token, err := codec.Issue(testUser)
	require.NoError(t, err)

	mw := auth.NewMiddleware(codec, stubFinder{testUser.ID: testUser})
	return mw, token
}

// probe records what identity the downstream handler observed.
type probe struct {
	called   bool
	user     models.User
	resolved bool
	token    string
}

func (p *probe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.user, p.resolved = auth.CurrentUser(r.Context())
		p.token = auth.CurrentToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_Required(t *testing.T) {
	mw, token := newTestMiddleware(t)

	t.Run("accepts Token scheme", func(t *testing.T) {
		p := &probe{}
		rec := doRequest(mw.Required(p.handler()), "Token "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, p.called)
		assert.True(t, p.resolved)
		assert.Equal(t, testUser.ID, p.user.ID)
		assert.Equal(t, token, p.token)
	})

	t.Run("accepts Bearer scheme case-insensitively", func(t *testing.T) {
		for _, scheme := range []string{"Bearer", "bearer", "BEARER", "tOkEn"} {
			p := &probe{}
			rec := doRequest(mw.Required(p.handler()), scheme+" "+token)
			assert.Equal(t, http.StatusOK, rec.Code, scheme)
			assert.True(t, p.resolved, scheme)
		}
	})

	t.Run("rejects missing header", func(t *testing.T) {
		p := &probe{}
		rec := doRequest(mw.Required(p.handler()), "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, p.called)
		assert.JSONEq(t, `{"errors":{"body":["Unauthorized"]}}`, rec.Body.String())
	})

	t.Run("rejects unknown scheme", func(t *testing.T) {
		p := &probe{}
		rec := doRequest(mw.Required(p.handler()), "Basic "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, p.called)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		p := &probe{}
		rec := doRequest(mw.Required(p.handler()), "Token garbage")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, p.called)
	})

	t.Run("rejects token whose user no longer exists", func(t *testing.T) {
		codec := auth.NewTokenCodec("middleware-secret")
		ghost, err := codec.Issue(models.User{ID: "ghost", Email: "g@x.com", Username: "ghost"})
		require.NoError(t, err)

		p := &probe{}
		rec := doRequest(mw.Required(p.handler()), "Token "+ghost)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, p.called)
	})
}

func TestMiddleware_Optional(t *testing.T) {
	mw, token := newTestMiddleware(t)

	t.Run("resolves a valid credential", func(t *testing.T) {
		p := &probe{}
		rec := doRequest(mw.Optional(p.handler()), "Token "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, p.resolved)
		assert.Equal(t, testUser.ID, p.user.ID)
	})

	t.Run("continues anonymously on every failure", func(t *testing.T) {
		for name, header := range map[string]string{
			"missing header": "",
			"bad token":      "Token garbage",
			"wrong scheme":   "Basic abc",
			"no space":       "Tokenabc",
		} {
			p := &probe{}
			rec := doRequest(mw.Optional(p.handler()), header)

			assert.Equal(t, http.StatusOK, rec.Code, name)
			require.True(t, p.called, name)
			assert.False(t, p.resolved, name)
		}
	})
}
