package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/users"
)

type fakeEnsurer struct {
	got users.UpsertUser
	err error
}

func (f *fakeEnsurer) EnsureUser(_ context.Context, u users.UpsertUser) (users.User, error) {
	f.got = u
	if f.err != nil {
		return users.User{}, f.err
	}
	return users.User{ID: "db-" + u.FirebaseUID, FirebaseUID: u.FirebaseUID, Username: u.Username}, nil
}

type fakeVerifier map[string]string // token -> uid

func (f fakeVerifier) VerifyIDToken(_ context.Context, token string) (*fbauth.Token, error) {
	uid, ok := f[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &fbauth.Token{UID: uid, Claims: map[string]interface{}{"email": uid + "@example.com"}}, nil
}

func newRouter(mw ...gin.HandlerFunc) (*gin.Engine, *matching.Creator) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	seen := &matching.Creator{}
	handlers := append(mw, func(c *gin.Context) {
		*seen = Creator(c)
		c.Status(http.StatusOK)
	})
	r.GET("/me", handlers...)
	return r, seen
}

func TestWithUser_Headers(t *testing.T) {
	ensurer := &fakeEnsurer{}
	r, seen := newRouter(WithUser(ensurer))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-Id", "fb-1")
	req.Header.Set("X-User-Username", "alice")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, matching.Creator{UserID: "db-fb-1", Username: "alice", CreatorID: "fb-1"}, *seen)
	assert.Equal(t, "alice", ensurer.got.Username)
}

func TestWithUser_DemoFallback(t *testing.T) {
	ensurer := &fakeEnsurer{}
	r, seen := newRouter(WithUser(ensurer))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "demo-user", ensurer.got.FirebaseUID)
	// anonymous callers must not have demo-user projects excluded as their own
	assert.Equal(t, matching.Creator{}, *seen)
}

func TestWithUser_Error(t *testing.T) {
	r, _ := newRouter(WithUser(&fakeEnsurer{err: errors.New("db down")}))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestVerifyToken(t *testing.T) {
	ensurer := &fakeEnsurer{}
	r, seen := newRouter(VerifyToken(fakeVerifier{"good": "fb-9"}), WithUser(ensurer))

	t.Run("missing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token beats header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		req.Header.Set("X-User-Id", "spoofed")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "fb-9", seen.CreatorID)
		assert.Equal(t, "fb-9@example.com", ensurer.got.Email)
	})
}
