package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID int64, expiresAt time.Time) string {
	t.Helper()

	claims := JWTClaims{
		UserID: userID,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(NewAuthMiddleware(testSecret).Authenticate())
	router.GET("/whoami", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestAuthenticate_ValidToken(t *testing.T) {
	router := authTestRouter()
	token := signToken(t, testSecret, 42, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	router := authTestRouter()
	token := signToken(t, "other-secret", 42, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router := authTestRouter()
	token := signToken(t, testSecret, 42, time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// fakeIdempotencyRepo remembers keys in memory.
type fakeIdempotencyRepo struct {
	seen map[string]bool
	err  error
}

func (f *fakeIdempotencyRepo) MarkIfNew(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	replay := f.seen[key]
	f.seen[key] = true
	return replay, nil
}

func idempotencyTestRouter(repo *fakeIdempotencyRepo) *gin.Engine {
	router := gin.New()
	router.Use(IdempotencyMiddleware(repo, time.Hour))
	router.POST("/posts/community", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
	return router
}

func TestIdempotencyMiddleware_FirstRequestPasses(t *testing.T) {
	router := idempotencyTestRouter(&fakeIdempotencyRepo{})

	req := httptest.NewRequest(http.MethodPost, "/posts/community", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotencyMiddleware_ReplayConflicts(t *testing.T) {
	router := idempotencyTestRouter(&fakeIdempotencyRepo{})

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/posts/community", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, "request %d", i)
	}
}

func TestIdempotencyMiddleware_NoHeaderPassesThrough(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	router := idempotencyTestRouter(repo)

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/posts/community", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Empty(t, repo.seen)
}

func TestIdempotencyMiddleware_StoreErrorFailsOpen(t *testing.T) {
	router := idempotencyTestRouter(&fakeIdempotencyRepo{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodPost, "/posts/community", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
