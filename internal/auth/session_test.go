package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, ttl), mr
}

func TestStoreLifecycle(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, id, 32)

	userID, ok := s.GetUserID(ctx, id)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)

	exists, err := s.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	mr.FastForward(2 * time.Hour)
	_, ok = s.GetUserID(ctx, id)
	assert.False(t, ok, "expired session")

	id, err = s.Create(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, id))
	_, ok = s.GetUserID(ctx, id)
	assert.False(t, ok)
}

func TestStoreDefaultTTL(t *testing.T) {
	s, _ := newTestStore(t, 0)
	assert.Equal(t, 24*time.Hour, s.TTL())
}

func TestStoreRejectsCorruptSession(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	require.NoError(t, mr.Set("session:abc", "1"))
	require.NoError(t, mr.Set("session:bad", "not-a-number"))

	_, ok := s.GetUserID(context.Background(), "bad")
	assert.False(t, ok)
	userID, ok := s.GetUserID(context.Background(), "abc")
	assert.True(t, ok)
	assert.Equal(t, int64(1), userID)
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _ := newTestStore(t, time.Hour)
	sessionID, err := s.Create(context.Background(), 9)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireSession(s), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "unknown"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
}
