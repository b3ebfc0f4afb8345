package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewKeyedRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	t.Cleanup(rl.Stop)

	router := gin.New()
	router.Use(rl.Middleware(ByClientIP))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1001").Code)

	rec := call("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1000").Code, "other clients keep their own bucket")
	assert.Equal(t, 2, rl.Stats()["active_keys"])
}

func TestKeyedRateLimiterStop(t *testing.T) {
	rl := NewKeyedRateLimiter(DefaultRateLimiterConfig())

	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
	select {
	case <-rl.exited:
	default:
		t.Fatal("cleanup loop still running after Stop")
	}
}

func TestLoginRateLimiterConfig(t *testing.T) {
	cfg := LoginRateLimiterConfig(30)
	assert.Equal(t, 30, cfg.BurstSize)
	assert.InDelta(t, 0.5, cfg.RequestsPerSecond, 1e-9)

	assert.Equal(t, 10, LoginRateLimiterConfig(0).BurstSize)
}
