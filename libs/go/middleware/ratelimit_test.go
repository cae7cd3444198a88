package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/churnlens/churn-api/libs/go/constants"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(t *testing.T, rl *RateLimiter, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	t.Cleanup(rl.Stop)

	router := gin.New()
	router.Use(handlers...)
	router.Use(rl.Middleware())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	router.GET("/test", ok)
	router.GET("/health", ok)
	return router
}

func doFrom(router *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within rate limit", func(t *testing.T) {
		router := newLimitedRouter(t, NewRateLimiter(10, 20))

		for i := 0; i < 10; i++ {
			w := doFrom(router, "/test", "192.168.1.1")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
		}
	})

	t.Run("blocks requests exceeding rate limit", func(t *testing.T) {
		router := newLimitedRouter(t, NewRateLimiter(1, 2))

		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = doFrom(router, "/test", "192.168.1.2")
		}

		assert.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.Equal(t, "1", last.Header().Get("Retry-After"))
		assert.Contains(t, last.Body.String(), "Too many requests")
	})

	t.Run("different clients have separate limits", func(t *testing.T) {
		router := newLimitedRouter(t, NewRateLimiter(1, 1))

		assert.Equal(t, http.StatusOK, doFrom(router, "/test", "192.168.1.3").Code)
		assert.Equal(t, http.StatusOK, doFrom(router, "/test", "192.168.1.4").Code)
		assert.Equal(t, http.StatusTooManyRequests, doFrom(router, "/test", "192.168.1.3").Code)
	})

	t.Run("authenticated users are keyed by username", func(t *testing.T) {
		setUser := func(c *gin.Context) {
			if u := c.GetHeader("X-Test-User"); u != "" {
				c.Set(constants.UsernameKey, u)
			}
		}
		router := newLimitedRouter(t, NewRateLimiter(1, 1), setUser)

		request := func(user, ip string) int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("X-Test-User", user)
			req.Header.Set("X-Forwarded-For", ip)
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, request("alice", "10.0.0.1"))
		// same user from another address shares the bucket
		assert.Equal(t, http.StatusTooManyRequests, request("alice", "10.0.0.2"))
		assert.Equal(t, http.StatusOK, request("bob", "10.0.0.1"))
	})

	t.Run("health endpoints bypass rate limiting", func(t *testing.T) {
		router := newLimitedRouter(t, NewRateLimiter(1, 1))

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, doFrom(router, "/health", "").Code)
		}
	})

	t.Run("concurrent requests handling", func(t *testing.T) {
		router := newLimitedRouter(t, NewRateLimiter(10, 20))

		var wg sync.WaitGroup
		var mu sync.Mutex
		successCount, rateLimitedCount := 0, 0

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code := doFrom(router, "/test", "192.168.1.100").Code

				mu.Lock()
				defer mu.Unlock()
				switch code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					rateLimitedCount++
				}
			}()
		}
		wg.Wait()

		assert.GreaterOrEqual(t, successCount, 20)
		assert.Greater(t, rateLimitedCount, 0)
		assert.Equal(t, 50, successCount+rateLimitedCount)
	})
}

func TestRateLimiter_NormalizesConfig(t *testing.T) {
	rl := newRateLimiter(0, 0, time.Minute)
	assert.Equal(t, 1, rl.rate)
	assert.Equal(t, 1, rl.burst)

	rl = newRateLimiter(10, 2, time.Minute)
	assert.Equal(t, 10, rl.burst)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := newRateLimiter(10, 20, 20*time.Millisecond)
	go rl.cleanup()
	defer rl.Stop()

	assert.NotNil(t, rl.getLimiter("recent-client"))

	old := &limiterEntry{limiter: rl.getLimiter("recent-client")}
	old.touch(time.Now().Add(-15 * time.Minute))
	rl.limiters.Store("old-client", old)

	assert.Eventually(t, func() bool {
		_, exists := rl.limiters.Load("old-client")
		return !exists
	}, time.Second, 10*time.Millisecond)

	_, exists := rl.limiters.Load("recent-client")
	assert.True(t, exists)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
