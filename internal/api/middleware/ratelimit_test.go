package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRateLimiter(rps, burst).Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	router := newLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/ping", nil)
		require.NoError(t, err)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	router := newLimitedRouter(0.001, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/ping", nil)
		require.NoError(t, err)
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)

	assert.True(t, rl.limiterFor("10.0.0.1").Allow())
	assert.False(t, rl.limiterFor("10.0.0.1").Allow())

	// A different client gets its own bucket.
	assert.True(t, rl.limiterFor("10.0.0.2").Allow())
}
