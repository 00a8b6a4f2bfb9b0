package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitNilRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.POST("/login", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// well past the limit; without Redis nothing is counted
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var byIP, byIPAndPath string
	e := gin.New()
	e.GET("/users/:id", func(c *gin.Context) {
		byIP = KeyByIP()(c)
		byIPAndPath = KeyByIPAndPath()(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.RemoteAddr = "10.0.0.7:1234"
	e.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rl:ip:10.0.0.7", byIP)
	assert.Equal(t, "rl:path:/users/:id:ip:10.0.0.7", byIPAndPath)
}

func TestKeyUsesRealIPFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var key string
	e := gin.New()
	e.GET("/", func(c *gin.Context) {
		c.Set("real_ip", "203.0.113.9")
		key = KeyByIP()(c)
	})
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "rl:ip:203.0.113.9", key)
}
