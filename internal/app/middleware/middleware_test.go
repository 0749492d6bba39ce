package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateUser(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "secret", JWTExpiryHours: 1})
	other := services.NewJWTService(&config.Config{JWTSecretKey: "other", JWTExpiryHours: 1})

	r := gin.New()
	r.GET("/me", AuthenticateUser(jwtService), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	token, err := jwtService.GenerateToken(42)
	require.NoError(t, err)
	forged, err := other.GenerateToken(42)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"no bearer", token, http.StatusUnauthorized},
		{"wrong key", "Bearer " + forged, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{}
			if tt.header != "" {
				header["Authorization"] = tt.header
			}
			w := serve(r, http.MethodGet, "/me", header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":42}`, w.Body.String())
			}
		})
	}
}

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(1, 2)
	start := tb.lastRefill

	assert.True(t, tb.allowAt(start))
	assert.True(t, tb.allowAt(start))
	assert.False(t, tb.allowAt(start))
	assert.True(t, tb.allowAt(start.Add(time.Second)), "refills at rate")
	assert.False(t, tb.allowAt(start.Add(time.Second)))
}

func TestIPRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/auth/login", IPRateLimiter(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/auth/login", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/auth/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/auth/login", nil).Code)

	other := serve(r, http.MethodGet, "/auth/login", map[string]string{"X-Forwarded-For": "10.0.0.9"})
	assert.Equal(t, http.StatusOK, other.Code, "buckets are per client")
}

func TestResponseCache(t *testing.T) {
	rc := NewResponseCache()
	calls := 0
	r := gin.New()
	r.GET("/api/faqs", rc.Handler(time.Minute), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.POST("/api/faqs", rc.Invalidate(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	first := serve(r, http.MethodGet, "/api/faqs?b=2&a=1", nil)
	second := serve(r, http.MethodGet, "/api/faqs?a=1&b=2", nil)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, 1, calls)

	serve(r, http.MethodPost, "/api/faqs", nil)
	assert.Zero(t, rc.Len())
	serve(r, http.MethodGet, "/api/faqs?a=1&b=2", nil)
	assert.Equal(t, 2, calls)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://app.example.com"))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/ping", map[string]string{"Origin": "http://app.example.com"})
	assert.Equal(t, "http://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/api/ping", map[string]string{"Origin": "http://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
