package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DevByAndrei/portfolio/internal/middleware"
	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/DevByAndrei/portfolio/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientKey(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "forwarded_for_first_hop",
			remoteAddr: "10.0.0.1:42000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			expected:   "203.0.113.7",
		},
		{
			name:       "forwarded_for_single",
			remoteAddr: "10.0.0.1:42000",
			headers:    map[string]string{"X-Forwarded-For": " 203.0.113.7 "},
			expected:   "203.0.113.7",
		},
		{
			name:       "real_ip_fallback",
			remoteAddr: "10.0.0.1:42000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			expected:   "198.51.100.4",
		},
		{
			name:       "forwarded_for_beats_real_ip",
			remoteAddr: "10.0.0.1:42000",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.7",
				"X-Real-IP":       "198.51.100.4",
			},
			expected: "203.0.113.7",
		},
		{
			name:       "remote_addr_fallback",
			remoteAddr: "192.0.2.9:55123",
			expected:   "192.0.2.9",
		},
		{
			name:       "remote_addr_without_port",
			remoteAddr: "192.0.2.9",
			expected:   "192.0.2.9",
		},
		{
			name:     "no_address_at_all",
			expected: "unknown",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/sendEmail", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.expected, middleware.ClientKey(req))
		})
	}
}

func newLimitedRouter(window time.Duration, maxRequests int, opts ...ratelimit.Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := middleware.NewContactRateLimiter(window, maxRequests, opts...)
	router.POST("/api/sendEmail", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ContactResponse{Success: true})
	})
	return router
}

func postFrom(router *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/sendEmail", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestContactRateLimiter_BlocksFourthRequest(t *testing.T) {
	router := newLimitedRouter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postFrom(router, "203.0.113.7:1000").Code)
	}

	w := postFrom(router, "203.0.113.7:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp models.ContactResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, middleware.MsgRateLimited, resp.Error)
}

func TestContactRateLimiter_KeysAreIndependent(t *testing.T) {
	router := newLimitedRouter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postFrom(router, "203.0.113.7:1000").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "203.0.113.7:1000").Code)

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, postFrom(router, "198.51.100.4:1000").Code)
}

func TestContactRateLimiter_WindowSlides(t *testing.T) {
	now := time.Unix(1700000000, 0)
	router := newLimitedRouter(time.Minute, 3, ratelimit.WithClock(func() time.Time { return now }))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postFrom(router, "203.0.113.7:1000").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "203.0.113.7:1000").Code)

	// 61 seconds later all three stamps have aged out.
	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, postFrom(router, "203.0.113.7:1000").Code)
}
