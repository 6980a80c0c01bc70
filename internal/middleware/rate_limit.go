package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/DevByAndrei/portfolio/pkg/metrics"
	"github.com/DevByAndrei/portfolio/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// MsgRateLimited is returned with every 429 on the contact endpoint.
const MsgRateLimited = "Has enviado demasiados mensajes. Inténtalo más tarde."

// ContactRateLimiter applies the sliding-window limiter to the contact
// endpoint, keyed by client address.
type ContactRateLimiter struct {
	limiter *ratelimit.SlidingWindow
}

// NewContactRateLimiter creates the contact-endpoint limiter: at most
// maxRequests per key within the trailing window.
func NewContactRateLimiter(window time.Duration, maxRequests int, opts ...ratelimit.Option) *ContactRateLimiter {
	return &ContactRateLimiter{
		limiter: ratelimit.NewSlidingWindow(window, maxRequests, opts...),
	}
}

// Middleware returns a Gin middleware that rejects over-limit requests with
// 429 before the body is even read.
func (rl *ContactRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Admit(ClientKey(c.Request)) {
			metrics.ContactFormSubmissions.WithLabelValues("rate_limited").Inc()
			c.JSON(http.StatusTooManyRequests, models.ContactResponse{Success: false, Error: MsgRateLimited})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClientKey derives the rate-limit key for a request: the first
// X-Forwarded-For address, then X-Real-IP, then the peer address. Requests
// with no usable address share a single "unknown" bucket; that collapses
// all address-less clients into one limit, which is an accepted weakness of
// per-address limiting, not something to paper over here.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// RateLimiter is a token-bucket limiter per client for the operational
// endpoints (healthcheck, metrics), where bursts are fine and the strict
// sliding window would be overkill.
type RateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
	stop     chan struct{}
}

// NewRateLimiter creates a token-bucket limiter: r requests per second with
// bursts up to b.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
		stop:     make(chan struct{}),
	}

	go rl.cleanupVisitors()

	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.visitors[key]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.visitors[key] = limiter
	}

	return limiter
}

// cleanupVisitors periodically drops clients whose bucket has refilled,
// i.e. clients idle long enough to be indistinguishable from new ones.
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, limiter := range rl.visitors {
				if limiter.Tokens() >= float64(rl.b) {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Middleware returns a Gin middleware function for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getVisitor(ClientKey(c.Request)).Allow() {
			c.JSON(http.StatusTooManyRequests, models.ContactResponse{Success: false, Error: MsgRateLimited})
			c.Abort()
			return
		}
		c.Next()
	}
}
