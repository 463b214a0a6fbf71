package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an ID, reusing the caller's when present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger puts a logger carrying the request ID into the request context
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := &taggedLogger{
			base: s.app.Logger,
			tags: map[string]interface{}{"request_id": c.GetString("request_id")},
		}
		c.Request = c.Request.WithContext(common.WithLogger(c.Request.Context(), logger))
		c.Next()
	}
}

// recordMetrics records API request counts and latency
func (s *Server) recordMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if s.app.APIMetrics == nil {
			return
		}
		s.app.APIMetrics.RecordAPIRequest(c.Request.Method, endpoint(c), c.Writer.Status(), time.Since(start).Seconds())
	}
}

// rateLimit rejects clients exceeding their token bucket with 429
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if s.app.APIMetrics != nil {
			s.app.APIMetrics.RecordRateLimited(endpoint(c))
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
}

func endpoint(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// ipRateLimiter keeps one token bucket per client address
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(requests, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(requests),
		burst:    burst,
	}
}

// Allow reports whether ip may make a request now
func (l *ipRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// taggedLogger adds fixed metadata to every entry
type taggedLogger struct {
	base common.Logger
	tags map[string]interface{}
}

func (l *taggedLogger) Log(level, message string, metadata map[string]interface{}) {
	merged := make(map[string]interface{}, len(metadata)+len(l.tags))
	for k, v := range l.tags {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}
	l.base.Log(level, message, merged)
}
