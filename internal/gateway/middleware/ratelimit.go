package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/celebnet/backend/internal/shared/identity"
	"github.com/celebnet/backend/internal/shared/utils"
)

type RateLimitMetrics interface {
	RecordRateLimited(limiter string)
}

// WindowCounter increments the counter for key in the current window and
// returns the new count.
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisWindowCounter shares fixed-window counters across instances.
type RedisWindowCounter struct {
	client redis.Cmdable
}

func NewRedisWindowCounter(client redis.Cmdable) *RedisWindowCounter {
	return &RedisWindowCounter{client: client}
}

func (c *RedisWindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// FixedWindowLimiter allows limit requests per client IP per window. Counter
// errors let the request through.
type FixedWindowLimiter struct {
	name    string
	counter WindowCounter
	limit   int64
	window  time.Duration
	metrics RateLimitMetrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewFixedWindowLimiter(name string, counter WindowCounter, limit int, window time.Duration, metrics RateLimitMetrics, logger *slog.Logger) *FixedWindowLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	window = max(window.Truncate(time.Second), time.Second)
	return &FixedWindowLimiter{
		name:    name,
		counter: counter,
		limit:   int64(limit),
		window:  window,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func (l *FixedWindowLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := l.now()
		bucket := now.Unix() / int64(l.window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", l.name, clientIP(r), bucket)

		count, err := l.counter.Incr(r.Context(), key, l.window)
		if err != nil {
			l.logger.WarnContext(r.Context(), "rate limit counter unavailable", "limiter", l.name, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > l.limit {
			windowEnd := time.Unix((bucket+1)*int64(l.window.Seconds()), 0)
			l.metrics.RecordRateLimited(l.name)
			writeRateLimited(w, windowEnd.Sub(now))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserRateLimiter keeps one token bucket per authenticated user. It must run
// after RequireAuth.
type UserRateLimiter struct {
	name    string
	limit   rate.Limit
	burst   int
	metrics RateLimitMetrics
	logger  *slog.Logger

	mu       sync.Mutex
	limiters map[string]*userLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewUserRateLimiter allows perMinute requests per user, with a burst of the
// same size. Idle buckets are dropped every cleanupInterval.
func NewUserRateLimiter(name string, perMinute int, cleanupInterval time.Duration, metrics RateLimitMetrics, logger *slog.Logger) *UserRateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	burst := max(perMinute, 1)
	rl := &UserRateLimiter{
		name:     name,
		limit:    rate.Limit(float64(burst) / 60.0),
		burst:    burst,
		metrics:  metrics,
		logger:   logger,
		limiters: make(map[string]*userLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop(cleanupInterval)
	return rl
}

func (rl *UserRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *UserRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.FromContext(r.Context())
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID := caller.UserID.String()
		if !rl.get(userID).Allow() {
			rl.metrics.RecordRateLimited(rl.name)
			rl.logger.WarnContext(r.Context(), "rate limit exceeded", "user_id", userID, "limiter", rl.name)
			writeRateLimited(w, time.Duration(math.Ceil(1/float64(rl.limit)))*time.Second)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *UserRateLimiter) get(userID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[userID] = ul
	}
	ul.lastAccess = time.Now()
	return ul.limiter
}

func (rl *UserRateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *UserRateLimiter) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now().Add(-2 * interval))
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *UserRateLimiter) cleanup(idleBefore time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for userID, ul := range rl.limiters {
		if ul.lastAccess.Before(idleBefore) {
			delete(rl.limiters, userID)
		}
	}
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	utils.WriteError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
