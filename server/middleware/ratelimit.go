package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/handler"
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	// Requests allowed per Window per key. Defaults to 60.
	Requests int `yaml:"requests" mapstructure:"requests"`
	// Window defaults to one minute.
	Window time.Duration `yaml:"window" mapstructure:"window"`
	// KeyFunc extracts the limit key. Defaults to the client IP.
	KeyFunc func(*http.Request) string `yaml:"-" mapstructure:"-"`
}

// RateLimit applies a per-key sliding window limit. Rejected requests get
// a TooManyRequestsError through w and a Retry-After header. The cleanup
// goroutine stops when ctx is done.
func RateLimit(ctx context.Context, w *handler.Wrapper, cfg RateLimitConfig) Middleware {
	if cfg.Requests <= 0 {
		cfg.Requests = 60
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPKey
	}

	rl := newRateLimiter(cfg.Requests, cfg.Window, time.Now)
	go rl.cleanupLoop(ctx, 5*cfg.Window)

	retryAfter := strconv.Itoa(int((cfg.Window + time.Second - 1) / time.Second))

	return func(next http.Handler) http.Handler {
		return w.HTTP(func(rw http.ResponseWriter, r *http.Request) error {
			if !rl.allow(cfg.KeyFunc(r)) {
				rw.Header().Set("Retry-After", retryAfter)
				return apperrors.TooManyRequests("")
			}
			next.ServeHTTP(rw, r)
			return nil
		})
	}
}

// IPKey keys by the remote address host.
func IPKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      now,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := after(rl.requests[key], now.Add(-rl.window))
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

func (rl *rateLimiter) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.window)
	for key, times := range rl.requests {
		if valid := after(times, cutoff); len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func after(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}
