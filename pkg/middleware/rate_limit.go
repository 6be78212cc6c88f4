package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"konica/pkg/logger"
)

// IPRateLimiter is a fixed-window counter keyed by client IP. Entries are
// swept by a background goroutine; call Stop on shutdown.
type IPRateLimiter struct {
	limit    int
	window   time.Duration
	mu       sync.Mutex
	counters map[string]*windowCounter
	log      *logger.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

type windowCounter struct {
	count       int
	windowStart time.Time
}

func NewIPRateLimiter(limit int, window time.Duration, log *logger.Logger) *IPRateLimiter {
	rl := &IPRateLimiter{
		limit:    limit,
		window:   window,
		counters: make(map[string]*windowCounter),
		log:      log,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *IPRateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.counters[key]
	if !ok || now.Sub(c.windowStart) >= rl.window {
		rl.counters[key] = &windowCounter{count: 1, windowStart: now}
		return true
	}

	if c.count >= rl.limit {
		return false
	}
	c.count++
	return true
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.counters {
				if now.Sub(c.windowStart) >= rl.window {
					delete(rl.counters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func RateLimit(rl *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !rl.Allow(key) {
				rl.log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"client_ip", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
