package mw

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"blog-api/internal/utils"
)

type RateLimitConfig struct {
	MaxRequests   int           // requests allowed per window
	Window        time.Duration // fixed window length
	MaxEntries    int           // sweep early when the key map grows past this
	SweepInterval time.Duration
	IdleTTL       time.Duration
	TrustProxy    bool // resolve client IP from proxy headers when true
}

type window struct {
	count    int
	resetAt  time.Time
	lastSeen time.Time
}

// Limiter is a fixed-window request counter keyed by client. All state
// lives in the value; callers share one instance across handlers.
type Limiter struct {
	cfg       RateLimitConfig
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

func NewLimiter(cfg RateLimitConfig) *Limiter {
	if cfg.MaxRequests < 1 {
		cfg.MaxRequests = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	return &Limiter{
		cfg:       cfg,
		windows:   make(map[string]*window, 1024),
		lastSweep: time.Now(),
	}
}

// Allow records a request for the key at the given instant. First request
// in a window sets count=1 and schedules the reset; once the count reaches
// the limit, further requests are rejected without incrementing. remaining
// is the quota left after this request; resetAt is when the window reopens.
func (l *Limiter) Allow(key string, now time.Time) (ok bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg.MaxEntries > 0 && len(l.windows) >= l.cfg.MaxEntries {
		l.sweepLocked(now)
	}

	w := l.windows[key]
	if w == nil || !now.Before(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(l.cfg.Window), lastSeen: now}
		l.windows[key] = w
		return true, l.cfg.MaxRequests - 1, w.resetAt
	}

	w.lastSeen = now
	if w.count >= l.cfg.MaxRequests {
		return false, 0, w.resetAt
	}

	w.count++
	return true, l.cfg.MaxRequests - w.count, w.resetAt
}

func (l *Limiter) sweepLocked(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.lastSeen) > l.cfg.IdleTTL {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

func (l *Limiter) sweepMaybe(now time.Time) {
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		l.sweepLocked(now)
	}
	l.mu.Unlock()
}

// RateLimit enforces the limiter per client IP. Rejections carry
// Retry-After and the X-RateLimit-* headers.
func RateLimit(l *Limiter) func(http.Handler) http.Handler {
	limitStr := strconv.Itoa(l.cfg.MaxRequests)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			l.sweepMaybe(now)

			key := utils.ClientIP(r, l.cfg.TrustProxy)

			ok, remaining, resetAt := l.Allow(key, now)
			w.Header().Set("X-RateLimit-Limit", limitStr)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retry := int(time.Until(resetAt).Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeErrorEnvelope(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
