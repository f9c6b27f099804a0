package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. Idle visitors are
// evicted by a background loop that stops with Shutdown or the parent ctx.
type RateLimiter struct {
	mu            sync.Mutex
	visitors      map[string]*visitor
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	visitorTTL    time.Duration
	cancel        context.CancelFunc
}

func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, cleanupPeriod, visitorTTL time.Duration) *RateLimiter {
	ctx, cancel := context.WithCancel(ctx)
	rl := &RateLimiter{
		visitors:      make(map[string]*visitor),
		limit:         limit,
		burst:         burst,
		cleanupPeriod: cleanupPeriod,
		visitorTTL:    visitorTTL,
		cancel:        cancel,
	}
	go rl.cleanupLoop(ctx)
	return rl
}

func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiter(getClientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				utils.WriteError(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > rl.visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
