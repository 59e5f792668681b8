package httpx

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the limiting parameters for an endpoint class.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Common rate limit profiles.
var (
	// StrictLimit for credential endpoints (brute force prevention).
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit for authenticated admin operations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit for health checks and other cheap reads.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}
)

const limiterIdleTTL = 10 * time.Minute

// limiterPool keeps one token bucket per key and drops buckets that have been
// idle for a while so the map does not grow without bound.
type limiterPool struct {
	mu      sync.Mutex
	cfg     RateLimitConfig
	entries map[string]*limiterEntry
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(cfg RateLimitConfig) *limiterPool {
	return &limiterPool{cfg: cfg, entries: make(map[string]*limiterEntry)}
}

func (p *limiterPool) allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	e, ok := p.entries[key]
	if !ok {
		every := p.cfg.Window / time.Duration(p.cfg.RequestsPerWindow)
		e = &limiterEntry{lim: rate.NewLimiter(rate.Every(every), p.cfg.Burst)}
		p.entries[key] = e
	}
	e.lastSeen = now

	// Opportunistic pruning of idle buckets.
	for k, other := range p.entries {
		if now.Sub(other.lastSeen) > limiterIdleTTL {
			delete(p.entries, k)
		}
	}

	return e.lim.Allow()
}

// RateLimitByIP limits requests per client IP. Used on unauthenticated
// endpoints like signin/signup.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	pool := newLimiterPool(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.allow(clientIP(r)) {
				WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByUser limits requests per authenticated user, falling back to the
// client IP when no identity is present. Run after AuthnMiddleware.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	pool := newLimiterPool(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := UserIDFromContext(r.Context())
			if key == "" {
				key = clientIP(r)
			}
			if !pool.allow(key) {
				WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
