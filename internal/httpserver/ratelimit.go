package httpserver

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"golang.org/x/time/rate"
)

// bucketIdleTTL is how long an unused bucket survives a sweep.
const bucketIdleTTL = 10 * time.Minute

const sweepEvery = 1000

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiters hands out one token bucket per key (client IP or coach).
type keyedLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*bucket
	calls   int
}

func newKeyedLimiters(limit rate.Limit, burst int) *keyedLimiters {
	return &keyedLimiters{
		limit:   limit,
		burst:   burst,
		buckets: make(map[string]*bucket),
	}
}

// allow takes a token for key. When none is left it returns the wait
// until the next one.
func (k *keyedLimiters) allow(key string, now time.Time) (bool, time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()

	b, ok := k.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.buckets[key] = b
	}
	b.lastSeen = now

	k.calls++
	if k.calls%sweepEvery == 0 {
		k.sweep(now)
	}

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// sweep drops buckets idle for longer than bucketIdleTTL. Caller holds mu.
func (k *keyedLimiters) sweep(now time.Time) {
	for key, b := range k.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(k.buckets, key)
		}
	}
}

func (k *keyedLimiters) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

// RateLimitMiddleware enforces a per-IP budget on every route.
// RateLimitRPS <= 0 disables it.
func RateLimitMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	if cfg.RateLimitRPS <= 0 {
		return next
	}

	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = cfg.RateLimitRPS
	}
	limiters := newKeyedLimiters(rate.Limit(cfg.RateLimitRPS), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, wait := limiters.allow(clientIP(r), time.Now()); !ok {
			writeRateLimited(w, wait, "rate_limited", "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// generateRateLimit caps plan generation per coach. It runs inside the auth
// chain, so the coach id is known; anonymous callers are keyed by IP.
func generateRateLimit(plan config.PlanConfig, next http.Handler) http.Handler {
	if plan.GeneratePerMinute <= 0 {
		return next
	}

	burst := plan.GenerateBurst
	if burst <= 0 {
		burst = 1
	}
	limiters := newKeyedLimiters(rate.Every(time.Minute/time.Duration(plan.GeneratePerMinute)), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, wait := limiters.allow(generateKey(r), time.Now()); !ok {
			writeRateLimited(w, wait, "generate_rate_limited", "Too many plan generations, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func generateKey(r *http.Request) string {
	if userID, ok := userctx.GetUserID(r.Context()); ok && strings.TrimSpace(userID) != "" {
		return "coach:" + userID
	}
	return "ip:" + clientIP(r)
}

func writeRateLimited(w http.ResponseWriter, wait time.Duration, code, message string) {
	seconds := int(math.Ceil(wait.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
