package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimit describes a token bucket: Requests per Window, with Burst tokens
// available up front.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Built-in profiles. The app loads overrides through RateLimitFromEnv.
var (
	// AuthLimit guards login and refresh.
	AuthLimit = RateLimit{Requests: 10, Window: time.Minute, Burst: 10}

	// RemoteLimit guards calls that reach Reddit (publish, edit, delete,
	// fetch, link, sweep).
	RemoteLimit = RateLimit{Requests: 30, Window: time.Minute, Burst: 10}

	// APILimit guards ordinary authenticated CRUD.
	APILimit = RateLimit{Requests: 300, Window: time.Minute, Burst: 60}
)

// RateLimitFromEnv overlays RATELIMIT_<name>_REQUESTS, RATELIMIT_<name>_WINDOW_SEC
// and RATELIMIT_<name>_BURST onto def. Invalid or non-positive values are
// ignored.
func RateLimitFromEnv(name string, def RateLimit) RateLimit {
	out := def
	if n, ok := positiveEnvInt("RATELIMIT_" + name + "_REQUESTS"); ok {
		out.Requests = n
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + name + "_WINDOW_SEC"); ok {
		out.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + name + "_BURST"); ok {
		out.Burst = n
	}
	return out
}

func positiveEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyFunc picks the bucket a request is charged to. An empty key means the
// request is not limited.
type KeyFunc func(*http.Request) string

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// remote address host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserKey returns the authenticated user id, if any.
func UserKey(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

// JoinKeys concatenates the non-empty keys produced by fns.
func JoinKeys(sep string, fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

// buckets holds one limiter per key and forgets idle ones.
type buckets struct {
	limit rate.Limit
	burst int

	entries sync.Map // string -> *rate.Limiter

	mu        sync.Mutex
	lastSweep time.Time
}

func (b *buckets) get(key string) *rate.Limiter {
	if l, ok := b.entries.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := b.entries.LoadOrStore(key, rate.NewLimiter(b.limit, b.burst))
	b.sweep()
	return l.(*rate.Limiter)
}

// sweep drops full buckets at most every five minutes. A full bucket has not
// been charged recently, so recreating it later is equivalent.
func (b *buckets) sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.lastSweep) < 5*time.Minute {
		return
	}
	b.lastSweep = time.Now()

	b.entries.Range(func(k, v any) bool {
		if v.(*rate.Limiter).Tokens() >= float64(b.burst) {
			b.entries.Delete(k)
		}
		return true
	})
}

// RateLimitMiddleware rejects requests over the limit with 429 and a
// Retry-After header.
func RateLimitMiddleware(cfg RateLimit, key KeyFunc) Middleware {
	b := &buckets{
		limit:     rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			l := b.get(k)
			if l.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Reserve()
			wait := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(wait))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"path", r.URL.Path,
				"retry_after", wait,
			)
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client address.
func RateLimitByIP(cfg RateLimit) Middleware {
	return RateLimitMiddleware(cfg, ClientIP)
}

// RateLimitByUser limits by user id plus client address. Must sit behind the
// session middleware to see the user.
func RateLimitByUser(cfg RateLimit) Middleware {
	return RateLimitMiddleware(cfg, JoinKeys(":", UserKey, ClientIP))
}
