package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"service-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client key.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newLimiterStore(perMinute, burst int) *limiterStore {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	return &limiterStore{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst), lastSeen: now}
		s.limiters[key] = entry
		s.evict(now)
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (s *limiterStore) evict(now time.Time) {
	for key, e := range s.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(s.limiters, key)
		}
	}
}

// RateLimit limits requests per authenticated user, falling back to the
// client IP for anonymous requests.
func RateLimit(config utils.RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	store := newLimiterStore(config.PerMinute, config.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
				key = "user:" + userID.String()
			}

			if !store.allow(key) {
				logger.Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", r.URL.Path))
				utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
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
