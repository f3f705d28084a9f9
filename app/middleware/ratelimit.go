package middleware

import (
	"net"
	"net/http"
	"time"

	"grokmemehub/global"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles an endpoint to a fixed number of requests per client
// within a window, counted in redis so the limit holds across replicas. With
// no redis client configured it passes everything through.
type RateLimiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int64
}

func NewRateLimiter(rdb *redis.Client, window time.Duration, limit int) *RateLimiter {
	return &RateLimiter{rdb: rdb, window: window, limit: int64(limit)}
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if l.rdb == nil || l.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ratelimit:" + r.URL.Path + ":" + clientIP(r)
		count, err := l.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			// Fail open: a dead limiter must not take auth down with it.
			global.Logger.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.rdb.Expire(r.Context(), key, l.window)
		}
		if count > l.limit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests, slow down"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
