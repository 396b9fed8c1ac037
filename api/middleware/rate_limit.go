package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mateoquintana/brandforge-backend/api/responses"
	"github.com/mateoquintana/brandforge-backend/pkg/config"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
	"github.com/mateoquintana/brandforge-backend/pkg/redis"
)

// CounterStore increments a windowed counter, typically backed by redis.
type CounterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit enforces a fixed window per client IP across all routes. A nil
// store disables the middleware entirely.
func RateLimit(cfg config.RateLimitConfig, store CounterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || cfg.Window <= 0 || cfg.Limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			key := redis.RateLimitKey("ip:" + ip)
			count, err := store.IncrWithTTL(ctx, key, cfg.Window)
			if err != nil {
				// A broken counter should not take the API down with it.
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate_limit.store_unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(cfg.Limit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"attempts":       count,
						"limit":          cfg.Limit,
						"window_seconds": int(cfg.Window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// MemoryCounterStore is the in-process fallback when redis is unconfigured.
// Counters reset when their window elapses; state is lost on restart.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*memoryCounter
	now     func() time.Time
}

type memoryCounter struct {
	count   int64
	expires time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		entries: map[string]*memoryCounter{},
		now:     time.Now,
	}
}

func (s *MemoryCounterStore) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expires) {
		entry = &memoryCounter{expires: now.Add(ttl)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}
