package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const idleTTL = 25 * time.Hour

// MemoryRateLimiter is a per-process token bucket limiter. It is used when
// Redis is disabled.
type MemoryRateLimiter struct {
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]*memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	limiters []*rate.Limiter
	lastSeen time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, config RateLimitConfig) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &memoryEntry{limiters: newLimiters(config)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	for _, lim := range entry.limiters {
		if lim.TokensAt(now) < 1 {
			return false, nil
		}
	}
	for _, lim := range entry.limiters {
		lim.AllowN(now, 1)
	}
	return true, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
	return nil
}

func (l *MemoryRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(l.entries, k)
		}
	}
}

func newLimiters(config RateLimitConfig) []*rate.Limiter {
	var out []*rate.Limiter
	for i, w := range config.windows() {
		if w.limit <= 0 {
			continue
		}
		burst := w.limit
		if i == 0 && config.BurstSize > 0 && config.BurstSize < burst {
			burst = config.BurstSize
		}
		out = append(out, rate.NewLimiter(rate.Every(w.duration/time.Duration(w.limit)), burst))
	}
	return out
}
