package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per class and client in process memory.
// A bucket holds Limit tokens and refills completely over Window.
type MemoryLimiter struct {
	mu        sync.Mutex
	rules     Rules
	buckets   map[string]*bucket
	lastPrune time.Time
	now       func() time.Time
}

// NewMemoryLimiter creates a MemoryLimiter for rules
func NewMemoryLimiter(rules Rules) *MemoryLimiter {
	return &MemoryLimiter{
		rules:   rules,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (m *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	m.now = now
	return m
}

// Allow takes one token from the bucket of clientKey for class
func (m *MemoryLimiter) Allow(_ context.Context, class Class, clientKey string) (Decision, error) {
	rule, ok := m.rules[class]
	if !ok || rule.Limit <= 0 {
		return unlimited(), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.prune(now)

	key := string(class) + ":" + clientKey
	b, ok := m.buckets[key]
	if !ok {
		every := rule.Window / time.Duration(rule.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), rule.Limit)}
		m.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return Decision{
			Allowed:   true,
			Limit:     rule.Limit,
			Remaining: int(math.Floor(b.limiter.TokensAt(now))),
		}, nil
	}

	missing := 1 - b.limiter.TokensAt(now)
	wait := time.Duration(missing / float64(b.limiter.Limit()) * float64(time.Second))
	return Decision{
		Allowed:    false,
		Limit:      rule.Limit,
		Remaining:  0,
		RetryAfter: wait,
	}, nil
}

// prune drops buckets idle for longer than the longest window; such buckets are
// full again and indistinguishable from new ones. Must be called with mu held.
func (m *MemoryLimiter) prune(now time.Time) {
	longest := time.Duration(0)
	for _, r := range m.rules {
		if r.Window > longest {
			longest = r.Window
		}
	}
	if now.Sub(m.lastPrune) < longest {
		return
	}
	m.lastPrune = now

	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) > longest {
			delete(m.buckets, key)
		}
	}
}

// Len reports the number of tracked buckets
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}
