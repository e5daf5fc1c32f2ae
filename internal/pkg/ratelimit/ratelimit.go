// Package ratelimit gates requests per client address and endpoint class.
package ratelimit

import (
	"context"
	"time"
)

// Class groups endpoints that share a budget
type Class string

// Endpoint classes
const (
	ClassSearch Class = "search"
	ClassList   Class = "list"
	ClassDetail Class = "detail"
	ClassHealth Class = "health"
)

// Rule allows Limit requests per Window
type Rule struct {
	Limit  int
	Window time.Duration
}

// Rules maps every class to its rule
type Rules map[Class]Rule

// PerMinute builds the rule set from per-minute budgets
func PerMinute(search, list, detail, health int) Rules {
	return Rules{
		ClassSearch: {Limit: search, Window: time.Minute},
		ClassList:   {Limit: list, Window: time.Minute},
		ClassDetail: {Limit: detail, Window: time.Minute},
		ClassHealth: {Limit: health, Window: time.Minute},
	}
}

// DefaultRules returns 50/100/200/500 requests per minute for search/list/detail/health
func DefaultRules() Rules {
	return PerMinute(50, 100, 200, 500)
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is how long the caller should wait before the next attempt. Zero
	// when Allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a client may issue one more request of a class.
//
// Implementations that depend on an external system fail open: they return an
// allowing Decision together with the error.
type Limiter interface {
	Allow(ctx context.Context, class Class, clientKey string) (Decision, error)
}

// unlimited is the decision for classes without a rule
func unlimited() Decision {
	return Decision{Allowed: true, Limit: -1, Remaining: -1}
}
