// Package ratelimit bounds how often a submitter may post within a fixed
// one-hour window. The check and the commit are deliberately separate:
// handlers check before doing any work and commit only after the submission
// is durably persisted, so attempts that fail validation or persistence are
// never counted. The limiter is a soft abuse deterrent, not a strict quota.
package ratelimit

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultLimit is the number of submissions allowed per window.
	DefaultLimit = 5
	// DefaultWindow is the fixed-origin window length.
	DefaultWindow = time.Hour
)

// ErrEmptyKey is returned when a caller passes an empty submitter key.
// Anonymous submitters must be keyed by a session token; sharing a single
// empty-key bucket would rate-limit strangers against each other.
var ErrEmptyKey = errors.New("rate limit key cannot be empty")

// Counter is the stored state for one (submitter, kind) bucket.
type Counter struct {
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
}

// Store is the key-value backing for counters. Get returns nil for absent
// or expired keys. Incr adds one to a counter in a single atomic step: an
// absent or expired counter restarts with a window origin of now, and the
// entry expires at WindowStart plus window.
type Store interface {
	Get(key string) (*Counter, error)
	Incr(key string, now time.Time, window time.Duration) (*Counter, error)
}

// Limiter counts submissions per (submitter, action kind).
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// New creates a Limiter over store with the default limit and window.
func New(store Store) *Limiter {
	return &Limiter{
		store:  store,
		limit:  DefaultLimit,
		window: DefaultWindow,
		now:    time.Now,
	}
}

// WithLimits overrides the limit and window, mainly for configuration.
func (l *Limiter) WithLimits(limit int, window time.Duration) *Limiter {
	l.limit = limit
	l.window = window
	return l
}

// WithClock overrides the time source, for tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func bucketKey(key, kind string) string {
	return fmt.Sprintf("ratelimit:%s:%s", kind, key)
}

// current loads the live counter for a bucket, treating expired windows as
// absent even if the store has not reaped them yet.
func (l *Limiter) current(key, kind string) (*Counter, error) {
	counter, err := l.store.Get(bucketKey(key, kind))
	if err != nil {
		return nil, err
	}
	if counter == nil {
		return nil, nil
	}
	if l.now().After(counter.WindowStart.Add(l.window)) {
		return nil, nil
	}
	return counter, nil
}

// Check reports whether a submission keyed by (key, kind) is allowed.
// Rejected checks mutate nothing, so hammering a full bucket neither
// extends the window nor grows the count.
func (l *Limiter) Check(key, kind string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	counter, err := l.current(key, kind)
	if err != nil {
		return false, err
	}
	if counter != nil && counter.Count >= l.limit {
		return false, nil
	}
	return true, nil
}

// Commit records one successful submission. The window origin is fixed at
// the first commit; later commits keep the original expiry. The increment
// runs as a single store operation, so concurrent commits on the same
// bucket never lose counts.
func (l *Limiter) Commit(key, kind string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := l.store.Incr(bucketKey(key, kind), l.now(), l.window)
	return err
}
