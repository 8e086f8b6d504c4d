// Package pacer spaces out queries toward upstream DNS, WHOIS and HTTP
// services. The randomized interval is a politeness control, not an
// optimization target.
package pacer

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer blocks the caller before each outbound query.
type Pacer interface {
	// Pause sleeps for one randomized interval.
	Pause(ctx context.Context) error
	// Backoff sleeps roughly twice the normal interval, used between
	// retry attempts after a transient failure.
	Backoff(ctx context.Context) error
}

// Random sleeps a uniformly distributed duration within [Min, Max].
type Random struct {
	min time.Duration
	max time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a pacer sleeping between min and max per query.
func NewRandom(min, max time.Duration) *Random {
	if max < min {
		max = min
	}
	return &Random{
		min: min,
		max: max,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Random) interval() time.Duration {
	if r.max == r.min {
		return r.min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.min + time.Duration(r.rnd.Int63n(int64(r.max-r.min)))
}

func (r *Random) Pause(ctx context.Context) error {
	return sleep(ctx, r.interval())
}

func (r *Random) Backoff(ctx context.Context) error {
	return sleep(ctx, 2*r.interval())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Zero is a no-delay pacer for tests.
type Zero struct{}

func (Zero) Pause(ctx context.Context) error   { return ctx.Err() }
func (Zero) Backoff(ctx context.Context) error { return ctx.Err() }
