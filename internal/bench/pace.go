package bench

import (
	"context"
	"sync"
	"time"
)

// pacer schedules request starts at a fixed rate using a leaky
// bucket. Each call to next returns when the following request should
// start; when the caller is behind schedule the returned time is
// already in the past and the request runs immediately.
type pacer struct {
	rate        float64
	lastDrip    time.Time
	accumulated float64
	mu          sync.Mutex
}

func newPacer(rate float64) *pacer {
	return &pacer{rate: rate, lastDrip: time.Now()}
}

func (p *pacer) next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(p.lastDrip).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	p.accumulated += elapsed * p.rate
	if p.accumulated > 1.0 {
		p.accumulated = 1.0
	}

	if p.accumulated >= 1.0 {
		p.accumulated -= 1.0
		p.lastDrip = now
		return now
	}

	deficit := 1.0 - p.accumulated
	wait := time.Duration(deficit / p.rate * float64(time.Second))
	p.accumulated = 0

	// Advancing lastDrip to the scheduled start keeps this drip from
	// being counted a second time once the sleeping caller wakes up.
	next := now.Add(wait)
	p.lastDrip = next
	return next
}

// wait blocks until the next request should start or the context is
// cancelled.
func (p *pacer) wait(ctx context.Context) error {
	d := time.Until(p.next())
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
