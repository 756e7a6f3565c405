package runner

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum interval between calls sharing a key. Each Wait
// reserves the next slot for its key under the lock, so concurrent callers
// queue up instead of racing through together.
type Pacer struct {
	interval time.Duration

	mu   sync.Mutex
	next map[string]time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		next:     make(map[string]time.Time),
	}
}

// Wait blocks until the caller's reserved slot for key arrives, or the
// context is cancelled.
func (p *Pacer) Wait(ctx context.Context, key string) error {
	if p.interval <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := time.Now()
	slot := p.next[key]
	if slot.Before(now) {
		slot = now
	}
	p.next[key] = slot.Add(p.interval)
	p.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
