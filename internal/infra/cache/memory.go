package cache

import (
	"context"
	"sync"
	"time"

	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/usecase/shared"
)

// MemoryEventCache serves single-instance deployments and tests. Expired ids are dropped lazily
// on the next write.
type MemoryEventCache struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]time.Time
}

var _ shared.ProcessedEventCache = (*MemoryEventCache)(nil)

func NewMemoryEventCache(clk clock.Clock) *MemoryEventCache {
	return &MemoryEventCache{clock: clk, entries: map[string]time.Time{}}
}

func (c *MemoryEventCache) Seen(_ context.Context, eventID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.entries[eventID]
	return ok && c.clock.Now().Before(exp), nil
}

func (c *MemoryEventCache) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	for id, exp := range c.entries {
		if !now.Before(exp) {
			delete(c.entries, id)
		}
	}
	if exp, ok := c.entries[eventID]; ok && now.Before(exp) {
		return nil
	}
	c.entries[eventID] = now.Add(ttl)
	return nil
}

func (c *MemoryEventCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type MemoryLocker struct {
	mu     sync.Mutex
	clock  clock.Clock
	seq    uint64
	leases map[string]lease
}

type lease struct {
	expiresAt time.Time
	gen       uint64
}

var _ shared.Locker = (*MemoryLocker)(nil)

func NewMemoryLocker(clk clock.Clock) *MemoryLocker {
	return &MemoryLocker{clock: clk, leases: map[string]lease{}}
}

func (l *MemoryLocker) TryAcquire(_ context.Context, name string, ttl time.Duration) (func(context.Context), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock.Now()
	if cur, held := l.leases[name]; held && now.Before(cur.expiresAt) {
		return nil, false, nil
	}
	l.seq++
	next := lease{expiresAt: now.Add(ttl), gen: l.seq}
	l.leases[name] = next

	release := func(context.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.leases[name].gen == next.gen {
			delete(l.leases, name)
		}
	}
	return release, true, nil
}
