// Package cache holds span query results for a short time so a report and
// its refreshes do not hit the activity source for every user-day.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// Key identifies one span query. UserIDs and Types are hashed as sets, so
// their order does not matter.
type Key struct {
	Source  string
	UserIDs []string              `hash:"set"`
	From    calendar.Date         `hash:"string"`
	To      calendar.Date         `hash:"string"`
	Types   []domain.ActivityType `hash:"set"`
}

// covers reports whether an entry stored under k can contain data for userID.
func (k Key) covers(userID string) bool {
	return len(k.UserIDs) == 0 || slices.Contains(k.UserIDs, userID)
}

type entry[V any] struct {
	key      Key
	value    V
	storedAt time.Time
}

type Option func(*options)

type options struct {
	now    func() time.Time
	onHit  func()
	onMiss func()
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHooks registers callbacks run on every hit and miss.
func WithHooks(onHit, onMiss func()) Option {
	return func(o *options) {
		o.onHit = onHit
		o.onMiss = onMiss
	}
}

// Cache is a TTL cache of query results, safe for concurrent use.
// A zero or negative TTL disables caching.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint64]entry[V]
	opts    options
}

func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now, onHit: func() {}, onMiss: func() {}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{ttl: ttl, entries: make(map[uint64]entry[V]), opts: o}
}

func hashKey(k Key) (uint64, error) {
	h, err := hashstructure.Hash(k, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("hashing cache key: %w", err)
	}
	return h, nil
}

// Get returns the fresh value stored under k.
func (c *Cache[V]) Get(k Key) (V, bool) {
	var zero V
	if c.ttl <= 0 {
		c.opts.onMiss()
		return zero, false
	}
	h, err := hashKey(k)
	if err != nil {
		c.opts.onMiss()
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[h]
	if !ok || c.opts.now().Sub(e.storedAt) >= c.ttl {
		if ok {
			delete(c.entries, h)
		}
		c.opts.onMiss()
		return zero, false
	}
	c.opts.onHit()
	return e.value, true
}

// Put stores v under k and drops any expired entries.
func (c *Cache[V]) Put(k Key, v V) {
	if c.ttl <= 0 {
		return
	}
	h, err := hashKey(k)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.opts.now()
	for eh, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, eh)
		}
	}
	c.entries[h] = entry[V]{key: k, value: v, storedAt: now}
}

// GetOrLoad returns the cached value for k, calling load and storing its
// result on a miss. Load errors are returned and not cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, k Key, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(k, v)
	return v, nil
}

// InvalidateUser drops every entry whose query could include userID.
func (c *Cache[V]) InvalidateUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for h, e := range c.entries {
		if e.key.covers(userID) {
			delete(c.entries, h)
		}
	}
}

// Invalidate drops everything.
func (c *Cache[V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
