package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds parsed tables keyed by content hash and parser identity.
// A nil Cache or a zero TTL parses on every call.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	table *Table
	built time.Time
}

// NewCache creates an empty cache with the given time-to-live.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key returns the cache key for parsing data with p.
func Key(p Parser, data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + ":" + p.Name() + ":" + p.Version()
}

func (c *Cache) expired(e *cacheEntry) bool {
	return c.now().Sub(e.built) > c.ttl
}

// GetOrParse returns the cached table for data or parses it. Concurrent calls
// for the same key share one parse.
func (c *Cache) GetOrParse(ctx context.Context, p Parser, data []byte) (*Table, bool, error) {
	if c == nil || c.ttl <= 0 {
		t, err := p.Parse(ctx, bytes.NewReader(data))
		return t, false, err
	}

	key := Key(p, data)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		return entry.table, true, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.table, nil
		}

		// Callers share this parse, so one of them going away must not fail the rest
		t, err := p.Parse(context.WithoutCancel(ctx), bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.sweepLocked()
		c.entries[key] = &cacheEntry{table: t, built: c.now()}
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Table), false, nil
}

// sweepLocked drops expired entries. c.mu must be held for writing.
func (c *Cache) sweepLocked() {
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
}

// Invalidate drops one entry.
func (c *Cache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every entry and returns how many were held.
func (c *Cache) Purge() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]*cacheEntry)
	return n
}

// Len returns the number of entries. Expired entries count until the next
// insert sweeps them.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
