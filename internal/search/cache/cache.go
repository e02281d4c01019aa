// Package cache provides a short-lived in-memory cache for search
// responses, with request collapsing so concurrent identical searches
// hit the upstream once.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// Cache holds search responses with a TTL.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	ttl      time.Duration
	inflight map[string]*inflight
	done     chan struct{}
}

type entry struct {
	resp      *types.SearchResponse
	expiresAt time.Time
}

type inflight struct {
	done chan struct{}
	resp *types.SearchResponse
}

// New creates a Cache with the given TTL.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries:  make(map[string]*entry),
		ttl:      ttl,
		inflight: make(map[string]*inflight),
		done:     make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	close(c.done)
}

// Key derives a canonical cache key from a search request.
func Key(req types.SearchRequest) string {
	rooms := make([]string, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		ages := make([]string, 0, len(room.ChildAges))
		for _, a := range room.ChildAges {
			ages = append(ages, fmt.Sprintf("%d", a))
		}
		rooms = append(rooms, fmt.Sprintf("%d+%d[%s]", room.Adults, room.Children, strings.Join(ages, ",")))
	}
	return strings.ToLower(strings.Join([]string{
		req.Destination,
		req.DestinationID,
		req.CheckIn,
		req.CheckOut,
		req.Nationality,
		req.Currency,
		req.Language,
		strings.Join(rooms, "|"),
	}, ":"))
}

// GetOrFetch returns a cached response for the key or runs fetch,
// collapsing concurrent fetches of the same key. The second return
// reports a cache hit. Fetch never fails (the cascade guarantees a
// value), so only fresh responses are stored.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func() *types.SearchResponse) (*types.SearchResponse, bool) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.resp, true
	}

	if fl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.resp, false
		case <-ctx.Done():
			// Caller is gone; the collapsed fetch keeps running for the
			// other waiters.
			return nil, false
		}
	}

	fl := &inflight{done: make(chan struct{})}
	c.inflight[key] = fl
	c.mu.Unlock()

	resp := fetch()

	c.mu.Lock()
	fl.resp = resp
	if resp != nil {
		c.entries[key] = &entry{resp: resp, expiresAt: time.Now().Add(c.ttl)}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	close(fl.done)
	return resp, false
}

// Invalidate removes one key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
