// Package cache provides caching utilities for the MCP server.
package cache

import (
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
)

// ResultCache provides thread-safe LRU caching of computed results keyed by
// an input fingerprint. Concurrent computations of the same key are collapsed
// into one.
type ResultCache[V any] struct {
	cache *lru.Cache[string, V]
	group singleflight.Group
}

// NewResultCache creates a new LRU cache with the specified maximum number of items.
func NewResultCache[V any](maxItems int) (*ResultCache[V], error) {
	c, err := lru.New[string, V](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache[V]{cache: c}, nil
}

// Get retrieves a result from the cache by its key.
// Returns the result and true if found, the zero value and false otherwise.
func (c *ResultCache[V]) Get(key string) (V, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a result in the cache.
func (c *ResultCache[V]) Put(key string, value V) {
	c.cache.Add(key, value)
}

// GetOrCompute returns the cached result for key, computing and storing it
// when missing. cached reports whether the value came from the cache or from
// a computation another caller already had in flight. Errors are not cached.
func (c *ResultCache[V]) GetOrCompute(key string, compute func() (V, error)) (value V, cached bool, err error) {
	if v, ok := c.cache.Get(key); ok {
		return v, true, nil
	}

	res, err, shared := c.group.Do(key, func() (any, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), shared, nil
}

// Len returns the current number of items in the cache.
func (c *ResultCache[V]) Len() int {
	return c.cache.Len()
}

// Fingerprint hashes parts into a 32 character hex key. Each part is length
// prefixed, so moving bytes between adjacent parts changes the result.
func Fingerprint(parts ...[]byte) string {
	h := xxh3.New()
	var prefix [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(prefix[:], uint64(len(p)))
		_, _ = h.Write(prefix[:])
		_, _ = h.Write(p)
	}
	sum := h.Sum128()
	return fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo)
}
