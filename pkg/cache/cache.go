// Package cache provides the resolution cache: a map from an Address to
// the absolute identifier it was last resolved to.
//
// The cache has two modes. With MaxEntries == 0 it grows without bound for
// the lifetime of the process; entries are never invalidated. With
// MaxEntries > 0 it keeps the most recently used entries only.
//
// Find and Add are each atomic, so a Cache may be shared by several
// resolvers. A lookup followed by an insert is not atomic: two resolvers
// racing on the same Address may both resolve it upstream, and the last Add
// wins.
package cache

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// ErrInvalidConfig is returned for a negative MaxEntries.
var ErrInvalidConfig = errors.New("invalid cache configuration")

// Config configures a Cache.
type Config struct {
	// MaxEntries bounds the number of entries (0 = unbounded).
	MaxEntries int
}

// DefaultConfig returns the unbounded configuration.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxEntries < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Entry is a cached resolution.
type Entry struct {
	// Resolved is the absolute identifier the Address resolved to.
	Resolved ua.ExpandedNodeID

	// PathDerived is set when the identifier was obtained by translating a
	// relative path, rather than copied from an absolute Address.
	PathDerived bool
}

// Cache maps Addresses (by structural key) to resolved identifiers.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	bounded *lru.Cache
}

// New creates a Cache.
func New(cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxEntries > 0 {
		l, err := lru.New(cfg.MaxEntries)
		if err != nil {
			return nil, err
		}
		return &Cache{bounded: l}, nil
	}
	return &Cache{entries: make(map[string]Entry)}, nil
}

// NewUnbounded creates a Cache that never evicts.
func NewUnbounded() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Find returns the identifier a was resolved to, if cached.
func (c *Cache) Find(a address.Address) (ua.ExpandedNodeID, bool) {
	e, ok := c.Entry(a)
	return e.Resolved, ok
}

// Entry returns the cache entry for a, if any.
func (c *Cache) Entry(a address.Address) (Entry, bool) {
	key := a.Key()
	if c.bounded != nil {
		v, ok := c.bounded.Get(key)
		if !ok {
			return Entry{}, false
		}
		return v.(Entry), true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Add records that a resolved to resolved. An existing entry is replaced.
func (c *Cache) Add(a address.Address, resolved ua.ExpandedNodeID, pathDerived bool) {
	e := Entry{Resolved: resolved, PathDerived: pathDerived}
	key := a.Key()
	if c.bounded != nil {
		c.bounded.Add(key, e)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	if c.bounded != nil {
		return c.bounded.Len()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge removes every entry.
func (c *Cache) Purge() {
	if c.bounded != nil {
		c.bounded.Purge()
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}
