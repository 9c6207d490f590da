// Package cache provides caching utilities for loaded schema artifacts.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/schemex/pkg/schema"
)

// SchemaCache is a thread-safe LRU cache of schemas keyed by artifact path.
// Cached schemas are stored as-is; callers receive deep copies so no two
// operations ever share a mutable schema tree.
type SchemaCache struct {
	cache *lru.Cache[string, *schema.Schema]
}

// NewSchemaCache creates an LRU cache holding at most maxItems schemas.
func NewSchemaCache(maxItems int) (*SchemaCache, error) {
	c, err := lru.New[string, *schema.Schema](maxItems)
	if err != nil {
		return nil, err
	}
	return &SchemaCache{cache: c}, nil
}

// Get returns a copy of the cached schema for path, if present.
func (c *SchemaCache) Get(path string) (*schema.Schema, bool) {
	s, ok := c.cache.Get(path)
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Put stores a copy of the schema under path.
func (c *SchemaCache) Put(path string, s *schema.Schema) {
	c.cache.Add(path, s.Clone())
}

// Len returns the current number of cached schemas.
func (c *SchemaCache) Len() int {
	return c.cache.Len()
}
