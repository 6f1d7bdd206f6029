package document

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of documents kept when no size is configured.
const DefaultCacheSize = 256

// ErrNilDocument is returned when a loader reports success without a document.
var ErrNilDocument = errors.New("loader returned no document")

// Loader fetches and parses one document.
type Loader func(ctx context.Context) (*Document, error)

// Cache keeps parsed documents keyed by resource identity.
// Hits are served under a shared lock; the first load of a key runs once
// no matter how many callers ask for it concurrently, and its result is
// inserted under the exclusive lock. Failed loads are not cached.
type Cache struct {
	mu    sync.RWMutex
	docs  *lru.Cache[string, *Document]
	group singleflight.Group
}

// NewCache creates a Cache holding at most size documents.
// A non-positive size selects DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	docs, err := lru.New[string, *Document](size)
	if err != nil {
		return nil, fmt.Errorf("creating document cache: %w", err)
	}

	return &Cache{docs: docs}, nil //nolint:exhaustruct // zero singleflight.Group is ready to use
}

// Get returns the cached document for key.
func (c *Cache) Get(key string) (*Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.docs.Get(key)
}

// Load returns the cached document for key, calling load on a miss.
// cached reports whether the document came from the cache, including
// the case where another caller's in-flight load was shared.
func (c *Cache) Load(ctx context.Context, key string, load Loader) (*Document, bool, error) {
	if doc, ok := c.Get(key); ok {
		return doc, true, nil
	}

	val, err, shared := c.group.Do(key, func() (any, error) {
		// another caller may have finished loading while we waited on the group
		if doc, ok := c.Get(key); ok {
			return doc, nil
		}

		doc, loadErr := load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}

		if doc == nil {
			return nil, ErrNilDocument
		}

		c.mu.Lock()
		c.docs.Add(key, doc)
		c.mu.Unlock()

		return doc, nil
	})
	if err != nil {
		return nil, false, err //nolint:wrapcheck // loader errors are already wrapped by the caller
	}

	doc, _ := val.(*Document)

	return doc, shared, nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.docs.Len()
}

// Purge drops every cached document.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs.Purge()
}
