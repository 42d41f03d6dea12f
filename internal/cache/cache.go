// Package cache provides a thread-safe generic cache and the rendered-preview
// memoization built on top of it.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

var renderedPreviewCache = NewCache[string, []byte]()

// GetRenderedPreview returns the cached HTML for a post body, keyed by its
// content hash and syntax theme. Memoization only; the backend remains the
// system of record for the body itself.
func GetRenderedPreview(contentHash, syntaxTheme string) ([]byte, bool) {
	return renderedPreviewCache.Get(contentHash + ":" + syntaxTheme)
}

func SetRenderedPreview(contentHash, syntaxTheme string, html []byte) {
	renderedPreviewCache.Set(contentHash+":"+syntaxTheme, html)
}

func ClearRenderedPreviewCache() {
	renderedPreviewCache.Clear()
}
