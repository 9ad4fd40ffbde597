// Package cache provides exact-match translation caching implementations.
//
// Keys are fingerprint:language pairs built with translio.CacheKey; values
// are translated texts. The cache is a memoization layer in front of the
// translation memory index and the provider, never a source of truth; the
// record store is.
package cache

// Cache is the interface for exact-match translation caching.
type Cache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
