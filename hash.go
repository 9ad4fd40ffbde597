package translio

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the SHA-256 hash of the exact character sequence of
// text. The digest is stable across processes and platforms; any edit to the
// source, including whitespace, produces a different fingerprint and re-flags
// the field for translation. The empty string hashes to the standard SHA-256
// empty digest.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// StringID derives the stable id of a scanned string from its text and
// originating domain. Repeated scans of the same string yield the same id, so
// discovery is idempotent. The id is the first 32 hex chars of
// SHA-256(text + "|" + domain).
func StringID(text, domain string) string {
	sum := sha256.Sum256([]byte(text + "|" + domain))
	return hex.EncodeToString(sum[:])[:32]
}

// CacheKey builds the exact-match memory cache key from a content fingerprint
// and target language.
func CacheKey(hash, languageCode string) string {
	return hash + ":" + languageCode
}
