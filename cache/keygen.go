package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// GenerateKey deterministically combines an HTTP method, a URL and an
// optional body hash into one cache key. Identical inputs always yield the
// identical key; distinct (method, url, body) combinations yield distinct
// keys with high probability. The URL is hashed rather than embedded so keys
// stay short and free of characters a store may reject.
func GenerateKey(method, url, bodyHash string) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = "GET"
	}

	key := m + KeySeparator + fmt.Sprintf("%016x", xxhash.Sum64String(url))
	if bodyHash != "" {
		key += KeySeparator + bodyHash
	}
	return key
}

// HashBody returns a stable hash of a request body suitable for the bodyHash
// argument of GenerateKey.
func HashBody(body []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(body))
}
