package testsupport

import (
	"net/http"
	"testing"
	"time"

	"github.com/goliatone/go-response-cache/cache"
)

// EntryFixture builds a persisted cache entry the way the adapter would
// write it: body and headers encoded with the given codec, StoredAt set to
// storedAt in epoch milliseconds.
func EntryFixture(t *testing.T, codec cache.Codec, key string, body any, headers http.Header, code int, storedAt time.Time, maxAge time.Duration) cache.Entry {
	t.Helper()

	encodedBody, err := codec.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode fixture body: %v", err)
	}

	var encodedHeaders []byte
	if len(headers) > 0 {
		encodedHeaders, err = codec.Marshal(headers)
		if err != nil {
			t.Fatalf("failed to encode fixture headers: %v", err)
		}
	}

	return cache.Entry{
		Key:       key,
		Body:      string(encodedBody),
		Headers:   string(encodedHeaders),
		Code:      code,
		StoredAt:  storedAt.UnixMilli(),
		MaxAgeSec: int64(maxAge / time.Second),
	}
}

// CorruptEntryFixture builds an entry whose body cannot be decoded by any of
// the provided codecs. Used to verify that cache corruption degrades to a
// miss.
func CorruptEntryFixture(key string, storedAt time.Time, maxAge time.Duration) cache.Entry {
	return cache.Entry{
		Key:       key,
		Body:      "\xff{not-decodable",
		Code:      200,
		StoredAt:  storedAt.UnixMilli(),
		MaxAgeSec: int64(maxAge / time.Second),
	}
}
