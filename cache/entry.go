package cache

import "time"

// Entry is the persisted record for one cached response. Body and Headers
// hold codec-encoded bytes; StoredAt is the write timestamp in epoch
// milliseconds. A write fully replaces the prior entry for the same key.
type Entry struct {
	Key       string
	Body      string
	Headers   string
	Code      int
	StoredAt  int64
	MaxAgeSec int64
}

// Age returns how long ago the entry was stored relative to now.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(e.StoredAt))
}

// Expired reports whether the entry has outlived its own max age. This is
// the rule used by expiry sweeps; read-time freshness is governed by the
// per-call Config instead.
func (e Entry) Expired(now time.Time) bool {
	return e.Age(now) > time.Duration(e.MaxAgeSec)*time.Second
}
