package cache

import (
	"strconv"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// FeedKey is the response-cache key for one rendered region feed. The
// handler and the background refresh worker must agree on it.
func FeedKey(regionID string, days int, includeMarket bool) string {
	return "feed:" + regionID + ":" + strconv.Itoa(days) + ":" + strconv.FormatBool(includeMarket)
}
