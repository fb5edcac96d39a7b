package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/google/uuid"
)

// SessionKey is an opaque, deterministic fingerprint identifying one logical
// session. It is the sole means of deduplicating keep-alive loops: two
// creation requests with the same identifying input yield the same key.
type SessionKey string

// Short returns a truncated form suitable for log output.
func (k SessionKey) Short() string {
	if len(k) > 8 {
		return string(k[:8])
	}
	return string(k)
}

// DeriveKey fingerprints a normalized header set. The serialization is
// sorted by header name, so key equality is independent of insertion order.
// A nil and an empty map derive the same key.
func DeriveKey(headers map[string]string) SessionKey {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(headers[name]))
		h.Write([]byte{0})
	}
	return SessionKey(hex.EncodeToString(h.Sum(nil)))
}

// MergeHeaders overlays extra onto base without mutating either. Extra wins
// on conflicts. Both arguments may be nil.
func MergeHeaders(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// NewID generates a unique identifier for diagnostics (task ids, example
// session ids).
func NewID() string { return uuid.NewString() }
