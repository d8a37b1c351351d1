package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 of data as 64 hex characters. Cache keys use the
// full digest; ephemeris lookups are cheap to hash and collisions would
// silently serve the wrong sky.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a "prefix:digest" key from the lookup parameters. The
// parts are JSON-encoded first so float formatting is stable across
// platforms.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
