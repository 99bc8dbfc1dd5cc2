package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// RenderKey generates the cache key for a rendered artifact. The content and
// every rendering parameter participate in the hash, so any change produces a
// distinct key. Format distinguishes artifact kinds (e.g. "png", "txt").
func RenderKey(content, level string, size int, format string) string {
	data, _ := json.Marshal([]any{content, level, size, format})
	sum := sha256.Sum256(data)
	return "render:" + hex.EncodeToString(sum[:])
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
