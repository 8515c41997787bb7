package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the SHA-256 digest of s as a lowercase hex string.
// Used as the summary-cache input fingerprint: same input, same key.
func HashContent(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Preview truncates s to at most n runes and appends "...".
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
