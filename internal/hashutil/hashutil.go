package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashStrings returns a SHA256 hash of the provided strings with newline separators.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ShortKey builds a compact cache key: prefix plus the first 16 hex chars of
// the hash of the remaining parts. Used for redis keys where the full digest
// is unnecessarily long.
func ShortKey(prefix string, parts ...string) string {
	digest := HashStrings(parts...)
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(digest[:16])
	return b.String()
}
