// Package checksum fingerprints note contents after a write.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Prefix names the digest algorithm in every checksum string.
const Prefix = "sha256:"

// Sum returns "sha256:" followed by the hex digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return Prefix + hex.EncodeToString(h[:])
}
