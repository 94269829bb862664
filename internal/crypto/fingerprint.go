package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"xprlink/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a request public key:
// SHA-256 truncated to 10 bytes (20 hex chars).
func Fingerprint(pub domain.Ed25519Public) string {
	sum := sha256.Sum256(pub[:])
	return hex.EncodeToString(sum[:10])
}
