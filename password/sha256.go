package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256Hex verifies passwords against bare hex-encoded SHA-256 digests.
//
// This is the legacy scheme existing deployments store; it carries no salt and
// no work factor, so it exists strictly for interop. New deployments should
// use [Argon2].
type SHA256Hex struct{}

var _ Verifier = SHA256Hex{}

// Hash returns the hex-encoded SHA-256 digest of password.
func (SHA256Hex) Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether plaintext digests to storedHash.
func (s SHA256Hex) Verify(plaintext, storedHash string) bool {
	computed := s.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
