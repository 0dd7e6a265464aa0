package internal

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenRawSize is the number of random bytes behind every issued credential.
// 16 bytes (128 bits) encodes to the 32-char hex form the Redis key namespace
// is built around.
const tokenRawSize = 16

// NewToken returns a 32-character lowercase hex token backed by 128 bits of
// CSPRNG output. Account tokens, SSO cookies, and user credential tokens all
// share this format.
func NewToken() (string, error) {
	var raw [tokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}

// TokenLength is the encoded length of tokens produced by NewToken.
const TokenLength = tokenRawSize * 2
