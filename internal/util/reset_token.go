package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const resetTokenBytes = 32

// NewResetToken draws a cryptographically random reset token. The hex form
// is safe to embed in a URL path.
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashResetToken computes the stored lookup digest of a plaintext reset
// token. A fast hash is enough here: the plaintext is single-use and
// carries 256 bits of entropy, so it is not brute-forceable the way a
// password is.
func HashResetToken(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return sum[:]
}
