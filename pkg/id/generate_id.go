// Package id mints and checks the 32-char lowercase hex identities used for
// participants, accounts and request ids.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Len is the length of every identity string.
const Len = 32

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, Len/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s is a 32-char lowercase hex identity.
func Valid(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
