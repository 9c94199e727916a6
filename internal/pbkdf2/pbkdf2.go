// Package pbkdf2 implements the PKCS #5 v2.0 password-based key derivation
// function over any HMAC-capable hash.
package pbkdf2

import (
	"hash"
	"math"

	"golang.org/x/crypto/pbkdf2"
)

// Key derives a key of keyLen bytes from password and salt using iter rounds
// of HMAC keyed by password, with h as the underlying hash.
//
// Empty password or salt, iter < 1 and keyLen above MaxInt32 hash blocks are
// programming errors and panic.
func Key(h func() hash.Hash, password, salt []byte, iter, keyLen int) []byte {
	if len(password) == 0 {
		panic("pbkdf2: password must not be empty")
	}
	if len(salt) == 0 {
		panic("pbkdf2: salt must not be empty")
	}
	if iter < 1 {
		panic("pbkdf2: at least one iteration is required")
	}
	if keyLen < 0 || int64(keyLen) > int64(math.MaxInt32)*int64(h().BlockSize()) {
		panic("pbkdf2: derived key length too long")
	}

	return pbkdf2.Key(password, salt, iter, keyLen, h)
}
