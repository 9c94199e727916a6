// Package base58 implements the Bitcoin-alphabet base-58 encoding and its
// checksummed Base58Check variant.
package base58

import (
	"errors"

	btcbase58 "github.com/btcsuite/btcd/btcutil/base58"
)

// Alphabet is the Bitcoin base-58 alphabet (no 0, O, I or l).
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ErrInvalidCharacter indicates the input contains a character outside the alphabet.
var ErrInvalidCharacter = errors.New("invalid base58 character")

var valid = func() [256]bool {
	var table [256]bool
	for i := 0; i < len(Alphabet); i++ {
		table[Alphabet[i]] = true
	}
	return table
}()

// Encode encodes b as base-58. Leading zero bytes become leading '1's and an
// empty input encodes to the empty string.
func Encode(b []byte) string {
	return btcbase58.Encode(b)
}

// Decode decodes a base-58 string. Any character outside the alphabet fails
// with ErrInvalidCharacter; nothing is returned in that case.
func Decode(s string) ([]byte, error) {
	// btcutil reports bad input as an empty result, so reject it up front.
	for i := 0; i < len(s); i++ {
		if !valid[s[i]] {
			return nil, ErrInvalidCharacter
		}
	}
	return btcbase58.Decode(s), nil
}
