package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/sha3"
)

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// DoubleSHA256 returns SHA-256(SHA-256(data)).
func DoubleSHA256(data []byte) []byte {
	return chainhash.DoubleHashB(data)
}

// Hash160 returns RIPEMD-160(SHA-256(data)), used for BIP32 key fingerprints.
func Hash160(data []byte) []byte {
	return btcutil.Hash160(data)
}

// HMACSHA512 computes HMAC-SHA512 of data under key.
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// Keccak256 computes the original Keccak-256 hash (pre-FIPS padding), as used by Ethereum.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}
