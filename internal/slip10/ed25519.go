package slip10

import (
	"crypto/ed25519"
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// PrivateKey is a 32-byte ed25519 private key (the RFC 8032 seed).
type PrivateKey struct {
	seed [KeySize]byte
}

// NewPrivateKey wraps a 32-byte ed25519 seed.
func NewPrivateKey(seed [KeySize]byte) *PrivateKey {
	return &PrivateKey{seed: seed}
}

// Bytes returns a copy of the 32-byte key.
func (k *PrivateKey) Bytes() []byte {
	return append([]byte(nil), k.seed[:]...)
}

// scalar returns the clamped signing scalar from SHA-512(seed)[:32].
func (k *PrivateKey) scalar() *edwards25519.Scalar {
	h := sha512.Sum512(k.seed[:])
	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		// SetBytesWithClamping only fails on a wrong input length.
		panic(err)
	}
	return s
}

func (k *PrivateKey) point() *edwards25519.Point {
	return edwards25519.NewIdentityPoint().ScalarBaseMult(k.scalar())
}

// PublicKey returns the 32-byte ed25519 public key.
func (k *PrivateKey) PublicKey() []byte {
	return k.point().Bytes()
}

// X25519PublicKey returns the public key in Montgomery form for X25519.
func (k *PrivateKey) X25519PublicKey() []byte {
	return k.point().BytesMontgomery()
}

// Std returns the key as a crypto/ed25519 private key.
func (k *PrivateKey) Std() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(k.seed[:])
}

// Sign signs msg with ed25519.
func (k *PrivateKey) Sign(msg []byte) []byte {
	return ed25519.Sign(k.Std(), msg)
}

// Verify checks an ed25519 signature against a 32-byte public key.
func Verify(publicKey, msg, sig []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(publicKey, msg, sig)
}
