package secp256k1

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// PrivateKey is a validated secp256k1 scalar.
type PrivateKey struct {
	key *btcec.PrivateKey
}

// Bytes returns the 32-byte big-endian scalar.
func (k *PrivateKey) Bytes() []byte {
	return k.key.Serialize()
}

// Hex returns the scalar as lowercase hex without prefix.
func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(k.Bytes())
}

// PublicKey returns the public key for k.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: k.key.PubKey()}
}

// BTCEC exposes the underlying btcec key.
func (k *PrivateKey) BTCEC() *btcec.PrivateKey {
	return k.key
}

// Sign produces a recoverable signature over a 32-byte hash.
func (k *PrivateKey) Sign(hash []byte) (*Signature, error) {
	if len(hash) != HashSize {
		return nil, ErrInvalidHashLength
	}

	// SignCompact returns v || r || s with v = 27 + recovery id.
	compact := ecdsa.SignCompact(k.key, hash, false)

	var sig Signature
	copy(sig.R[:], compact[1:33])
	copy(sig.S[:], compact[33:65])
	sig.V = compact[0] - 27
	return &sig, nil
}

// Zero clears the private scalar.
func (k *PrivateKey) Zero() {
	k.key.Zero()
}

// PublicKey is a point on secp256k1.
type PublicKey struct {
	key *btcec.PublicKey
}

// SerializeCompressed returns the 33-byte SEC1 compressed encoding.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.key.SerializeCompressed()
}

// SerializeUncompressed returns the 65-byte SEC1 uncompressed encoding.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Hex returns the compressed encoding as hex.
func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.SerializeCompressed())
}

// BTCEC exposes the underlying btcec key.
func (p *PublicKey) BTCEC() *btcec.PublicKey {
	return p.key
}

// IsEqual reports whether both keys are the same point.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	return other != nil && p.key.IsEqual(other.key)
}

// Verify checks sig against a 32-byte hash.
func (p *PublicKey) Verify(hash []byte, sig *Signature) bool {
	if len(hash) != HashSize || sig == nil {
		return false
	}

	var r, s btcec.ModNScalar
	if r.SetBytes(&sig.R) != 0 || s.SetBytes(&sig.S) != 0 {
		return false
	}
	if r.IsZero() || s.IsZero() {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(hash, p.key)
}
