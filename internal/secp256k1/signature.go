package secp256k1

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Signature is a recoverable ECDSA signature. V is the recovery id (0 or 1).
type Signature struct {
	R [32]byte
	S [32]byte
	V byte
}

// NewSignature parses the 65-byte r || s || v form.
func NewSignature(combined []byte) (*Signature, error) {
	if len(combined) != SignatureSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(combined), SignatureSize)
	}
	if combined[64] > 3 {
		return nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, combined[64])
	}

	var sig Signature
	copy(sig.R[:], combined[:32])
	copy(sig.S[:], combined[32:64])
	sig.V = combined[64]
	return &sig, nil
}

// Combined returns r || s || v.
func (s *Signature) Combined() []byte {
	out := make([]byte, 0, SignatureSize)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// RecoverPublicKey recovers the signer's public key from a 32-byte hash.
func (s *Signature) RecoverPublicKey(hash []byte) (*PublicKey, error) {
	if len(hash) != HashSize {
		return nil, ErrInvalidHashLength
	}
	if s.V > 3 {
		return nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, s.V)
	}

	compact := make([]byte, 0, SignatureSize)
	compact = append(compact, 27+s.V)
	compact = append(compact, s.R[:]...)
	compact = append(compact, s.S[:]...)

	key, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return &PublicKey{key: key}, nil
}
