// Package secp256k1 is the boundary to the secp256k1 curve primitive: key
// validation, public key serialization and recoverable ECDSA signatures.
// The curve implementation itself comes from btcec.
package secp256k1

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Key and signature sizes.
const (
	PrivateKeySize            = 32
	PublicKeySizeCompressed   = 33
	PublicKeySizeUncompressed = 65
	HashSize                  = 32
	SignatureSize             = 65
)

var (
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")
	ErrInvalidPublicKey  = errors.New("invalid secp256k1 public key")
	ErrInvalidHashLength = errors.New("hash must be 32 bytes")
	ErrInvalidSignature  = errors.New("invalid secp256k1 signature")
)

// Context holds the curve parameters. It is created once per process and is
// read-only afterwards, so it may be shared between goroutines.
type Context struct {
	curve *btcec.KoblitzCurve
	order *big.Int
}

var (
	defaultCtx  *Context
	defaultOnce sync.Once
)

// DefaultContext returns the process-wide context, creating it on first use.
func DefaultContext() *Context {
	defaultOnce.Do(func() {
		curve := btcec.S256()
		defaultCtx = &Context{
			curve: curve,
			order: new(big.Int).Set(curve.N),
		}
	})
	return defaultCtx
}

// Params returns the curve parameters.
func (c *Context) Params() *elliptic.CurveParams {
	return c.curve.Params()
}

// Order returns a copy of the group order n.
func (c *Context) Order() *big.Int {
	return new(big.Int).Set(c.order)
}

// ValidPrivateKey reports whether b is a 32-byte scalar in [1, n).
func (c *Context) ValidPrivateKey(b []byte) bool {
	if len(b) != PrivateKeySize {
		return false
	}
	k := new(big.Int).SetBytes(b)
	return k.Sign() > 0 && k.Cmp(c.order) < 0
}

// PrivateKeyFromBytes validates b and returns the private key it encodes.
func (c *Context) PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if !c.ValidPrivateKey(b) {
		return nil, ErrInvalidPrivateKey
	}
	key, _ := btcec.PrivKeyFromBytes(b)
	return &PrivateKey{key: key}, nil
}

// ParsePublicKey parses a compressed or uncompressed public key.
func (c *Context) ParsePublicKey(b []byte) (*PublicKey, error) {
	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{key: key}, nil
}

// PrivateKeyFromBytes is DefaultContext().PrivateKeyFromBytes.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	return DefaultContext().PrivateKeyFromBytes(b)
}

// ParsePublicKey is DefaultContext().ParsePublicKey.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	return DefaultContext().ParsePublicKey(b)
}
