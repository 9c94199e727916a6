// Package slip10 implements SLIP-0010 key derivation for ed25519. Only
// hardened derivation is defined for this curve.
package slip10

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klingon-exchange/klingon-hd/internal/bip32"
	"github.com/klingon-exchange/klingon-hd/pkg/helpers"
)

// KeySize is the length of a private key and of a chain code.
const KeySize = 32

var masterHMACKey = []byte("ed25519 seed")

// ErrInvalidKeyIndex is returned for ordinary (non-hardened) indices.
var ErrInvalidKeyIndex = errors.New("ed25519 derivation requires hardened indices")

// ExtendedKey is an ed25519 private key with its chain code.
type ExtendedKey struct {
	key         [KeySize]byte
	chainCode   [KeySize]byte
	depth       int
	childNumber uint32
}

// NewMaster derives the master key: I = HMAC-SHA512("ed25519 seed", seed).
// Every 32-byte string is a usable ed25519 key, so this cannot fail.
func NewMaster(seed []byte) *ExtendedKey {
	i := helpers.HMACSHA512(masterHMACKey, seed)
	defer helpers.SecureClear(i)

	ek := &ExtendedKey{}
	copy(ek.key[:], i[:32])
	copy(ek.chainCode[:], i[32:])
	return ek
}

// Child derives the hardened child at idx. The child key is IL verbatim.
func (k *ExtendedKey) Child(idx bip32.KeyIndex) (*ExtendedKey, error) {
	if !idx.IsHardened() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyIndex, idx)
	}

	data := make([]byte, 0, 1+KeySize+4)
	data = append(data, 0x00)
	data = append(data, k.key[:]...)
	data = binary.BigEndian.AppendUint32(data, idx.Raw())
	defer helpers.SecureClear(data)

	i := helpers.HMACSHA512(k.chainCode[:], data)
	defer helpers.SecureClear(i)

	child := &ExtendedKey{
		depth:       k.depth + 1,
		childNumber: idx.Raw(),
	}
	copy(child.key[:], i[:32])
	copy(child.chainCode[:], i[32:])
	return child, nil
}

// Derive walks path from k.
func (k *ExtendedKey) Derive(path bip32.DerivationPath) (*ExtendedKey, error) {
	current := k
	for _, idx := range path.Indices() {
		next, err := current.Child(idx)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// DeriveExtendedKey derives the extended key at path from a seed.
func DeriveExtendedKey(seed []byte, path bip32.DerivationPath) (*ExtendedKey, error) {
	return NewMaster(seed).Derive(path)
}

// DerivePrivateKey derives the 32-byte private key at path from a seed.
func DerivePrivateKey(seed []byte, path bip32.DerivationPath) ([]byte, error) {
	ek, err := DeriveExtendedKey(seed, path)
	if err != nil {
		return nil, err
	}
	return ek.Key(), nil
}

// Key returns a copy of the private key.
func (k *ExtendedKey) Key() []byte {
	return append([]byte(nil), k.key[:]...)
}

// ChainCode returns a copy of the chain code.
func (k *ExtendedKey) ChainCode() []byte {
	return append([]byte(nil), k.chainCode[:]...)
}

// Depth returns the number of derivation steps from the master key.
func (k *ExtendedKey) Depth() int {
	return k.depth
}

// ChildIndex returns the index k was derived at.
func (k *ExtendedKey) ChildIndex() bip32.KeyIndex {
	return bip32.FromRaw(k.childNumber)
}

// PrivateKey returns the ed25519 key for k.
func (k *ExtendedKey) PrivateKey() *PrivateKey {
	return NewPrivateKey(k.key)
}

// Zero clears the private key and chain code.
func (k *ExtendedKey) Zero() {
	helpers.SecureClear(k.key[:])
	helpers.SecureClear(k.chainCode[:])
}
