// Package bip32 implements BIP32 hierarchical deterministic key derivation
// over secp256k1 together with derivation path parsing.
//
// Only private derivation is provided: every ExtendedKey carries a private
// scalar, and public data (compressed keys, xpub strings) is computed from it.
package bip32

import (
	"encoding/binary"
	"errors"
	"fmt"

	dcrsecp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/klingon-exchange/klingon-hd/internal/base58"
	"github.com/klingon-exchange/klingon-hd/internal/secp256k1"
	"github.com/klingon-exchange/klingon-hd/pkg/helpers"
)

const (
	// KeySize is the length of a private scalar and of a chain code.
	KeySize = 32

	// SerializedKeyLen is the payload length of an xprv/xpub string before
	// the Base58Check checksum.
	SerializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33

	// MaxDepth is the deepest level that can be serialized.
	MaxDepth = 255
)

var masterHMACKey = []byte("Bitcoin seed")

// BIP32 serialization versions for Bitcoin.
var (
	MainNetPrivateVersion = [4]byte{0x04, 0x88, 0xad, 0xe4} // xprv
	MainNetPublicVersion  = [4]byte{0x04, 0x88, 0xb2, 0x1e} // xpub
	TestNetPrivateVersion = [4]byte{0x04, 0x35, 0x83, 0x94} // tprv
	TestNetPublicVersion  = [4]byte{0x04, 0x35, 0x87, 0xcf} // tpub
)

var (
	// ErrInvalidChildKey is returned when IL >= n, IL == 0 or the child
	// scalar is zero. Derivation does not move on to the next index.
	ErrInvalidChildKey = errors.New("invalid child key")

	// ErrUnusableSeed is returned when the master IL is not a valid scalar.
	ErrUnusableSeed = errors.New("unusable seed")

	ErrDeriveBeyondMaxDepth  = errors.New("cannot derive a key with more than 255 indices in its path")
	ErrInvalidExtendedKey    = errors.New("invalid extended key")
	ErrNotPrivateExtendedKey = errors.New("extended key is not private")
)

// ExtendedKey is a private key with its chain code and the metadata needed
// for BIP32 serialization.
type ExtendedKey struct {
	key         [KeySize]byte
	chainCode   [KeySize]byte
	depth       uint8
	parentFP    [4]byte
	childNumber uint32
}

// NewMaster derives the master key from a seed:
// I = HMAC-SHA512("Bitcoin seed", seed), key = I[:32], chain code = I[32:].
func NewMaster(seed []byte) (*ExtendedKey, error) {
	i := helpers.HMACSHA512(masterHMACKey, seed)
	defer helpers.SecureClear(i)

	if !validScalar(i[:32]) {
		return nil, ErrUnusableSeed
	}

	ek := &ExtendedKey{}
	copy(ek.key[:], i[:32])
	copy(ek.chainCode[:], i[32:])
	return ek, nil
}

// Child derives the child at idx.
func (k *ExtendedKey) Child(idx KeyIndex) (*ExtendedKey, error) {
	if k.depth == MaxDepth {
		return nil, ErrDeriveBeyondMaxDepth
	}

	parentPub, err := k.compressedPublicKey()
	if err != nil {
		return nil, err
	}

	// hardened:  0x00 || key || BE32(i + 2^31)
	// ordinary:  compressed pubkey || BE32(i)
	data := make([]byte, 0, 1+KeySize+4)
	if idx.IsHardened() {
		data = append(data, 0x00)
		data = append(data, k.key[:]...)
	} else {
		data = append(data, parentPub...)
	}
	data = binary.BigEndian.AppendUint32(data, idx.Raw())
	defer helpers.SecureClear(data)

	i := helpers.HMACSHA512(k.chainCode[:], data)
	defer helpers.SecureClear(i)

	key, err := childScalar(&k.key, i[:32])
	if err != nil {
		return nil, err
	}

	child := &ExtendedKey{
		key:         key,
		depth:       k.depth + 1,
		childNumber: idx.Raw(),
	}
	copy(child.chainCode[:], i[32:])
	copy(child.parentFP[:], helpers.Hash160(parentPub)[:4])
	return child, nil
}

// validScalar reports whether b is a 32-byte big-endian integer in [1, n).
func validScalar(b []byte) bool {
	var s dcrsecp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	defer s.Zero()
	return len(b) == KeySize && !overflow && !s.IsZero()
}

// childScalar computes (IL + parent) mod n. IL outside [1, n) or a zero sum
// yields ErrInvalidChildKey.
func childScalar(parent *[KeySize]byte, il []byte) ([KeySize]byte, error) {
	if !validScalar(il) {
		return [KeySize]byte{}, ErrInvalidChildKey
	}

	var factor, p dcrsecp256k1.ModNScalar
	factor.SetByteSlice(il)
	p.SetBytes(parent)
	factor.Add(&p)
	defer factor.Zero()
	defer p.Zero()

	if factor.IsZero() {
		return [KeySize]byte{}, ErrInvalidChildKey
	}
	return factor.Bytes(), nil
}

// Derive walks path from k, one index at a time.
func (k *ExtendedKey) Derive(path DerivationPath) (*ExtendedKey, error) {
	current := k
	for _, idx := range path.indices {
		next, err := current.Child(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", idx, err)
		}
		current = next
	}
	return current, nil
}

// DeriveExtendedKey derives the extended key at path from a seed.
func DeriveExtendedKey(seed []byte, path DerivationPath) (*ExtendedKey, error) {
	master, err := NewMaster(seed)
	if err != nil {
		return nil, err
	}
	return master.Derive(path)
}

// DerivePrivateKey derives the 32-byte private key at path from a seed.
func DerivePrivateKey(seed []byte, path DerivationPath) ([]byte, error) {
	ek, err := DeriveExtendedKey(seed, path)
	if err != nil {
		return nil, err
	}
	return ek.Key(), nil
}

// Key returns a copy of the 32-byte private scalar.
func (k *ExtendedKey) Key() []byte {
	return append([]byte(nil), k.key[:]...)
}

// ChainCode returns a copy of the chain code.
func (k *ExtendedKey) ChainCode() []byte {
	return append([]byte(nil), k.chainCode[:]...)
}

// Depth returns the number of derivation steps from the master key.
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// ParentFingerprint returns the first four bytes of HASH160(parent pubkey),
// or zero for the master key.
func (k *ExtendedKey) ParentFingerprint() uint32 {
	return binary.BigEndian.Uint32(k.parentFP[:])
}

// ChildIndex returns the index k was derived at.
func (k *ExtendedKey) ChildIndex() KeyIndex {
	return FromRaw(k.childNumber)
}

// PrivateKey returns the key as a validated secp256k1 private key.
func (k *ExtendedKey) PrivateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.PrivateKeyFromBytes(k.key[:])
}

// PublicKey returns the public key for k.
func (k *ExtendedKey) PublicKey() (*secp256k1.PublicKey, error) {
	priv, err := k.PrivateKey()
	if err != nil {
		return nil, err
	}
	return priv.PublicKey(), nil
}

// Fingerprint returns the first four bytes of HASH160 of k's public key.
func (k *ExtendedKey) Fingerprint() (uint32, error) {
	pub, err := k.compressedPublicKey()
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(helpers.Hash160(pub)[:4]), nil
}

func (k *ExtendedKey) compressedPublicKey() ([]byte, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to compute public key: %w", err)
	}
	return pub.SerializeCompressed(), nil
}

// Serialize returns the Base58Check xprv encoding under version.
func (k *ExtendedKey) Serialize(version [4]byte) string {
	keyData := make([]byte, 0, 33)
	keyData = append(keyData, 0x00)
	keyData = append(keyData, k.key[:]...)
	return k.serialize(version, keyData)
}

// SerializePublic returns the Base58Check xpub encoding under version.
func (k *ExtendedKey) SerializePublic(version [4]byte) (string, error) {
	pub, err := k.compressedPublicKey()
	if err != nil {
		return "", err
	}
	return k.serialize(version, pub), nil
}

func (k *ExtendedKey) serialize(version [4]byte, keyData []byte) string {
	payload := make([]byte, 0, SerializedKeyLen)
	payload = append(payload, version[:]...)
	payload = append(payload, k.depth)
	payload = append(payload, k.parentFP[:]...)
	payload = binary.BigEndian.AppendUint32(payload, k.childNumber)
	payload = append(payload, k.chainCode[:]...)
	payload = append(payload, keyData...)
	return base58.CheckEncode(payload)
}

// ParseExtendedKey decodes an xprv-style string. Public extended keys are
// rejected with ErrNotPrivateExtendedKey.
func ParseExtendedKey(s string) (*ExtendedKey, [4]byte, error) {
	var version [4]byte

	payload, err := base58.CheckDecode(s)
	if err != nil {
		return nil, version, fmt.Errorf("%w: %w", ErrInvalidExtendedKey, err)
	}
	if len(payload) != SerializedKeyLen {
		return nil, version, fmt.Errorf("%w: payload is %d bytes", ErrInvalidExtendedKey, len(payload))
	}

	copy(version[:], payload[:4])
	keyData := payload[45:78]
	if keyData[0] != 0x00 {
		return nil, version, ErrNotPrivateExtendedKey
	}
	if !secp256k1.DefaultContext().ValidPrivateKey(keyData[1:]) {
		return nil, version, fmt.Errorf("%w: private key out of range", ErrInvalidExtendedKey)
	}

	ek := &ExtendedKey{
		depth:       payload[4],
		childNumber: binary.BigEndian.Uint32(payload[9:13]),
	}
	copy(ek.parentFP[:], payload[5:9])
	copy(ek.chainCode[:], payload[13:45])
	copy(ek.key[:], keyData[1:])
	return ek, version, nil
}

// Zero clears the private key and chain code.
func (k *ExtendedKey) Zero() {
	helpers.SecureClear(k.key[:])
	helpers.SecureClear(k.chainCode[:])
}
