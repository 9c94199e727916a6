package bip32

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// HardenedKeyStart is the first raw index of the hardened range (2^31).
const HardenedKeyStart uint32 = 0x80000000

// Hardened markers. HardenedMarker is written on output; both are accepted
// when parsing.
const (
	HardenedMarker    = "'"
	HardenedMarkerAlt = "`"
	MasterMarker      = "m"
)

var (
	ErrMalformedDerivationPath = errors.New("malformed derivation path")
	ErrIndexOutOfRange         = errors.New("key index out of range")
)

// KeyIndex is one path segment: an ordinary or hardened index in [0, 2^31).
type KeyIndex struct {
	value    uint32
	hardened bool
}

// Ordinary returns the ordinary index i. It panics if i >= 2^31.
func Ordinary(i uint32) KeyIndex {
	if i >= HardenedKeyStart {
		panic(fmt.Sprintf("bip32: ordinary index %d out of range", i))
	}
	return KeyIndex{value: i}
}

// Hardened returns the hardened index i. It panics if i >= 2^31.
func Hardened(i uint32) KeyIndex {
	if i >= HardenedKeyStart {
		panic(fmt.Sprintf("bip32: hardened index %d out of range", i))
	}
	return KeyIndex{value: i, hardened: true}
}

// FromRaw interprets a wire value: below 2^31 is ordinary, the rest hardened.
func FromRaw(raw uint32) KeyIndex {
	if raw < HardenedKeyStart {
		return KeyIndex{value: raw}
	}
	return KeyIndex{value: raw - HardenedKeyStart, hardened: true}
}

// ParseKeyIndex parses a decimal index with an optional hardened marker.
func ParseKeyIndex(s string) (KeyIndex, error) {
	hardened := false
	if strings.HasSuffix(s, HardenedMarker) || strings.HasSuffix(s, HardenedMarkerAlt) {
		hardened = true
		s = s[:len(s)-1]
	}

	if s == "" {
		return KeyIndex{}, fmt.Errorf("%w: empty index", ErrMalformedDerivationPath)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return KeyIndex{}, fmt.Errorf("%w: invalid index %q", ErrMalformedDerivationPath, s)
		}
	}

	v, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return KeyIndex{}, fmt.Errorf("%w: index %s: %w", ErrMalformedDerivationPath, s, ErrIndexOutOfRange)
	}

	return KeyIndex{value: uint32(v), hardened: hardened}, nil
}

// Raw returns the wire value: i for ordinary, i+2^31 for hardened.
func (k KeyIndex) Raw() uint32 {
	if k.hardened {
		return k.value | HardenedKeyStart
	}
	return k.value
}

// Value returns the index without the hardened offset.
func (k KeyIndex) Value() uint32 {
	return k.value
}

// IsHardened reports whether k is a hardened index.
func (k KeyIndex) IsHardened() bool {
	return k.hardened
}

func (k KeyIndex) String() string {
	s := strconv.FormatUint(uint64(k.value), 10)
	if k.hardened {
		s += HardenedMarker
	}
	return s
}

// DerivationPath is an immutable sequence of indices below the master key.
// The zero value is the root path "m".
type DerivationPath struct {
	indices []KeyIndex
}

// NewDerivationPath returns a path over a copy of indices.
func NewDerivationPath(indices ...KeyIndex) DerivationPath {
	return DerivationPath{indices: append([]KeyIndex(nil), indices...)}
}

// PathFromRaw builds a path from wire values.
func PathFromRaw(raw ...uint32) DerivationPath {
	indices := make([]KeyIndex, len(raw))
	for i, r := range raw {
		indices[i] = FromRaw(r)
	}
	return DerivationPath{indices: indices}
}

// ParseDerivationPath parses `m(/index['|`])*`.
func ParseDerivationPath(s string) (DerivationPath, error) {
	elems := strings.Split(s, "/")
	if elems[0] != MasterMarker {
		return DerivationPath{}, fmt.Errorf("%w: %q must start with %q", ErrMalformedDerivationPath, s, MasterMarker)
	}

	indices := make([]KeyIndex, 0, len(elems)-1)
	for _, elem := range elems[1:] {
		idx, err := ParseKeyIndex(elem)
		if err != nil {
			return DerivationPath{}, err
		}
		indices = append(indices, idx)
	}

	return DerivationPath{indices: indices}, nil
}

// MustParseDerivationPath is ParseDerivationPath for compile-time literals.
func MustParseDerivationPath(s string) DerivationPath {
	p, err := ParseDerivationPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Indices returns a copy of the path's indices.
func (p DerivationPath) Indices() []KeyIndex {
	return append([]KeyIndex(nil), p.indices...)
}

// Raw returns the wire values of the path's indices.
func (p DerivationPath) Raw() []uint32 {
	raw := make([]uint32, len(p.indices))
	for i, idx := range p.indices {
		raw[i] = idx.Raw()
	}
	return raw
}

// Depth returns the number of indices below the master key.
func (p DerivationPath) Depth() int {
	return len(p.indices)
}

// IsRoot reports whether p has no indices.
func (p DerivationPath) IsRoot() bool {
	return len(p.indices) == 0
}

// Child returns a new path extended by idx.
func (p DerivationPath) Child(idx KeyIndex) DerivationPath {
	indices := make([]KeyIndex, len(p.indices), len(p.indices)+1)
	copy(indices, p.indices)
	return DerivationPath{indices: append(indices, idx)}
}

// IsHardenedOnly reports whether every index is hardened.
func (p DerivationPath) IsHardenedOnly() bool {
	for _, idx := range p.indices {
		if !idx.hardened {
			return false
		}
	}
	return true
}

// Equal reports whether both paths hold the same indices.
func (p DerivationPath) Equal(other DerivationPath) bool {
	if len(p.indices) != len(other.indices) {
		return false
	}
	for i := range p.indices {
		if p.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString(MasterMarker)
	for _, idx := range p.indices {
		b.WriteByte('/')
		b.WriteString(idx.String())
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p DerivationPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *DerivationPath) UnmarshalText(text []byte) error {
	parsed, err := ParseDerivationPath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
