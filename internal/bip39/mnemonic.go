package bip39

import (
	"fmt"
	"io"
	"strings"

	"github.com/klingon-exchange/klingon-hd/pkg/helpers"
)

// Mnemonic is an immutable, validated BIP39 word sequence together with the
// glossary it was drawn from.
type Mnemonic struct {
	words    []string
	length   Length
	glossary *Glossary
	entropy  []byte
}

// NewMnemonic encodes entropy as words of the given glossary.
func NewMnemonic(entropy []byte, glossary *Glossary) (*Mnemonic, error) {
	length, ok := LengthFromEntropy(len(entropy))
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes of entropy", ErrUnsupportedMnemonicLength, len(entropy))
	}
	if glossary == nil {
		glossary = English
	}

	// entropy || checksum byte; only the leading ENT/32 bits of the
	// checksum byte are read.
	hash := helpers.SHA256(entropy)
	data := make([]byte, len(entropy)+1)
	copy(data, entropy)
	data[len(entropy)] = hash[0]

	words := make([]string, length.Words())
	for i := range words {
		words[i] = glossary.Word(readBits(data, i*bitsPerWord, bitsPerWord))
	}

	return &Mnemonic{
		words:    words,
		length:   length,
		glossary: glossary,
		entropy:  append([]byte(nil), entropy...),
	}, nil
}

// GenerateMnemonic creates a mnemonic of the given length from fresh entropy
// read from rand (crypto/rand when nil).
func GenerateMnemonic(length Length, glossary *Glossary, rand io.Reader) (*Mnemonic, error) {
	if _, ok := LengthFromWords(int(length)); !ok {
		return nil, fmt.Errorf("%w: %d words", ErrUnsupportedMnemonicLength, length)
	}

	entropy, err := helpers.ReadRandom(rand, length.EntropyBytes())
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer helpers.SecureClear(entropy)

	return NewMnemonic(entropy, glossary)
}

// ParseMnemonicString splits s on whitespace and parses the words.
func ParseMnemonicString(s string, glossaries ...*Glossary) (*Mnemonic, error) {
	return ParseMnemonic(strings.Fields(s), glossaries...)
}

// ParseMnemonic validates words against the glossaries (the bundled ones when
// none are given) and returns the decoded mnemonic.
//
// Glossaries are tried in order. The first glossary that contains every word
// and whose decoding carries a valid checksum wins.
func ParseMnemonic(words []string, glossaries ...*Glossary) (*Mnemonic, error) {
	length, ok := LengthFromWords(len(words))
	if !ok {
		return nil, fmt.Errorf("%w: %d words", ErrUnsupportedMnemonicLength, len(words))
	}
	if len(glossaries) == 0 {
		glossaries = Glossaries()
	}

	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = strings.ToLower(w)
	}

	matched := false
	for _, g := range glossaries {
		if g == nil || !g.ContainsAll(normalized) {
			continue
		}
		matched = true

		entropy, ok := decodeEntropy(normalized, length, g)
		if !ok {
			continue
		}
		return &Mnemonic{
			words:    normalized,
			length:   length,
			glossary: g,
			entropy:  entropy,
		}, nil
	}

	if matched {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonicVocabulary)
	}
	return nil, fmt.Errorf("%w: words not found in any glossary", ErrInvalidMnemonicVocabulary)
}

// decodeEntropy reassembles the 11-bit word indices and splits the bit string
// at floor(bits/33)*32 into entropy and checksum.
func decodeEntropy(words []string, length Length, g *Glossary) ([]byte, bool) {
	totalBits := len(words) * bitsPerWord
	data := make([]byte, (totalBits+7)/8)
	for i, w := range words {
		idx, _ := g.Index(w)
		writeBits(data, i*bitsPerWord, bitsPerWord, idx)
	}

	entropyBits := totalBits / 33 * 32
	entropy := data[:entropyBits/8]
	checksumBits := totalBits - entropyBits

	hash := helpers.SHA256(entropy)
	want := int(hash[0] >> (8 - checksumBits))
	got := readBits(data, entropyBits, checksumBits)
	if got != want {
		return nil, false
	}

	return append([]byte(nil), entropy...), true
}

// readBits returns n bits of data starting at bit offset, most significant first.
func readBits(data []byte, offset, n int) int {
	v := 0
	for i := offset; i < offset+n; i++ {
		bit := (data[i/8] >> (7 - uint(i%8))) & 1
		v = v<<1 | int(bit)
	}
	return v
}

// writeBits stores the low n bits of v into data starting at bit offset.
func writeBits(data []byte, offset, n, v int) {
	for i := 0; i < n; i++ {
		if v>>(n-1-i)&1 == 1 {
			pos := offset + i
			data[pos/8] |= 1 << (7 - uint(pos%8))
		}
	}
}

// Words returns a copy of the mnemonic words.
func (m *Mnemonic) Words() []string {
	return append([]string(nil), m.words...)
}

// Length returns the mnemonic length.
func (m *Mnemonic) Length() Length {
	return m.length
}

// Glossary returns the glossary the words were drawn from.
func (m *Mnemonic) Glossary() *Glossary {
	return m.glossary
}

// Entropy returns a copy of the entropy encoded by the mnemonic.
func (m *Mnemonic) Entropy() []byte {
	return append([]byte(nil), m.entropy...)
}

// Seed runs the seed derivation pipeline over the mnemonic.
func (m *Mnemonic) Seed(alg *SeedAlgorithm) []byte {
	return alg.Derive(m.words)
}

// String returns the words joined by single spaces.
func (m *Mnemonic) String() string {
	return strings.Join(m.words, " ")
}

// MarshalText implements encoding.TextMarshaler.
func (m *Mnemonic) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the bundled glossaries.
func (m *Mnemonic) UnmarshalText(text []byte) error {
	parsed, err := ParseMnemonicString(string(text))
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
