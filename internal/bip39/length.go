package bip39

// Length is a supported mnemonic word count.
type Length int

// Supported mnemonic lengths.
const (
	W12 Length = 12
	W18 Length = 18
	W24 Length = 24
)

// LengthFromWords returns the Length for a word count.
func LengthFromWords(n int) (Length, bool) {
	switch Length(n) {
	case W12, W18, W24:
		return Length(n), true
	default:
		return 0, false
	}
}

// LengthFromEntropy returns the Length for an entropy size in bytes.
func LengthFromEntropy(n int) (Length, bool) {
	switch n {
	case 16:
		return W12, true
	case 24:
		return W18, true
	case 32:
		return W24, true
	default:
		return 0, false
	}
}

// Words returns the number of words.
func (l Length) Words() int {
	return int(l)
}

// EntropyBits returns the entropy size in bits.
func (l Length) EntropyBits() int {
	return int(l) * bitsPerWord * 32 / 33
}

// EntropyBytes returns the entropy size in bytes.
func (l Length) EntropyBytes() int {
	return l.EntropyBits() / 8
}

// ChecksumBits returns the number of checksum bits carried by the mnemonic.
func (l Length) ChecksumBits() int {
	return l.EntropyBits() / 32
}
