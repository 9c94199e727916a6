// Package bip39 implements the BIP39 entropy <-> mnemonic codec and the
// configurable mnemonic-to-seed derivation pipelines built on top of it.
//
// See https://github.com/bitcoin/bips/blob/master/bip-0039.mediawiki
package bip39

import "errors"

var (
	// ErrUnsupportedMnemonicLength is returned for entropy sizes other than
	// 16, 24 or 32 bytes and word counts other than 12, 18 or 24.
	ErrUnsupportedMnemonicLength = errors.New("unsupported mnemonic length")

	// ErrInvalidMnemonicVocabulary is returned when the words do not belong to
	// any configured glossary or the embedded checksum does not match.
	ErrInvalidMnemonicVocabulary = errors.New("invalid mnemonic words")
)

const bitsPerWord = 11
