package chain

import "github.com/klingon-exchange/klingon-hd/internal/bip39"

func init() {
	// Litecoin Mainnet
	Register("LTC", Mainnet, &Params{
		Symbol: "LTC",
		Name:   "Litecoin",
		Type:   ChainTypeBitcoin,

		// BIP44 coin type 2, native SegWit (ltc1q...)
		Curve:          CurveSecp256k1,
		CoinType:       2,
		DefaultPurpose: 84,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		// BIP32 HD key prefixes (Ltpv/Ltub)
		HDPrivateKeyID: [4]byte{0x01, 0x9d, 0x9c, 0xfe}, // Ltpv
		HDPublicKeyID:  [4]byte{0x01, 0x9d, 0xa4, 0x62}, // Ltub
	})

	// Litecoin Testnet
	Register("LTC", Testnet, &Params{
		Symbol: "LTC",
		Name:   "Litecoin Testnet",
		Type:   ChainTypeBitcoin,

		Curve:          CurveSecp256k1,
		CoinType:       1, // Testnet uses coin type 1
		DefaultPurpose: 84,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		// BIP32 HD key prefixes (ttpv/ttub - Litecoin testnet)
		HDPrivateKeyID: [4]byte{0x04, 0x36, 0xef, 0x7d}, // ttpv
		HDPublicKeyID:  [4]byte{0x04, 0x36, 0xf6, 0xe1}, // ttub
	})
}
