package chain

import "github.com/klingon-exchange/klingon-hd/internal/bip39"

func init() {
	// Dogecoin Mainnet
	Register("DOGE", Mainnet, &Params{
		Symbol: "DOGE",
		Name:   "Dogecoin",
		Type:   ChainTypeBitcoin,

		// BIP44 coin type 3, legacy only
		Curve:          CurveSecp256k1,
		CoinType:       3,
		DefaultPurpose: 44,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		// BIP32 HD key prefixes (dgpv/dgub)
		HDPrivateKeyID: [4]byte{0x02, 0xfa, 0xc3, 0x98}, // dgpv
		HDPublicKeyID:  [4]byte{0x02, 0xfa, 0xca, 0xfd}, // dgub
	})

	// Dogecoin Testnet
	Register("DOGE", Testnet, &Params{
		Symbol: "DOGE",
		Name:   "Dogecoin Testnet",
		Type:   ChainTypeBitcoin,

		Curve:          CurveSecp256k1,
		CoinType:       1,
		DefaultPurpose: 44,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		// BIP32 HD key prefixes (tprv/tpub - uses Bitcoin testnet)
		HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
	})
}
