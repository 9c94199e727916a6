package chain

import "github.com/klingon-exchange/klingon-hd/internal/bip39"

func init() {
	// Bitcoin Mainnet
	Register("BTC", Mainnet, &Params{
		Symbol: "BTC",
		Name:   "Bitcoin",
		Type:   ChainTypeBitcoin,

		// BIP44 coin type 0, BIP84 for native SegWit
		Curve:          CurveSecp256k1,
		CoinType:       0,
		DefaultPurpose: 84,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		// BIP32 HD key prefixes (xprv/xpub)
		HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub
	})

	// Bitcoin Testnet (testnet3)
	Register("BTC", Testnet, &Params{
		Symbol: "BTC",
		Name:   "Bitcoin Testnet",
		Type:   ChainTypeBitcoin,

		// Testnet uses coin type 1 for all coins
		Curve:          CurveSecp256k1,
		CoinType:       1,
		DefaultPurpose: 84,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		// BIP32 HD key prefixes (tprv/tpub)
		HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
	})
}
