package chain

import "github.com/klingon-exchange/klingon-hd/internal/bip39"

func init() {
	// Ethereum Mainnet. EVM wallets export keys as xprv/xpub with Bitcoin
	// mainnet versions.
	Register("ETH", Mainnet, &Params{
		Symbol: "ETH",
		Name:   "Ethereum",
		Type:   ChainTypeEVM,

		Curve:          CurveSecp256k1,
		CoinType:       60,
		DefaultPurpose: 44,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub
	})

	// Ethereum Sepolia Testnet. EVM testnets keep coin type 60.
	Register("ETH", Testnet, &Params{
		Symbol: "ETH",
		Name:   "Ethereum Sepolia",
		Type:   ChainTypeEVM,

		Curve:          CurveSecp256k1,
		CoinType:       60,
		DefaultPurpose: 44,
		Layout:         LayoutBIP44,
		SeedAlgorithm:  bip39.AlgorithmBIP39,

		HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
	})
}
