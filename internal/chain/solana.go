package chain

import "github.com/klingon-exchange/klingon-hd/internal/bip39"

func init() {
	// Solana Mainnet
	Register("SOL", Mainnet, &Params{
		Symbol: "SOL",
		Name:   "Solana",
		Type:   ChainTypeSolana,

		// BIP44 coin type 501, SLIP-0010 so every level is hardened
		Curve:          CurveEd25519,
		CoinType:       501,
		DefaultPurpose: 44,
		Layout:         LayoutHardened,
		SeedAlgorithm:  bip39.AlgorithmBIP39,
	})

	// Solana Devnet
	Register("SOL", Testnet, &Params{
		Symbol: "SOL",
		Name:   "Solana Devnet",
		Type:   ChainTypeSolana,

		Curve:          CurveEd25519,
		CoinType:       501,
		DefaultPurpose: 44,
		Layout:         LayoutHardened,
		SeedAlgorithm:  bip39.AlgorithmBIP39,
	})
}
