package chain

import "github.com/klingon-exchange/klingon-hd/internal/bip39"

func init() {
	// TON Mainnet. The seed comes from the TON pipeline (HMAC then PBKDF2,
	// 32 bytes) and the path stops at the account level.
	Register("TON", Mainnet, &Params{
		Symbol: "TON",
		Name:   "TON",
		Type:   ChainTypeTON,

		Curve:          CurveEd25519,
		CoinType:       607,
		DefaultPurpose: 44,
		Layout:         LayoutAccount,
		SeedAlgorithm:  bip39.AlgorithmTON,
	})

	// TON Testnet
	Register("TON", Testnet, &Params{
		Symbol: "TON",
		Name:   "TON Testnet",
		Type:   ChainTypeTON,

		Curve:          CurveEd25519,
		CoinType:       607,
		DefaultPurpose: 44,
		Layout:         LayoutAccount,
		SeedAlgorithm:  bip39.AlgorithmTON,
	})
}
