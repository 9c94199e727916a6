// Package chain defines per-chain key derivation profiles for supported cryptocurrencies.
// All chain-specific values are hardcoded here - no external configuration needed.
package chain

import (
	"sort"

	"github.com/klingon-exchange/klingon-hd/internal/bip32"
)

// Network represents mainnet or testnet.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// ParseNetwork returns the network named s.
func ParseNetwork(s string) (Network, bool) {
	switch Network(s) {
	case Mainnet, Testnet:
		return Network(s), true
	default:
		return "", false
	}
}

// ChainType represents the blockchain family.
type ChainType string

const (
	ChainTypeBitcoin ChainType = "bitcoin" // BTC and forks (LTC, DOGE)
	ChainTypeEVM     ChainType = "evm"     // Ethereum and EVM chains
	ChainTypeSolana  ChainType = "solana"  // Solana
	ChainTypeTON     ChainType = "ton"     // The Open Network
)

// Curve is the signature curve a chain derives keys on.
type Curve string

const (
	CurveSecp256k1 Curve = "secp256k1" // BIP32
	CurveEd25519   Curve = "ed25519"   // SLIP-0010, hardened only
)

// ParseCurve returns the curve named s.
func ParseCurve(s string) (Curve, bool) {
	switch Curve(s) {
	case CurveSecp256k1, CurveEd25519:
		return Curve(s), true
	default:
		return "", false
	}
}

// PathLayout selects how account/change/index map onto a derivation path.
type PathLayout int

const (
	// LayoutBIP44 is m/purpose'/coin'/account'/change/index.
	LayoutBIP44 PathLayout = iota
	// LayoutHardened is m/purpose'/coin'/account'/change'/index'.
	LayoutHardened
	// LayoutAccount is m/purpose'/coin'/account'; change and index are ignored.
	LayoutAccount
)

// Params contains the derivation parameters for a blockchain.
type Params struct {
	// Identity
	Symbol string    // BTC, LTC, ETH, etc.
	Name   string    // Bitcoin, Litecoin, etc.
	Type   ChainType // bitcoin, evm, solana, ton

	// Key derivation
	Curve          Curve      // secp256k1 or ed25519
	CoinType       uint32     // BIP44 coin type (0=BTC, 2=LTC, 60=ETH, etc.)
	DefaultPurpose uint32     // 44 or 84
	Layout         PathLayout // how the path is assembled
	SeedAlgorithm  string     // mnemonic-to-seed pipeline (bip39 or ton)

	// BIP32 HD key magic bytes (for xpub/xprv serialization), secp256k1 only
	HDPrivateKeyID [4]byte // Extended private key prefix (e.g., xprv, Ltpv)
	HDPublicKeyID  [4]byte // Extended public key prefix (e.g., xpub, Ltub)
}

// DerivationPath returns the derivation path for this chain.
func (p *Params) DerivationPath(account, change, index uint32) bip32.DerivationPath {
	base := bip32.NewDerivationPath(
		bip32.Hardened(p.DefaultPurpose),
		bip32.Hardened(p.CoinType),
		bip32.Hardened(account),
	)

	switch p.Layout {
	case LayoutAccount:
		return base
	case LayoutHardened:
		return base.Child(bip32.Hardened(change)).Child(bip32.Hardened(index))
	default:
		return base.Child(bip32.Ordinary(change)).Child(bip32.Ordinary(index))
	}
}

// DerivationPathString returns the derivation path as a string.
func (p *Params) DerivationPathString(account, change, index uint32) string {
	return p.DerivationPath(account, change, index).String()
}

// HasExtendedKeys reports whether the chain defines xprv/xpub versions.
func (p *Params) HasExtendedKeys() bool {
	return p.Curve == CurveSecp256k1 && p.HDPrivateKeyID != [4]byte{}
}

// Registry holds all chain parameters indexed by symbol.
var registry = make(map[string]map[Network]*Params)

// Register adds chain params to the registry.
func Register(symbol string, network Network, params *Params) {
	if registry[symbol] == nil {
		registry[symbol] = make(map[Network]*Params)
	}
	registry[symbol][network] = params
}

// Get returns chain params for a symbol and network.
func Get(symbol string, network Network) (*Params, bool) {
	nets, ok := registry[symbol]
	if !ok {
		return nil, false
	}
	params, ok := nets[network]
	return params, ok
}

// List returns all registered chain symbols in sorted order.
func List() []string {
	symbols := make([]string, 0, len(registry))
	for symbol := range registry {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// ListByCurve returns all chains deriving keys on curve.
func ListByCurve(curve Curve) []string {
	var symbols []string
	for _, symbol := range List() {
		for _, params := range registry[symbol] {
			if params.Curve == curve {
				symbols = append(symbols, symbol)
				break
			}
		}
	}
	return symbols
}

// ListByType returns all chains of a specific type.
func ListByType(chainType ChainType) []string {
	var symbols []string
	for _, symbol := range List() {
		for _, params := range registry[symbol] {
			if params.Type == chainType {
				symbols = append(symbols, symbol)
				break
			}
		}
	}
	return symbols
}

// IsSupported returns true if the chain is registered.
func IsSupported(symbol string) bool {
	_, ok := registry[symbol]
	return ok
}
