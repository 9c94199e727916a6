// Package wallet provides the HD wallet facade: mnemonic -> seed -> keys per
// chain or explicit path, on secp256k1 (BIP32) and ed25519 (SLIP-0010).
package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klingon-exchange/klingon-hd/internal/bip32"
	"github.com/klingon-exchange/klingon-hd/internal/bip39"
	"github.com/klingon-exchange/klingon-hd/internal/chain"
	"github.com/klingon-exchange/klingon-hd/internal/secp256k1"
	"github.com/klingon-exchange/klingon-hd/internal/slip10"
	"github.com/klingon-exchange/klingon-hd/pkg/helpers"
	"github.com/klingon-exchange/klingon-hd/pkg/logging"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrSeedUnavailable is returned when a chain needs a seed pipeline the
	// wallet cannot run, e.g. a TON key from a wallet built from a raw seed.
	ErrSeedUnavailable = errors.New("seed for algorithm unavailable")
)

// Key is a derived key pair.
type Key struct {
	Curve      chain.Curve
	Path       bip32.DerivationPath
	PrivateKey []byte // 32 bytes
	PublicKey  []byte // 33-byte compressed secp256k1 or 32-byte ed25519
}

// PrivateKeyHex returns the private key as hex without prefix.
func (k *Key) PrivateKeyHex() string {
	return hex.EncodeToString(k.PrivateKey)
}

// PublicKeyHex returns the public key as hex without prefix.
func (k *Key) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// Secp256k1 returns the key as a secp256k1 private key.
func (k *Key) Secp256k1() (*secp256k1.PrivateKey, error) {
	if k.Curve != chain.CurveSecp256k1 {
		return nil, fmt.Errorf("%w: key is %s", ErrUnsupportedCurve, k.Curve)
	}
	return secp256k1.PrivateKeyFromBytes(k.PrivateKey)
}

// Ed25519 returns the key as an ed25519 private key.
func (k *Key) Ed25519() (*slip10.PrivateKey, error) {
	if k.Curve != chain.CurveEd25519 {
		return nil, fmt.Errorf("%w: key is %s", ErrUnsupportedCurve, k.Curve)
	}
	var seed [slip10.KeySize]byte
	copy(seed[:], k.PrivateKey)
	return slip10.NewPrivateKey(seed), nil
}

func (k *Key) clone() *Key {
	return &Key{
		Curve:      k.Curve,
		Path:       k.Path,
		PrivateKey: append([]byte(nil), k.PrivateKey...),
		PublicKey:  append([]byte(nil), k.PublicKey...),
	}
}

type cacheKey struct {
	curve     chain.Curve
	algorithm string
	path      string
}

// Wallet derives keys from a mnemonic or a raw seed. It is safe for
// concurrent use; each derivation walks its path sequentially.
type Wallet struct {
	mnemonic   *bip39.Mnemonic // nil when built from a raw seed
	passphrase string
	algorithm  *bip39.SeedAlgorithm
	network    chain.Network
	log        *logging.Logger

	seedMu sync.Mutex
	seeds  map[string][]byte // seed per pipeline name

	mu    sync.RWMutex
	cache map[cacheKey]*Key
}

type options struct {
	glossaries []*bip39.Glossary
	algorithm  *bip39.SeedAlgorithm
	logger     *logging.Logger
}

// Option configures a Wallet.
type Option func(*options)

// WithGlossaries restricts mnemonic decoding to the given glossaries, tried in order.
func WithGlossaries(glossaries ...*bip39.Glossary) Option {
	return func(o *options) { o.glossaries = glossaries }
}

// WithSeedAlgorithm sets the default seed pipeline (standard BIP39 otherwise).
// The passphrase given to NewFromMnemonic is ignored in favor of the pipeline's own.
func WithSeedAlgorithm(alg *bip39.SeedAlgorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// WithLogger sets the logger; the wallet logs under the "wallet" component.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.GetDefault()
	}
	return o
}

// GenerateMnemonic generates a new English mnemonic of the given length.
func GenerateMnemonic(length bip39.Length) (string, error) {
	return GenerateMnemonicFrom(length, bip39.English, nil)
}

// GenerateMnemonicFrom generates a mnemonic from glossary using entropy read
// from rand (crypto/rand when nil).
func GenerateMnemonicFrom(length bip39.Length, glossary *bip39.Glossary, rand io.Reader) (string, error) {
	m, err := bip39.GenerateMnemonic(length, glossary, rand)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return m.String(), nil
}

// ValidateMnemonic checks if a mnemonic is valid against the glossaries
// (all bundled glossaries when none are given).
func ValidateMnemonic(mnemonic string, glossaries ...*bip39.Glossary) bool {
	_, err := bip39.ParseMnemonicString(mnemonic, glossaries...)
	return err == nil
}

// NewFromMnemonic creates a wallet from a BIP39 mnemonic.
// The passphrase is optional (can be empty string).
func NewFromMnemonic(mnemonic, passphrase string, network chain.Network, opts ...Option) (*Wallet, error) {
	o := buildOptions(opts)

	m, err := bip39.ParseMnemonicString(mnemonic, o.glossaries...)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	alg := o.algorithm
	if alg == nil {
		alg = bip39.StandardSeed(passphrase)
	}

	w := newWallet(network, alg, o.logger)
	w.mnemonic = m
	w.passphrase = passphrase
	w.log.Debug("wallet opened", "network", network, "glossary", m.Glossary().Name(), "words", len(m.Words()), "algorithm", alg.Name)
	return w, nil
}

// NewFromSeed creates a wallet from a raw seed. The seed is used for every
// derivation; chains whose seed pipeline differs from the wallet's default
// fail with ErrSeedUnavailable.
func NewFromSeed(seed []byte, network chain.Network, opts ...Option) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, errors.New("seed must not be empty")
	}
	o := buildOptions(opts)

	alg := o.algorithm
	if alg == nil {
		alg = bip39.StandardSeed("")
	}

	w := newWallet(network, alg, o.logger)
	w.seeds[alg.Name] = append([]byte(nil), seed...)
	w.log.Debug("wallet opened from seed", "network", network, "algorithm", alg.Name)
	return w, nil
}

func newWallet(network chain.Network, alg *bip39.SeedAlgorithm, l *logging.Logger) *Wallet {
	return &Wallet{
		algorithm: alg,
		network:   network,
		log:       l.Component("wallet"),
		seeds:     make(map[string][]byte),
		cache:     make(map[cacheKey]*Key),
	}
}

// Network returns the wallet's network (mainnet/testnet).
func (w *Wallet) Network() chain.Network {
	return w.network
}

// SeedAlgorithm returns the name of the wallet's default seed pipeline.
func (w *Wallet) SeedAlgorithm() string {
	return w.algorithm.Name
}

// seed returns a copy of the seed for the named pipeline, running it on
// first use. The caller owns the copy and should clear it when done.
func (w *Wallet) seed(algorithm string) ([]byte, error) {
	w.seedMu.Lock()
	defer w.seedMu.Unlock()

	if s, ok := w.seeds[algorithm]; ok {
		return append([]byte(nil), s...), nil
	}
	if w.mnemonic == nil {
		return nil, fmt.Errorf("%w: %s", ErrSeedUnavailable, algorithm)
	}

	alg := w.algorithm
	if algorithm != alg.Name {
		var err error
		alg, err = bip39.SeedAlgorithmByName(algorithm, w.passphrase, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSeedUnavailable, err)
		}
	}

	s := w.mnemonic.Seed(alg)
	w.seeds[algorithm] = s
	return append([]byte(nil), s...), nil
}

// DeriveSecp256k1 derives a BIP32 key at path from the default seed.
func (w *Wallet) DeriveSecp256k1(path bip32.DerivationPath) (*Key, error) {
	return w.derive(chain.CurveSecp256k1, w.algorithm.Name, path)
}

// DeriveEd25519 derives a SLIP-0010 key at path from the default seed.
// Every index in path must be hardened.
func (w *Wallet) DeriveEd25519(path bip32.DerivationPath) (*Key, error) {
	return w.derive(chain.CurveEd25519, w.algorithm.Name, path)
}

// Derive derives a key on curve at path from the default seed.
func (w *Wallet) Derive(curve chain.Curve, path bip32.DerivationPath) (*Key, error) {
	return w.derive(curve, w.algorithm.Name, path)
}

// DeriveForChain derives a key for a chain using its curve, seed pipeline
// and path layout. change=0 for external, change=1 for internal addresses.
func (w *Wallet) DeriveForChain(symbol string, account, change, index uint32) (*Key, error) {
	params, err := w.chainParams(symbol, account, change, index)
	if err != nil {
		return nil, err
	}

	algorithm := params.SeedAlgorithm
	if algorithm == "" {
		algorithm = bip39.AlgorithmBIP39
	}
	return w.derive(params.Curve, algorithm, params.DerivationPath(account, change, index))
}

// DerivationPath returns the derivation path string for a chain.
func (w *Wallet) DerivationPath(symbol string, account, change, index uint32) (string, error) {
	params, err := w.chainParams(symbol, account, change, index)
	if err != nil {
		return "", err
	}
	return params.DerivationPathString(account, change, index), nil
}

func (w *Wallet) chainParams(symbol string, indices ...uint32) (*chain.Params, error) {
	params, ok := chain.Get(symbol, w.network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, symbol)
	}
	for _, i := range indices {
		if i >= bip32.HardenedKeyStart {
			return nil, fmt.Errorf("%w: %d", bip32.ErrIndexOutOfRange, i)
		}
	}
	return params, nil
}

func (w *Wallet) derive(curve chain.Curve, algorithm string, path bip32.DerivationPath) (*Key, error) {
	ck := cacheKey{curve: curve, algorithm: algorithm, path: path.String()}

	w.mu.RLock()
	cached, ok := w.cache[ck]
	w.mu.RUnlock()
	if ok {
		return cached.clone(), nil
	}

	seed, err := w.seed(algorithm)
	if err != nil {
		return nil, err
	}
	defer helpers.SecureClear(seed)

	var key *Key
	switch curve {
	case chain.CurveSecp256k1:
		key, err = deriveSecp256k1(seed, path)
	case chain.CurveEd25519:
		key, err = deriveEd25519(seed, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, curve)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to derive %s key at %s: %w", curve, path, err)
	}

	w.mu.Lock()
	w.cache[ck] = key
	w.mu.Unlock()

	w.log.Debug("derived key", "curve", curve, "path", path.String(), "pubkey", key.PublicKeyHex())
	return key.clone(), nil
}

func deriveSecp256k1(seed []byte, path bip32.DerivationPath) (*Key, error) {
	ek, err := bip32.DeriveExtendedKey(seed, path)
	if err != nil {
		return nil, err
	}
	defer ek.Zero()

	pub, err := ek.PublicKey()
	if err != nil {
		return nil, err
	}
	return &Key{
		Curve:      chain.CurveSecp256k1,
		Path:       path,
		PrivateKey: ek.Key(),
		PublicKey:  pub.SerializeCompressed(),
	}, nil
}

func deriveEd25519(seed []byte, path bip32.DerivationPath) (*Key, error) {
	ek, err := slip10.DeriveExtendedKey(seed, path)
	if err != nil {
		return nil, err
	}
	defer ek.Zero()

	return &Key{
		Curve:      chain.CurveEd25519,
		Path:       path,
		PrivateKey: ek.Key(),
		PublicKey:  ek.PrivateKey().PublicKey(),
	}, nil
}

// extendedKey derives the BIP32 extended key at path from the default seed.
func (w *Wallet) extendedKey(path bip32.DerivationPath) (*bip32.ExtendedKey, error) {
	seed, err := w.seed(w.algorithm.Name)
	if err != nil {
		return nil, err
	}
	defer helpers.SecureClear(seed)

	ek, err := bip32.DeriveExtendedKey(seed, path)
	if err != nil {
		return nil, fmt.Errorf("failed to derive extended key at %s: %w", path, err)
	}
	return ek, nil
}

func (w *Wallet) versions() (private, public [4]byte) {
	if w.network == chain.Testnet {
		return bip32.TestNetPrivateVersion, bip32.TestNetPublicVersion
	}
	return bip32.MainNetPrivateVersion, bip32.MainNetPublicVersion
}

// ExtendedPrivateKey returns the xprv (tprv on testnet) at path.
func (w *Wallet) ExtendedPrivateKey(path bip32.DerivationPath) (string, error) {
	ek, err := w.extendedKey(path)
	if err != nil {
		return "", err
	}
	defer ek.Zero()

	private, _ := w.versions()
	return ek.Serialize(private), nil
}

// ExtendedPublicKey returns the xpub (tpub on testnet) at path.
func (w *Wallet) ExtendedPublicKey(path bip32.DerivationPath) (string, error) {
	ek, err := w.extendedKey(path)
	if err != nil {
		return "", err
	}
	defer ek.Zero()

	_, public := w.versions()
	return ek.SerializePublic(public)
}

// AccountExtendedPublicKey returns the account-level extended public key for
// a secp256k1 chain, using the chain's own version bytes (e.g. Ltub for LTC).
func (w *Wallet) AccountExtendedPublicKey(symbol string, account uint32) (string, error) {
	params, err := w.chainParams(symbol, account)
	if err != nil {
		return "", err
	}
	if !params.HasExtendedKeys() {
		return "", fmt.Errorf("%w: %s has no extended key format", ErrUnsupportedCurve, symbol)
	}

	path := bip32.NewDerivationPath(
		bip32.Hardened(params.DefaultPurpose),
		bip32.Hardened(params.CoinType),
		bip32.Hardened(account),
	)
	ek, err := w.extendedKey(path)
	if err != nil {
		return "", err
	}
	defer ek.Zero()

	return ek.SerializePublic(params.HDPublicKeyID)
}

// ClearCache clears the key cache (useful for memory management).
func (w *Wallet) ClearCache() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range w.cache {
		helpers.SecureClear(k.PrivateKey)
	}
	w.cache = make(map[cacheKey]*Key)
}

// CacheSize returns the number of cached keys.
func (w *Wallet) CacheSize() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.cache)
}

// Close clears cached keys and seeds. Seeds computed from a mnemonic are
// recomputed on the next derivation; a raw-seed wallet is unusable afterwards.
func (w *Wallet) Close() {
	w.ClearCache()

	w.seedMu.Lock()
	defer w.seedMu.Unlock()
	for name, s := range w.seeds {
		helpers.SecureClear(s)
		delete(w.seeds, name)
	}
}
