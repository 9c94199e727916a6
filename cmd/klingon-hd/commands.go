package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klingon-exchange/klingon-hd/internal/base58"
	"github.com/klingon-exchange/klingon-hd/internal/bip32"
	"github.com/klingon-exchange/klingon-hd/internal/bip39"
	"github.com/klingon-exchange/klingon-hd/internal/chain"
	"github.com/klingon-exchange/klingon-hd/internal/config"
	"github.com/klingon-exchange/klingon-hd/internal/wallet"
	"github.com/klingon-exchange/klingon-hd/pkg/helpers"
	"github.com/klingon-exchange/klingon-hd/pkg/logging"
)

const (
	envMnemonic   = "KLINGON_HD_MNEMONIC"
	envPassphrase = "KLINGON_HD_PASSPHRASE"
)

type app struct {
	cfg *config.Config
	log *logging.Logger
	in  io.Reader
	out io.Writer
}

func newApp(cfg *config.Config, log *logging.Logger, in io.Reader, out io.Writer) *app {
	return &app{cfg: cfg, log: log, in: in, out: out}
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "generate":
		return a.generate(rest)
	case "inspect":
		return a.inspect(rest)
	case "derive":
		return a.derive(rest)
	case "xkey":
		return a.xkey(rest)
	case "chains":
		return a.chains(rest)
	case "base58":
		return a.base58(rest)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) generate(args []string) error {
	fs := a.flagSet("generate")
	words := fs.Int("words", 24, "Number of words (12, 18, 24)")
	glossaryName := fs.String("glossary", "english", "Word list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	length, ok := bip39.LengthFromWords(*words)
	if !ok {
		return fmt.Errorf("%w: %d words", bip39.ErrUnsupportedMnemonicLength, *words)
	}
	glossary, ok := bip39.LookupGlossary(*glossaryName)
	if !ok {
		return fmt.Errorf("unknown glossary: %s", *glossaryName)
	}

	mnemonic, err := wallet.GenerateMnemonicFrom(length, glossary, nil)
	if err != nil {
		return err
	}
	a.log.Debug("Generated mnemonic", "words", length.Words(), "glossary", glossary.Name())
	fmt.Fprintln(a.out, mnemonic)
	return nil
}

func (a *app) inspect(args []string) error {
	fs := a.flagSet("inspect")
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic phrase")
	if err := fs.Parse(args); err != nil {
		return err
	}

	phrase, err := a.readMnemonic(*mnemonicFlag)
	if err != nil {
		return err
	}
	glossaries, err := a.cfg.GlossaryList()
	if err != nil {
		return err
	}

	m, err := bip39.ParseMnemonicString(phrase, glossaries...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "words:    %d\n", m.Length().Words())
	fmt.Fprintf(a.out, "glossary: %s\n", m.Glossary().Name())
	fmt.Fprintf(a.out, "entropy:  %s\n", hex.EncodeToString(m.Entropy()))
	return nil
}

func (a *app) derive(args []string) error {
	fs := a.flagSet("derive")
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic phrase")
	passphrase := fs.String("passphrase", "", "BIP39 passphrase")
	symbol := fs.String("chain", "", "Chain symbol (BTC, ETH, SOL, ...)")
	account := fs.Uint("account", 0, "Account index")
	change := fs.Uint("change", 0, "Change index (0 external, 1 internal)")
	index := fs.Uint("index", 0, "Address index")
	pathFlag := fs.String("path", "", "Explicit derivation path, e.g. m/44'/0'/0'/0/0")
	curveFlag := fs.String("curve", string(chain.CurveSecp256k1), "Curve for -path (secp256k1, ed25519)")
	showPrivate := fs.Bool("private", false, "Print the private key")
	algorithm := fs.String("algorithm", "", "Seed algorithm (bip39, ton), overrides config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*symbol == "") == (*pathFlag == "") {
		return errors.New("exactly one of -chain or -path is required")
	}

	w, err := a.openWallet(*mnemonicFlag, *passphrase, *algorithm)
	if err != nil {
		return err
	}
	defer w.Close()

	var key *wallet.Key
	if *symbol != "" {
		var indices []uint32
		if indices, err = pathIndices(*account, *change, *index); err != nil {
			return err
		}
		key, err = w.DeriveForChain(strings.ToUpper(*symbol), indices[0], indices[1], indices[2])
	} else {
		curve, ok := chain.ParseCurve(*curveFlag)
		if !ok {
			return fmt.Errorf("unknown curve: %s", *curveFlag)
		}
		var path bip32.DerivationPath
		if path, err = bip32.ParseDerivationPath(*pathFlag); err != nil {
			return err
		}
		key, err = w.Derive(curve, path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "path:    %s\n", key.Path)
	fmt.Fprintf(a.out, "curve:   %s\n", key.Curve)
	fmt.Fprintf(a.out, "public:  %s\n", key.PublicKeyHex())
	if *showPrivate {
		fmt.Fprintf(a.out, "private: %s\n", key.PrivateKeyHex())
	}
	return nil
}

func (a *app) xkey(args []string) error {
	fs := a.flagSet("xkey")
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic phrase")
	passphrase := fs.String("passphrase", "", "BIP39 passphrase")
	pathFlag := fs.String("path", "", "Derivation path (default m)")
	symbol := fs.String("chain", "", "Chain symbol; prints the account-level public key with chain version bytes")
	account := fs.Uint("account", 0, "Account index for -chain")
	showPrivate := fs.Bool("private", false, "Print the extended private key instead of the public key")
	algorithm := fs.String("algorithm", "", "Seed algorithm (bip39, ton), overrides config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *symbol != "" && (*pathFlag != "" || *showPrivate) {
		return errors.New("-chain cannot be combined with -path or -private")
	}

	w, err := a.openWallet(*mnemonicFlag, *passphrase, *algorithm)
	if err != nil {
		return err
	}
	defer w.Close()

	var out string
	switch {
	case *symbol != "":
		var indices []uint32
		if indices, err = pathIndices(*account); err != nil {
			return err
		}
		out, err = w.AccountExtendedPublicKey(strings.ToUpper(*symbol), indices[0])
	default:
		var path bip32.DerivationPath
		if *pathFlag != "" {
			if path, err = bip32.ParseDerivationPath(*pathFlag); err != nil {
				return err
			}
		}
		if *showPrivate {
			out, err = w.ExtendedPrivateKey(path)
		} else {
			out, err = w.ExtendedPublicKey(path)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, out)
	return nil
}

func (a *app) chains(args []string) error {
	fs := a.flagSet("chains")
	curveFlag := fs.String("curve", "", "Only list chains on this curve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	symbols := chain.List()
	if *curveFlag != "" {
		curve, ok := chain.ParseCurve(*curveFlag)
		if !ok {
			return fmt.Errorf("unknown curve: %s", *curveFlag)
		}
		symbols = chain.ListByCurve(curve)
	}

	for _, symbol := range symbols {
		params, ok := chain.Get(symbol, a.cfg.Network)
		if !ok {
			continue
		}
		fmt.Fprintf(a.out, "%-5s %-10s %-9s %s\n", params.Symbol, params.Name, params.Curve, params.DerivationPathString(0, 0, 0))
	}
	return nil
}

func (a *app) base58(args []string) error {
	fs := a.flagSet("base58")
	check := fs.Bool("check", false, "Use Base58Check (double-SHA256 checksum)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: base58 [-check] encode <hex> | decode <base58>")
	}

	op, input := fs.Arg(0), fs.Arg(1)
	switch op {
	case "encode":
		data, err := helpers.HexToBytes(input)
		if err != nil {
			return err
		}
		if *check {
			fmt.Fprintln(a.out, base58.CheckEncode(data))
		} else {
			fmt.Fprintln(a.out, base58.Encode(data))
		}
	case "decode":
		var data []byte
		var err error
		if *check {
			data, err = base58.CheckDecode(input)
		} else {
			data, err = base58.Decode(input)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, hex.EncodeToString(data))
	default:
		return fmt.Errorf("unknown base58 operation: %s", op)
	}
	return nil
}

// pathIndices narrows flag values to unhardened BIP32 indices.
func pathIndices(values ...uint) ([]uint32, error) {
	indices := make([]uint32, len(values))
	for i, v := range values {
		if uint64(v) >= uint64(bip32.HardenedKeyStart) {
			return nil, fmt.Errorf("%w: %d", bip32.ErrIndexOutOfRange, v)
		}
		indices[i] = uint32(v)
	}
	return indices, nil
}

// openWallet builds a wallet from the configured glossaries and seed pipeline.
func (a *app) openWallet(mnemonicFlag, passphraseFlag, algorithm string) (*wallet.Wallet, error) {
	phrase, err := a.readMnemonic(mnemonicFlag)
	if err != nil {
		return nil, err
	}

	passphrase := passphraseFlag
	if passphrase == "" {
		passphrase = os.Getenv(envPassphrase)
	}

	glossaries, err := a.cfg.GlossaryList()
	if err != nil {
		return nil, err
	}
	walletCfg := a.cfg.Wallet
	if algorithm != "" {
		walletCfg.SeedAlgorithm = algorithm
	}
	alg, err := bip39.SeedAlgorithmByName(walletCfg.SeedAlgorithm, passphrase, walletCfg.Iterations, walletCfg.KeyLength)
	if err != nil {
		return nil, err
	}

	return wallet.NewFromMnemonic(phrase, passphrase, a.cfg.Network,
		wallet.WithGlossaries(glossaries...),
		wallet.WithSeedAlgorithm(alg),
		wallet.WithLogger(a.log),
	)
}

func (a *app) readMnemonic(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(envMnemonic); env != "" {
		return env, nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read mnemonic: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no mnemonic given")
	}
	return line, nil
}
