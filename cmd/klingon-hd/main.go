// Package main provides klingon-hd - an HD wallet key derivation tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klingon-exchange/klingon-hd/internal/chain"
	"github.com/klingon-exchange/klingon-hd/internal/config"
	"github.com/klingon-exchange/klingon-hd/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

const usage = `Usage: klingon-hd [flags] <command> [command flags]

Commands:
  generate   Generate a new mnemonic
  inspect    Validate a mnemonic and print its glossary and entropy
  derive     Derive a key for a chain or an explicit path
  xkey       Print an extended key (xpub/xprv) for a path or chain account
  chains     List supported chains
  base58     Encode or decode Base58 / Base58Check

Mnemonics are read from -mnemonic, $KLINGON_HD_MNEMONIC or stdin.
Passphrases are read from -passphrase or $KLINGON_HD_PASSPHRASE.

Flags:
`

func main() {
	// Parse flags
	var (
		dataDir     = flag.String("data-dir", config.DefaultDataDir, "Data directory")
		configFile  = flag.String("config", "", "Config file path (default: <data-dir>/config.yaml)")
		testnet     = flag.Bool("testnet", false, "Use testnet chain parameters, overrides config")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides config")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up logging (initial, may be overridden by config)
	log := logging.New(&logging.Config{
		Level:      *logLevel,
		TimeFormat: time.TimeOnly,
	})
	logging.SetDefault(log)

	if *showVersion {
		fmt.Printf("klingon-hd %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load or create config file
	var cfg *config.Config
	var err error

	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.LoadConfig(*dataDir)
	}
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Apply CLI overrides (CLI flags take precedence over config file)
	if *testnet {
		cfg.Network = chain.Testnet
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	// Update logging with config level
	log = logging.New(&logging.Config{
		Level:      cfg.Logging.Level,
		TimeFormat: time.TimeOnly,
		JSON:       cfg.Logging.JSON(),
	})
	logging.SetDefault(log)

	configPath := *configFile
	if configPath == "" {
		configPath = config.ConfigPath(*dataDir)
	}
	log.Debug("Config loaded", "path", filepath.Clean(configPath), "network", cfg.Network)

	a := newApp(cfg, log, os.Stdin, os.Stdout)
	if err := a.run(flag.Args()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Error("Command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}
