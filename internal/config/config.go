// Package config provides the YAML configuration for klingon-hd.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klingon-exchange/klingon-hd/internal/bip39"
	"github.com/klingon-exchange/klingon-hd/internal/chain"
	"github.com/klingon-exchange/klingon-hd/pkg/logging"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "config.yaml"

// DefaultDataDir is the default configuration directory.
const DefaultDataDir = "~/.klingon-hd"

// Config holds all configuration for klingon-hd.
type Config struct {
	// Network selects chain registry entries and extended key versions.
	Network chain.Network `yaml:"network"`

	// Wallet holds mnemonic and seed settings.
	Wallet WalletConfig `yaml:"wallet"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WalletConfig holds mnemonic decoding and seed derivation settings.
type WalletConfig struct {
	// Glossaries are the word lists consulted, in order, when decoding a mnemonic.
	Glossaries []string `yaml:"glossaries"`

	// SeedAlgorithm is the mnemonic-to-seed pipeline (bip39 or ton).
	SeedAlgorithm string `yaml:"seed_algorithm"`

	// Iterations overrides the pipeline's PBKDF2 iteration count (0 = default).
	Iterations int `yaml:"iterations,omitempty"`

	// KeyLength overrides the pipeline's seed length in bytes (0 = default).
	KeyLength int `yaml:"key_length,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is text (default) or json.
	Format string `yaml:"format,omitempty"`
}

// JSON reports whether logs should be written as JSON lines.
func (l LoggingConfig) JSON() bool {
	return l.Format == "json"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	glossaries := bip39.Glossaries()
	names := make([]string, len(glossaries))
	for i, g := range glossaries {
		names[i] = g.Name()
	}

	return &Config{
		Network: chain.Mainnet,
		Wallet: WalletConfig{
			Glossaries:    names,
			SeedAlgorithm: bip39.AlgorithmBIP39,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// IsTestnet returns true if running on testnet.
func (c *Config) IsTestnet() bool {
	return c.Network == chain.Testnet
}

// Validate rejects unknown networks, glossaries, seed algorithms and log levels.
func (c *Config) Validate() error {
	if _, ok := chain.ParseNetwork(string(c.Network)); !ok {
		return fmt.Errorf("unknown network: %q", c.Network)
	}
	if _, err := c.GlossaryList(); err != nil {
		return err
	}
	if _, err := c.SeedAlgorithm(""); err != nil {
		return err
	}
	if c.Wallet.Iterations < 0 {
		return errors.New("wallet.iterations must not be negative")
	}
	if c.Wallet.KeyLength < 0 {
		return errors.New("wallet.key_length must not be negative")
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("unknown log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format: %q", c.Logging.Format)
	}
	return nil
}

// GlossaryList resolves the configured glossary names in order. An empty
// list means every bundled glossary.
func (c *Config) GlossaryList() ([]*bip39.Glossary, error) {
	if len(c.Wallet.Glossaries) == 0 {
		return bip39.Glossaries(), nil
	}

	list := make([]*bip39.Glossary, 0, len(c.Wallet.Glossaries))
	for _, name := range c.Wallet.Glossaries {
		g, ok := bip39.LookupGlossary(name)
		if !ok {
			return nil, fmt.Errorf("unknown glossary: %q", name)
		}
		list = append(list, g)
	}
	return list, nil
}

// SeedAlgorithm builds the configured seed pipeline with the given passphrase.
func (c *Config) SeedAlgorithm(passphrase string) (*bip39.SeedAlgorithm, error) {
	return bip39.SeedAlgorithmByName(c.Wallet.SeedAlgorithm, passphrase, c.Wallet.Iterations, c.Wallet.KeyLength)
}

// LoadConfig loads configuration from config.yaml in dataDir.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(dataDir string) (*Config, error) {
	configPath := ConfigPath(dataDir)

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from an existing YAML file. Fields missing
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# klingon-hd configuration\n# Generated automatically on first run\n\n")
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigPath returns the full path to the config file for the given data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(expandPath(dataDir), ConfigFileName)
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
