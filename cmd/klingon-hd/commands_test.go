package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/klingon-exchange/klingon-hd/internal/bip32"
	"github.com/klingon-exchange/klingon-hd/internal/bip39"
	"github.com/klingon-exchange/klingon-hd/internal/chain"
	"github.com/klingon-exchange/klingon-hd/internal/config"
	"github.com/klingon-exchange/klingon-hd/pkg/logging"
)

// Test mnemonic (DO NOT USE FOR REAL FUNDS)
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envMnemonic, "")
	t.Setenv(envPassphrase, "")

	var out bytes.Buffer
	a := newApp(config.DefaultConfig(), logging.Nop(), strings.NewReader(stdin), &out)
	err := a.run(args)
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := runApp(t, "", "generate", "-words", "12")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	phrase := strings.TrimSpace(out)
	if len(strings.Fields(phrase)) != 12 {
		t.Errorf("expected 12 words, got %q", phrase)
	}
	if _, err := bip39.ParseMnemonicString(phrase, bip39.English); err != nil {
		t.Errorf("generated mnemonic invalid: %v", err)
	}

	if _, err := runApp(t, "", "generate", "-words", "15"); err == nil {
		t.Error("expected error for 15 words")
	}
	if _, err := runApp(t, "", "generate", "-glossary", "klingon"); err == nil {
		t.Error("expected error for unknown glossary")
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := runApp(t, testMnemonic+"\n", "inspect")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if !strings.Contains(out, "english") || !strings.Contains(out, "00000000000000000000000000000000") {
		t.Errorf("inspect output = %q", out)
	}

	if _, err := runApp(t, "", "inspect", "-mnemonic", "abandon abandon"); err == nil {
		t.Error("expected error for short mnemonic")
	}
	if _, err := runApp(t, ""); err == nil {
		t.Error("expected error for missing command")
	}
}

func TestDeriveCommand(t *testing.T) {
	out, err := runApp(t, "", "derive", "-mnemonic", testMnemonic, "-chain", "eth", "-private")
	if err != nil {
		t.Fatalf("derive error = %v", err)
	}
	if !strings.Contains(out, "m/44'/60'/0'/0/0") {
		t.Errorf("missing path in %q", out)
	}
	if !strings.Contains(out, "1ab42cc412b618bdea3a599e3c9bae199ebf030895b039e9db1e30dafb12b727") {
		t.Errorf("missing private key in %q", out)
	}

	out, err = runApp(t, testMnemonic, "derive", "-chain", "BTC")
	if err != nil {
		t.Fatalf("derive from stdin error = %v", err)
	}
	if strings.Contains(out, "private:") {
		t.Error("private key should be hidden without -private")
	}
	if !strings.Contains(out, "0330d54fd0dd420a6e5f8d3624f5f3482cae350f79d5f0753bf5beef9c2d91af3c") {
		t.Errorf("missing public key in %q", out)
	}

	out, err = runApp(t, "", "derive", "-mnemonic", testMnemonic, "-path", "m/44'/501'/0'/0'", "-curve", "ed25519")
	if err != nil {
		t.Fatalf("derive ed25519 error = %v", err)
	}
	if !strings.Contains(out, "ed25519") {
		t.Errorf("derive ed25519 output = %q", out)
	}

	tonOut, err := runApp(t, "", "derive", "-mnemonic", testMnemonic, "-path", "m/44'/607'/0'", "-curve", "ed25519", "-algorithm", "ton")
	if err != nil {
		t.Fatalf("derive -algorithm ton error = %v", err)
	}
	bipOut, _ := runApp(t, "", "derive", "-mnemonic", testMnemonic, "-path", "m/44'/607'/0'", "-curve", "ed25519")
	if tonOut == bipOut {
		t.Error("-algorithm ton should change the derived key")
	}

	tests := [][]string{
		{"derive", "-mnemonic", testMnemonic},
		{"derive", "-mnemonic", testMnemonic, "-path", "m/0", "-algorithm", "scrypt"},
		{"derive", "-mnemonic", testMnemonic, "-chain", "BTC", "-path", "m/0"},
		{"derive", "-mnemonic", testMnemonic, "-path", "m/0", "-curve", "ed25519"},
		{"derive", "-mnemonic", testMnemonic, "-path", "0/1"},
		{"derive", "-mnemonic", testMnemonic, "-chain", "XMR"},
		{"derive", "-mnemonic", testMnemonic, "-chain", "BTC", "-account", "4294967296"},
		{"derive", "-mnemonic", testMnemonic, "-chain", "BTC", "-change", "2147483648"},
		{"derive", "-mnemonic", testMnemonic, "-chain", "BTC", "-index", "8589934592"},
	}
	for _, args := range tests {
		if _, err := runApp(t, "", args...); err == nil {
			t.Errorf("expected error for %v", args[2:])
		}
	}
}

func TestXKeyCommand(t *testing.T) {
	out, err := runApp(t, "", "xkey", "-mnemonic", testMnemonic, "-private")
	if err != nil {
		t.Fatalf("xkey error = %v", err)
	}
	if !strings.HasPrefix(out, "xprv") {
		t.Errorf("xkey -private = %q, want xprv", out)
	}

	out, err = runApp(t, "", "xkey", "-mnemonic", testMnemonic, "-path", "m/44'/0'/0'")
	if err != nil {
		t.Fatalf("xkey error = %v", err)
	}
	if !strings.HasPrefix(out, "xpub") {
		t.Errorf("xkey = %q, want xpub", out)
	}

	out, err = runApp(t, "", "xkey", "-mnemonic", testMnemonic, "-chain", "LTC")
	if err != nil {
		t.Fatalf("xkey -chain error = %v", err)
	}
	if !strings.HasPrefix(out, "Ltub") {
		t.Errorf("xkey -chain LTC = %q, want Ltub", out)
	}

	if _, err := runApp(t, "", "xkey", "-mnemonic", testMnemonic, "-chain", "BTC", "-account", "4294967296"); !errors.Is(err, bip32.ErrIndexOutOfRange) {
		t.Errorf("xkey -account 2^32 error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestPathIndices(t *testing.T) {
	tests := []struct {
		values  []uint
		want    []uint32
		wantErr bool
	}{
		{[]uint{0, 1, 2}, []uint32{0, 1, 2}, false},
		{[]uint{0x7fffffff}, []uint32{0x7fffffff}, false},
		{[]uint{0x80000000}, nil, true},
		{[]uint{0, 0, 0xffffffff}, nil, true},
	}
	for _, tt := range tests {
		got, err := pathIndices(tt.values...)
		if (err != nil) != tt.wantErr {
			t.Errorf("pathIndices(%v) error = %v, wantErr %v", tt.values, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, bip32.ErrIndexOutOfRange) {
				t.Errorf("pathIndices(%v) error = %v, want ErrIndexOutOfRange", tt.values, err)
			}
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("pathIndices(%v)[%d] = %d, want %d", tt.values, i, got[i], tt.want[i])
			}
		}
	}
}

func TestChainsCommand(t *testing.T) {
	out, err := runApp(t, "", "chains")
	if err != nil {
		t.Fatalf("chains error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(chain.List()) {
		t.Errorf("chains printed %d lines, want %d", len(lines), len(chain.List()))
	}

	out, _ = runApp(t, "", "chains", "-curve", "ed25519")
	if !strings.Contains(out, "SOL") || strings.Contains(out, "BTC") {
		t.Errorf("chains -curve ed25519 = %q", out)
	}
}

func TestBase58Command(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"base58", "encode", "000000287fb4cd"}, "111233QC4"},
		{[]string{"base58", "decode", "111233QC4"}, "000000287fb4cd"},
		{[]string{"base58", "encode", "0x61"}, "2g"},
	}
	for _, tt := range tests {
		out, err := runApp(t, "", tt.args...)
		if err != nil {
			t.Fatalf("%v error = %v", tt.args, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, out, tt.want)
		}
	}

	encoded, err := runApp(t, "", "base58", "-check", "encode", "00f54a5851e9372b87810a8e60cdd2e7cfd80b6e31")
	if err != nil {
		t.Fatalf("base58 -check encode error = %v", err)
	}
	if strings.TrimSpace(encoded) != "1PMycacnJaSqwwJqjawXBErnLsZ7RkXUAs" {
		t.Errorf("base58 -check encode = %q", encoded)
	}
	decoded, err := runApp(t, "", "base58", "-check", "decode", strings.TrimSpace(encoded))
	if err != nil {
		t.Fatalf("base58 -check decode error = %v", err)
	}
	if strings.TrimSpace(decoded) != "00f54a5851e9372b87810a8e60cdd2e7cfd80b6e31" {
		t.Errorf("base58 -check decode = %q", decoded)
	}

	if _, err := runApp(t, "", "base58", "decode", "0OIl"); err == nil {
		t.Error("expected error for invalid base58 characters")
	}
	if _, err := runApp(t, "", "base58", "encode"); err == nil {
		t.Error("expected usage error")
	}
}
