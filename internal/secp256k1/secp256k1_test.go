package secp256k1

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	orderHex     = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestDefaultContext(t *testing.T) {
	ctx := DefaultContext()
	if ctx != DefaultContext() {
		t.Error("DefaultContext should return the same context")
	}
	if got := hex.EncodeToString(ctx.Order().Bytes()); got != orderHex {
		t.Errorf("Order = %s, want %s", got, orderHex)
	}
	if ctx.Order().Cmp(btcec.S256().N) != 0 {
		t.Error("Order should match btcec")
	}

	// Order returns a copy.
	ctx.Order().SetInt64(1)
	if got := hex.EncodeToString(ctx.Order().Bytes()); got != orderHex {
		t.Errorf("Order was mutated: %s", got)
	}
}

func TestDefaultContextConcurrent(t *testing.T) {
	done := make(chan *Context, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- DefaultContext() }()
	}
	first := <-done
	for i := 1; i < 8; i++ {
		if ctx := <-done; ctx != first {
			t.Error("concurrent DefaultContext calls returned different contexts")
		}
	}
}

func TestPrivateKeyValidation(t *testing.T) {
	order := mustHex(t, orderHex)
	orderMinusOne := append([]byte{}, order...)
	orderMinusOne[31]--

	tests := []struct {
		name  string
		key   []byte
		valid bool
	}{
		{"one", append(make([]byte, 31), 1), true},
		{"n-1", orderMinusOne, true},
		{"zero", make([]byte, 32), false},
		{"n", order, false},
		{"all ones", bytes.Repeat([]byte{0xff}, 32), false},
		{"short", make([]byte, 31), false},
		{"long", append(make([]byte, 32), 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.key)
			if tt.valid && err != nil {
				t.Errorf("PrivateKeyFromBytes() error = %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidPrivateKey) {
				t.Errorf("PrivateKeyFromBytes() error = %v, want ErrInvalidPrivateKey", err)
			}
		})
	}
}

func TestPublicKey(t *testing.T) {
	key, err := PrivateKeyFromBytes(append(make([]byte, 31), 1))
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error = %v", err)
	}

	pub := key.PublicKey()
	if got := pub.Hex(); got != generatorHex {
		t.Errorf("PublicKey = %s, want %s", got, generatorHex)
	}
	if n := len(pub.SerializeCompressed()); n != PublicKeySizeCompressed {
		t.Errorf("compressed length = %d", n)
	}

	uncompressed := pub.SerializeUncompressed()
	if len(uncompressed) != PublicKeySizeUncompressed || uncompressed[0] != 0x04 {
		t.Errorf("uncompressed = %x", uncompressed)
	}

	for _, enc := range [][]byte{pub.SerializeCompressed(), uncompressed} {
		parsed, err := ParsePublicKey(enc)
		if err != nil {
			t.Fatalf("ParsePublicKey() error = %v", err)
		}
		if !parsed.IsEqual(pub) {
			t.Errorf("ParsePublicKey(%x) returned a different point", enc)
		}
	}

	if _, err := ParsePublicKey([]byte{0x02, 0x01}); !errors.Is(err, ErrInvalidPublicKey) {
		t.Errorf("ParsePublicKey(short) error = %v, want ErrInvalidPublicKey", err)
	}
}

func TestSignVerifyRecover(t *testing.T) {
	key, err := PrivateKeyFromBytes(mustHex(t, "4a90b06688cfb2bf4a5690e2ff65dec30be33f5bf57729444c268aa0fd402163"))
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error = %v", err)
	}
	pub := key.PublicKey()

	for _, msg := range []string{"", "klingon", "hd wallet signature"} {
		hash := sha256.Sum256([]byte(msg))

		sig, err := key.Sign(hash[:])
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		if sig.V > 1 {
			t.Errorf("V = %d, want 0 or 1", sig.V)
		}
		if !pub.Verify(hash[:], sig) {
			t.Errorf("Verify(%q) = false", msg)
		}

		recovered, err := sig.RecoverPublicKey(hash[:])
		if err != nil {
			t.Fatalf("RecoverPublicKey() error = %v", err)
		}
		if !recovered.IsEqual(pub) {
			t.Errorf("RecoverPublicKey(%q) = %s, want %s", msg, recovered.Hex(), pub.Hex())
		}

		other := sha256.Sum256([]byte(msg + "!"))
		if pub.Verify(other[:], sig) {
			t.Errorf("Verify accepted a signature over a different hash")
		}
	}
}

func TestSignRejectsBadHash(t *testing.T) {
	key, _ := PrivateKeyFromBytes(append(make([]byte, 31), 7))
	if _, err := key.Sign([]byte("short")); !errors.Is(err, ErrInvalidHashLength) {
		t.Errorf("Sign(short) error = %v, want ErrInvalidHashLength", err)
	}
	if key.PublicKey().Verify([]byte("short"), &Signature{}) {
		t.Error("Verify(short) should be false")
	}
}

func TestSignatureCombined(t *testing.T) {
	key, _ := PrivateKeyFromBytes(append(make([]byte, 31), 9))
	hash := sha256.Sum256([]byte("combined"))
	sig, _ := key.Sign(hash[:])

	combined := sig.Combined()
	if len(combined) != SignatureSize {
		t.Fatalf("len(Combined) = %d, want %d", len(combined), SignatureSize)
	}
	if !bytes.Equal(combined[:32], sig.R[:]) || !bytes.Equal(combined[32:64], sig.S[:]) || combined[64] != sig.V {
		t.Errorf("Combined = %x is not r || s || v", combined)
	}

	parsed, err := NewSignature(combined)
	if err != nil {
		t.Fatalf("NewSignature() error = %v", err)
	}
	if *parsed != *sig {
		t.Errorf("NewSignature(Combined()) = %+v, want %+v", parsed, sig)
	}

	if _, err := NewSignature(combined[:64]); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("NewSignature(64 bytes) error = %v, want ErrInvalidSignature", err)
	}
	bad := append([]byte{}, combined...)
	bad[64] = 9
	if _, err := NewSignature(bad); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("NewSignature(v=9) error = %v, want ErrInvalidSignature", err)
	}
}
