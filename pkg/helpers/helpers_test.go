package helpers

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestReadRandom(t *testing.T) {
	b, err := ReadRandom(bytes.NewReader([]byte{1, 2, 3, 4}), 3)
	if err != nil {
		t.Fatalf("ReadRandom() error = %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("ReadRandom = %x, want 010203", b)
	}

	if _, err := ReadRandom(bytes.NewReader([]byte{1}), 2); err == nil {
		t.Error("expected error for short reader")
	}

	b, err = ReadRandom(nil, 32)
	if err != nil {
		t.Fatalf("ReadRandom(nil) error = %v", err)
	}
	if len(b) != 32 {
		t.Errorf("len = %d, want 32", len(b))
	}
}

func TestSecureClear(t *testing.T) {
	b := []byte{1, 2, 3}
	SecureClear(b)
	if !bytes.Equal(b, []byte{0, 0, 0}) {
		t.Errorf("SecureClear left %x", b)
	}
}

func TestConstantTimeCompare(t *testing.T) {
	if !ConstantTimeCompare([]byte{1, 2}, []byte{1, 2}) {
		t.Error("equal slices should compare equal")
	}
	if ConstantTimeCompare([]byte{1, 2}, []byte{1, 3}) || ConstantTimeCompare([]byte{1}, []byte{1, 2}) {
		t.Error("different slices should not compare equal")
	}
}

func TestConcat(t *testing.T) {
	got := Concat([]byte{0}, nil, []byte{1, 2}, []byte{3})
	if !bytes.Equal(got, []byte{0, 1, 2, 3}) {
		t.Errorf("Concat = %x, want 00010203", got)
	}
}

func TestHexToBytes(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"deadbeef", []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"0xdeadbeef", []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{" 0XDEADBEEF\n", []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"", []byte{}, false},
		{"0x", []byte{}, false},
		{"abc", nil, true},
		{"zz", nil, true},
	}

	for _, tt := range tests {
		got, err := HexToBytes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("HexToBytes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !bytes.Equal(got, tt.want) {
			t.Errorf("HexToBytes(%q) = %x, want %x", tt.in, got, tt.want)
		}
	}
}

func TestHashes(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"sha256", SHA256([]byte("abc")), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"double sha256", DoubleSHA256(nil), "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456"},
		{"hash160", Hash160(nil), "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb"},
		{"keccak256 empty", Keccak256(), "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"keccak256", Keccak256([]byte("abc")), "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
		{"keccak256 parts", Keccak256([]byte("a"), []byte("bc")), "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
		{
			"hmac-sha512",
			HMACSHA512([]byte("Jefe"), []byte("what do ya want for nothing?")),
			"164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
				"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hex.EncodeToString(tt.got); got != tt.want {
				t.Errorf("%s = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}
