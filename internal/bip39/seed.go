package bip39

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/klingon-exchange/klingon-hd/internal/pbkdf2"
)

// HashFunction selects the hash used by an HMAC step.
type HashFunction int

const (
	SHA512 HashFunction = iota
	SHA256
)

// New returns a constructor for the selected hash.
func (h HashFunction) New() func() hash.Hash {
	switch h {
	case SHA512:
		return sha512.New
	case SHA256:
		return sha256.New
	default:
		panic(fmt.Sprintf("bip39: unknown hash function %d", int(h)))
	}
}

func (h HashFunction) String() string {
	switch h {
	case SHA512:
		return "sha512"
	case SHA256:
		return "sha256"
	default:
		return fmt.Sprintf("HashFunction(%d)", int(h))
	}
}

// Step is one stage of a seed derivation pipeline. The only implementations
// are HMACStep and PKCS5Step.
type Step interface {
	isStep()
}

// HMACStep replaces the running value v with HMAC(key=v, message=empty).
type HMACStep struct {
	Hash HashFunction
}

// PKCS5Step replaces the running value v with
// PBKDF2-HMAC-SHA512(password=v, salt=trim(Salt+Password), Iterations, KeyLength).
type PKCS5Step struct {
	Salt       string
	Password   string
	Iterations int
	KeyLength  int
}

func (HMACStep) isStep()  {}
func (PKCS5Step) isStep() {}

// SeedAlgorithm is a named, ordered pipeline of steps turning mnemonic words
// into seed bytes. Steps run strictly left to right.
type SeedAlgorithm struct {
	Name  string
	Steps []Step
}

// NewSeedAlgorithm returns a pipeline running steps in order.
func NewSeedAlgorithm(name string, steps ...Step) *SeedAlgorithm {
	return &SeedAlgorithm{Name: name, Steps: append([]Step(nil), steps...)}
}

// Standard BIP39 seed parameters.
const (
	StandardSalt       = "mnemonic"
	StandardIterations = 2048
	StandardKeyLength  = 64
)

// TON seed parameters.
const (
	TONSalt       = "TON default seed"
	TONIterations = 100_000
	TONKeyLength  = 32
)

// Pipeline names accepted by SeedAlgorithmByName.
const (
	AlgorithmBIP39 = "bip39"
	AlgorithmTON   = "ton"
)

// StandardSeed is the BIP39 seed derivation: a single PBKDF2 step with salt
// "mnemonic"+password, 2048 iterations and a 64-byte output.
func StandardSeed(password string) *SeedAlgorithm {
	return StandardSeedWithParams(password, StandardIterations, StandardKeyLength)
}

// StandardSeedWithParams is StandardSeed with explicit PBKDF2 parameters.
func StandardSeedWithParams(password string, iterations, keyLength int) *SeedAlgorithm {
	return NewSeedAlgorithm(AlgorithmBIP39, PKCS5Step{
		Salt:       StandardSalt,
		Password:   password,
		Iterations: iterations,
		KeyLength:  keyLength,
	})
}

// TONSeed is the TON pipeline: HMAC-SHA512 followed by PBKDF2 with salt
// "TON default seed", 100000 iterations and a 32-byte output.
func TONSeed() *SeedAlgorithm {
	return TONSeedWithParams(TONIterations, TONKeyLength)
}

// TONSeedWithParams is TONSeed with explicit PBKDF2 parameters.
func TONSeedWithParams(iterations, keyLength int) *SeedAlgorithm {
	return NewSeedAlgorithm(AlgorithmTON,
		HMACStep{Hash: SHA512},
		PKCS5Step{
			Salt:       TONSalt,
			Iterations: iterations,
			KeyLength:  keyLength,
		},
	)
}

// SeedAlgorithmByName resolves a named pipeline. Zero iterations or keyLength
// keep the pipeline defaults; password only applies to the BIP39 pipeline.
func SeedAlgorithmByName(name, password string, iterations, keyLength int) (*SeedAlgorithm, error) {
	switch name {
	case AlgorithmBIP39, "":
		if iterations == 0 {
			iterations = StandardIterations
		}
		if keyLength == 0 {
			keyLength = StandardKeyLength
		}
		return StandardSeedWithParams(password, iterations, keyLength), nil
	case AlgorithmTON:
		if iterations == 0 {
			iterations = TONIterations
		}
		if keyLength == 0 {
			keyLength = TONKeyLength
		}
		return TONSeedWithParams(iterations, keyLength), nil
	default:
		return nil, fmt.Errorf("unknown seed algorithm: %s", name)
	}
}

// Derive runs the pipeline over the UTF-8 bytes of the trimmed, space-joined words.
func (a *SeedAlgorithm) Derive(words []string) []byte {
	value := []byte(strings.TrimSpace(strings.Join(words, " ")))

	for _, step := range a.Steps {
		switch s := step.(type) {
		case HMACStep:
			mac := hmac.New(s.Hash.New(), value)
			value = mac.Sum(nil)
		case PKCS5Step:
			salt := strings.TrimSpace(s.Salt + s.Password)
			value = pbkdf2.Key(sha512.New, value, []byte(salt), s.Iterations, s.KeyLength)
		default:
			panic(fmt.Sprintf("bip39: unknown seed step %T", step))
		}
	}

	return value
}
