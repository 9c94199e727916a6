package base58

import (
	"errors"

	"github.com/klingon-exchange/klingon-hd/pkg/helpers"
)

// ChecksumSize is the number of checksum bytes appended by CheckEncode.
const ChecksumSize = 4

// ErrChecksum indicates that the checksum of a check-encoded string does not
// verify against the payload.
var ErrChecksum = errors.New("checksum error")

// ErrInvalidFormat indicates the decoded string is too short to hold a checksum.
var ErrInvalidFormat = errors.New("invalid format: checksum bytes missing")

// checksum: first four bytes of sha256^2
func checksum(input []byte) []byte {
	return helpers.DoubleSHA256(input)[:ChecksumSize]
}

// CheckEncode appends a four byte checksum to payload and base-58 encodes the result.
func CheckEncode(payload []byte) string {
	return Encode(helpers.Concat(payload, checksum(payload)))
}

// CheckDecode decodes a string produced by CheckEncode, verifies the trailing
// checksum and returns the payload without it.
func CheckDecode(s string) ([]byte, error) {
	decoded, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < ChecksumSize {
		return nil, ErrInvalidFormat
	}

	payload := decoded[:len(decoded)-ChecksumSize]
	if !helpers.ConstantTimeCompare(checksum(payload), decoded[len(decoded)-ChecksumSize:]) {
		return nil, ErrChecksum
	}
	return payload, nil
}
