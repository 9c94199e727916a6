package helpers

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes decodes user-supplied hex. Surrounding whitespace and a 0x/0X
// prefix are ignored.
func HexToBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}
