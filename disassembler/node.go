package disassembler

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAddress parses a 16-bit address written as $hex, 0xhex or decimal.
func ParseAddress(s string) (uint16, error) {
	v, err := parseNumber(s, 0xFFFF)
	return uint16(v), err
}

// ParseByte parses an 8-bit value in the same notations as ParseAddress.
func ParseByte(s string) (uint8, error) {
	v, err := parseNumber(s, 0xFF)
	return uint8(v), err
}

func parseNumber(s string, limit uint64) (uint64, error) {
	op := strings.TrimSpace(s)
	if op == "" {
		return 0, fmt.Errorf("empty number")
	}

	base := 10
	switch {
	case strings.HasPrefix(op, "$"):
		op = op[1:]
		base = 16
	case strings.HasPrefix(strings.ToLower(op), "0x"):
		op = op[2:]
		base = 16
	}

	v, err := strconv.ParseUint(op, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v > limit {
		return 0, fmt.Errorf("%q exceeds $%X", s, limit)
	}
	return v, nil
}
