package evm

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// ChainID is a 0x-prefixed hex chain identifier (e.g. "0x1").
type ChainID string

// Normalize strips leading zeros so "0x01" and "0x1" compare equal.
func (c ChainID) Normalize() ChainID {
	s := strings.ToLower(string(c))
	if !strings.HasPrefix(s, "0x") {
		return ChainID(s)
	}
	digits := strings.TrimLeft(s[2:], "0")
	if digits == "" {
		digits = "0"
	}
	return ChainID("0x" + digits)
}

// Equal compares two chain IDs after normalization.
func (c ChainID) Equal(other ChainID) bool {
	return c.Normalize() == other.Normalize()
}

func (c ChainID) String() string { return string(c) }

// ParseHexUint64 parses a 0x-prefixed quantity into uint64.
// Rejects values that do not fit (receipts never carry block numbers that large).
func ParseHexUint64(s string) (uint64, error) {
	hex, err := quantityDigits(s)
	if err != nil {
		return 0, err
	}
	if len(hex) > 16 {
		return 0, fmt.Errorf("quantity %q overflows uint64", s)
	}
	var v uint64
	for _, ch := range []byte(hex) {
		n, err := nibble(ch)
		if err != nil {
			return 0, fmt.Errorf("quantity %q: %w", s, err)
		}
		v = v<<4 | uint64(n)
	}
	return v, nil
}

// ParseHexUint256 parses a 0x-prefixed quantity into a uint256.
// This is the wire format for wei amounts returned by eth_call.
func ParseHexUint256(s string) (*uint256.Int, error) {
	hex, err := quantityDigits(s)
	if err != nil {
		return nil, err
	}
	v, err := uint256.FromHex("0x" + hex)
	if err != nil {
		return nil, fmt.Errorf("quantity %q: %w", s, err)
	}
	return v, nil
}

// EncodeUint64 renders v as a minimal 0x quantity ("0x0" for zero).
func EncodeUint64(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func quantityDigits(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", fmt.Errorf("quantity %q missing 0x prefix", s)
	}
	digits := strings.ToLower(s[2:])
	if digits == "" {
		return "", fmt.Errorf("quantity %q has no digits", s)
	}
	return digits, nil
}

func nibble(ch byte) (byte, error) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', nil
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", ch)
	}
}
