package evm

import (
	"strconv"
	"testing"
)

// FuzzParseHexUint64 verifies the parser never panics and agrees with
// strconv on well-formed inputs.
func FuzzParseHexUint64(f *testing.F) {
	f.Add("0x1")
	f.Add("0xde0b6b3a7640000")
	f.Add("0x")
	f.Add("garbage")
	f.Add("0x10000000000000000")

	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseHexUint64(s)
		if err != nil {
			return
		}
		// Cross-check against the standard library on accepted inputs.
		want, serr := strconv.ParseUint(s[2:], 16, 64)
		if serr != nil {
			t.Fatalf("accepted %q but strconv rejects it: %v", s, serr)
		}
		if got != want {
			t.Errorf("ParseHexUint64(%q) = %d, strconv = %d", s, got, want)
		}
	})
}

func FuzzChainIDNormalize(f *testing.F) {
	f.Add("0x1")
	f.Add("0x01")
	f.Add("")
	f.Add("0x")

	f.Fuzz(func(t *testing.T, s string) {
		n := ChainID(s).Normalize()
		// Normalization must be idempotent.
		if n.Normalize() != n {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", s, n, n.Normalize())
		}
	})
}
