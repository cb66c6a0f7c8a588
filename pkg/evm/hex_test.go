package evm

import (
	"testing"
)

func TestChainID_Normalize(t *testing.T) {
	cases := []struct {
		in   ChainID
		want ChainID
	}{
		{"0x1", "0x1"},
		{"0x01", "0x1"},
		{"0X01", "0x1"},
		{"0x0", "0x0"},
		{"0x00", "0x0"},
		{"0x89", "0x89"},
	}

	for _, c := range cases {
		if got := c.in.Normalize(); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestChainID_Equal(t *testing.T) {
	if !ChainID("0x1").Equal("0x01") {
		t.Error("0x1 should equal 0x01")
	}
	if ChainID("0x1").Equal("0x5") {
		t.Error("0x1 should not equal 0x5")
	}
}

func TestParseHexUint64(t *testing.T) {
	cases := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"0x0", 0, false},
		{"0x1", 1, false},
		{"0x10", 16, false},
		{"0xde0b6b3a7640000", 1000000000000000000, false},
		{"0xffffffffffffffff", ^uint64(0), false},
		{"0x10000000000000000", 0, true}, // 17 digits, overflows
		{"123", 0, true},                 // no prefix
		{"0x", 0, true},                  // no digits
		{"0xzz", 0, true},                // bad digit
	}

	for _, c := range cases {
		got, err := ParseHexUint64(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseHexUint64(%q) expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexUint64(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHexUint64(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseHexUint256(t *testing.T) {
	v, err := ParseHexUint256("0x2386f26fc10000") // 0.01 ether
	if err != nil {
		t.Fatalf("ParseHexUint256 failed: %v", err)
	}
	if v.Uint64() != 10000000000000000 {
		t.Errorf("got %s, want 10000000000000000", v.Dec())
	}

	if _, err := ParseHexUint256("10"); err == nil {
		t.Error("expected error for missing prefix")
	}
}

func TestEncodeUint64(t *testing.T) {
	if got := EncodeUint64(0); got != "0x0" {
		t.Errorf("EncodeUint64(0) = %q", got)
	}
	if got := EncodeUint64(255); got != "0xff" {
		t.Errorf("EncodeUint64(255) = %q", got)
	}
}

func TestParseEncodeRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 16, 1 << 40, ^uint64(0)} {
		got, err := ParseHexUint64(EncodeUint64(v))
		if err != nil {
			t.Fatalf("round trip %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d -> %d", v, got)
		}
	}
}
