package evm

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestFormatEther(t *testing.T) {
	cases := []struct {
		wei  uint64
		want string
	}{
		{0, "0"},
		{1000000000000000000, "1"},
		{10000000000000000, "0.01"},
		{1500000000000000000, "1.5"},
		{1, "0.000000000000000001"},
	}

	for _, c := range cases {
		got := FormatEther(uint256.NewInt(c.wei))
		if got != c.want {
			t.Errorf("FormatEther(%d) = %q, want %q", c.wei, got, c.want)
		}
	}

	if got := FormatEther(nil); got != "0" {
		t.Errorf("FormatEther(nil) = %q", got)
	}
}

func TestFormatEtherFixed(t *testing.T) {
	got := FormatEtherFixed(uint256.NewInt(10000000000000000), 4)
	if got != "0.0100" {
		t.Errorf("FormatEtherFixed = %q, want 0.0100", got)
	}
	if got := FormatEtherFixed(nil, 2); got != "0.00" {
		t.Errorf("FormatEtherFixed(nil) = %q", got)
	}
}
