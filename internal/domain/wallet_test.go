package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func TestWalletSnapshot_Connected(t *testing.T) {
	var s WalletSnapshot
	if s.Connected() {
		t.Error("empty snapshot should not be connected")
	}

	addr := common.HexToAddress("0xAbCd000000000000000000000000000000001234")
	s.Address = &addr
	if !s.Connected() {
		t.Error("snapshot with address should be connected")
	}
}

func TestWalletSnapshot_OnChain(t *testing.T) {
	s := WalletSnapshot{ChainID: "0x01"}
	if !s.OnChain("0x1") {
		t.Error("0x01 should match required 0x1")
	}
	if s.OnChain("0x5") {
		t.Error("0x01 should not match 0x5")
	}

	var empty WalletSnapshot
	if empty.OnChain("0x1") {
		t.Error("unknown chain should never match")
	}
}

func TestWalletSnapshot_ShortAddress(t *testing.T) {
	addr := common.HexToAddress("0xAbCd000000000000000000000000000000001234")
	s := WalletSnapshot{Address: &addr}
	got := s.ShortAddress()
	if len(got) != 6+len("…")+4 {
		t.Errorf("unexpected short form %q", got)
	}
	if (WalletSnapshot{}).ShortAddress() != "" {
		t.Error("disconnected snapshot should render empty address")
	}
}

func TestContractReadCache_Validity(t *testing.T) {
	var c ContractReadCache
	if c.HasPrice() {
		t.Error("empty cache should have no price")
	}
	if c.ValidFor("0x1") {
		t.Error("empty cache should not be valid")
	}

	c = ContractReadCache{
		CollectionName: "Oracle Vision",
		Symbol:         "ORCL",
		MintPriceWei:   uint256.NewInt(10000000000000000),
		ChainID:        "0x1",
	}
	if !c.HasPrice() || !c.ValidFor("0x01") {
		t.Errorf("cache should be valid on 0x01: %+v", c)
	}
	if c.ValidFor("0x89") {
		t.Error("cache read on 0x1 must not validate for 0x89")
	}
	if c.PriceDisplay() != "0.01" {
		t.Errorf("PriceDisplay = %q, want 0.01", c.PriceDisplay())
	}
}

func TestContractReadCache_CloneIsDeep(t *testing.T) {
	c := ContractReadCache{MintPriceWei: uint256.NewInt(5)}
	cp := c.Clone()
	cp.MintPriceWei.SetUint64(99)
	if c.MintPriceWei.Uint64() != 5 {
		t.Error("Clone must not share the price pointer")
	}
}
