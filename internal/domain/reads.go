package domain

import (
	"github.com/holiman/uint256"

	"github.com/vamuq999/oracle.vision.v4/pkg/evm"
)

// ContractReadCache holds the last successful read-only contract state.
// Stale-is-better-than-blank: a failed refresh never clears these values.
type ContractReadCache struct {
	CollectionName string        `json:"collection_name"`
	Symbol         string        `json:"symbol"`
	MintPriceWei   *uint256.Int  `json:"mint_price_wei,omitempty"`
	UpdatedUnixM   int64         `json:"updated_unix_m"`
	ChainID        evm.ChainID   `json:"chain_id"`
}

// HasPrice reports whether a mint price has ever been read.
func (c ContractReadCache) HasPrice() bool {
	return c.MintPriceWei != nil
}

// ValidFor reports whether the cache was read on the given chain.
// Reads taken on another chain must not gate mint submission.
func (c ContractReadCache) ValidFor(required evm.ChainID) bool {
	return c.ChainID != "" && c.ChainID.Equal(required)
}

// PriceDisplay formats the cached price in ether for the view layer.
func (c ContractReadCache) PriceDisplay() string {
	return evm.FormatEther(c.MintPriceWei)
}

// Clone returns a deep copy safe to hand to the presentation layer.
func (c ContractReadCache) Clone() ContractReadCache {
	out := c
	if c.MintPriceWei != nil {
		out.MintPriceWei = new(uint256.Int).Set(c.MintPriceWei)
	}
	return out
}
