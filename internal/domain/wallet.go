package domain

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/vamuq999/oracle.vision.v4/pkg/evm"
)

// WalletSnapshot is the last observed account/network state of the wallet.
// Refreshed on connect, on provider-pushed change events, and on demand.
type WalletSnapshot struct {
	Address *common.Address `json:"address,omitempty"`
	ChainID evm.ChainID     `json:"chain_id"`
}

// Connected reports whether an account is currently exposed.
func (s WalletSnapshot) Connected() bool {
	return s.Address != nil
}

// OnChain reports whether the wallet sits on the required chain.
func (s WalletSnapshot) OnChain(required evm.ChainID) bool {
	return s.ChainID != "" && s.ChainID.Equal(required)
}

// ShortAddress returns a truncated display form ("0xAbCd…1234").
func (s WalletSnapshot) ShortAddress() string {
	if s.Address == nil {
		return ""
	}
	hex := s.Address.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}
