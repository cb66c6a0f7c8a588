package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Invoker is the contract-call capability handed to the controller. It
// abstracts away whether calls run against a live wallet bridge or a
// test double.
type Invoker interface {
	// Name returns the collection name (read-only, no value attached).
	Name(ctx context.Context) (string, error)

	// Symbol returns the collection ticker symbol.
	Symbol(ctx context.Context) (string, error)

	// MintPrice returns the current mint price in wei.
	MintPrice(ctx context.Context) (*uint256.Int, error)

	// Mint submits the payable mint call with valueWei attached and
	// returns as soon as the transaction hash is known.
	Mint(ctx context.Context, from common.Address, valueWei *uint256.Int) (Pending, error)
}

// Pending is a submitted, unconfirmed transaction.
type Pending interface {
	// TxHash is available immediately after submission.
	TxHash() string

	// Wait blocks until a receipt is available or ctx is done.
	Wait(ctx context.Context) (*Receipt, error)
}

// Receipt is the outcome of a mined transaction. EffectiveGasPrice is
// nil when the bridge omits it (pre-1559 nodes).
type Receipt struct {
	TxHash            string
	Status            uint64
	BlockNumber       uint64
	EffectiveGasPrice *uint256.Int
}

// Succeeded reports whether the transaction executed without reverting.
func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}
