package contract

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// MockInvoker is a configurable test double. Zero value returns fixed
// collection data and confirms every mint.
type MockInvoker struct {
	mu sync.Mutex

	NameValue   string
	SymbolValue string
	PriceWei    *uint256.Int

	NameErr   error
	SymbolErr error
	PriceErr  error
	MintErr   error

	// ReceiptStatus controls the mined outcome (1 success, 0 revert).
	ReceiptStatus uint64
	ReceiptBlock  uint64
	WaitErr       error

	// Submissions records every Mint call for assertions.
	Submissions []MockSubmission
}

// MockSubmission captures the arguments of one Mint call.
type MockSubmission struct {
	From     common.Address
	ValueWei *uint256.Int
}

var _ Invoker = (*MockInvoker)(nil)

// NewMockInvoker returns a double with sensible collection defaults.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{
		NameValue:     "Oracle Vision",
		SymbolValue:   "ORCL",
		PriceWei:      uint256.NewInt(10000000000000000), // 0.01 ether
		ReceiptStatus: 1,
		ReceiptBlock:  100,
	}
}

func (m *MockInvoker) Name(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.NameValue, m.NameErr
}

func (m *MockInvoker) Symbol(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SymbolValue, m.SymbolErr
}

func (m *MockInvoker) MintPrice(ctx context.Context) (*uint256.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PriceErr != nil {
		return nil, m.PriceErr
	}
	return new(uint256.Int).Set(m.PriceWei), nil
}

func (m *MockInvoker) Mint(ctx context.Context, from common.Address, valueWei *uint256.Int) (Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MintErr != nil {
		return nil, m.MintErr
	}
	m.Submissions = append(m.Submissions, MockSubmission{
		From:     from,
		ValueWei: new(uint256.Int).Set(valueWei),
	})
	return &mockPending{parent: m, hash: "0xmock"}, nil
}

// SetPrice swaps the advertised price (thread-safe).
func (m *MockInvoker) SetPrice(wei *uint256.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PriceWei = new(uint256.Int).Set(wei)
}

type mockPending struct {
	parent *MockInvoker
	hash   string
}

func (p *mockPending) TxHash() string { return p.hash }

func (p *mockPending) Wait(ctx context.Context) (*Receipt, error) {
	p.parent.mu.Lock()
	defer p.parent.mu.Unlock()
	if p.parent.WaitErr != nil {
		return nil, p.parent.WaitErr
	}
	return &Receipt{
		TxHash:      p.hash,
		Status:      p.parent.ReceiptStatus,
		BlockNumber: p.parent.ReceiptBlock,
	}, nil
}
