// Package provider models the injected wallet surface the browser would
// normally supply: request/response calls plus pushed account and chain
// change notifications. The controller only ever sees this interface,
// never a concrete transport.
package provider

import (
	"context"
	"encoding/json"
)

// Wallet methods the console issues.
const (
	MethodAccounts        = "eth_accounts"
	MethodRequestAccounts = "eth_requestAccounts"
	MethodChainID         = "eth_chainId"
	MethodSwitchChain     = "wallet_switchEthereumChain"
	MethodCall            = "eth_call"
	MethodSendTransaction = "eth_sendTransaction"
	MethodGetReceipt      = "eth_getTransactionReceipt"
)

// Pushed event names.
const (
	EventAccountsChanged = "accountsChanged"
	EventChainChanged    = "chainChanged"
)

// Handler receives the raw payload of a pushed event.
type Handler func(payload json.RawMessage)

// Unsubscribe removes a previously registered handler.
type Unsubscribe func()

// Provider is the EIP-1193-shaped wallet capability handed to the
// controller at construction. Implementations must be safe for
// concurrent use.
type Provider interface {
	// Request issues one wallet method call.
	Request(ctx context.Context, method string, params any) (json.RawMessage, error)

	// Subscribe registers a handler for a pushed event. Handlers may be
	// invoked from the transport goroutine at any time.
	Subscribe(event string, h Handler) Unsubscribe
}
