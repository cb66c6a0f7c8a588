package event

import (
	"time"
)

// Type defines the kind of status event.
type Type uint16

const (
	EvProviderMissing Type = iota + 1
	EvConnected
	EvDisconnected
	EvAccountsChanged
	EvChainChanged
	EvNetworkSwitched
	EvReadsRefreshed
	EvReadsFailed
	EvMintSigning
	EvMintSubmitted
	EvMintConfirmed
	EvMintFailed
	EvMintRejected
	EvSwitchFailed
	EvConnectFailed
)

func (t Type) String() string {
	switch t {
	case EvProviderMissing:
		return "PROVIDER_MISSING"
	case EvConnected:
		return "CONNECTED"
	case EvDisconnected:
		return "DISCONNECTED"
	case EvAccountsChanged:
		return "ACCOUNTS_CHANGED"
	case EvChainChanged:
		return "CHAIN_CHANGED"
	case EvNetworkSwitched:
		return "NETWORK_SWITCHED"
	case EvReadsRefreshed:
		return "READS_REFRESHED"
	case EvReadsFailed:
		return "READS_FAILED"
	case EvMintSigning:
		return "MINT_SIGNING"
	case EvMintSubmitted:
		return "MINT_SUBMITTED"
	case EvMintConfirmed:
		return "MINT_CONFIRMED"
	case EvMintFailed:
		return "MINT_FAILED"
	case EvMintRejected:
		return "MINT_REJECTED"
	case EvSwitchFailed:
		return "SWITCH_FAILED"
	case EvConnectFailed:
		return "CONNECT_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Event is the interface for all journaled status events.
type Event interface {
	GetSeq() uint64
	GetTs() int64
	GetType() Type
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	Seq uint64 `json:"seq"`
	Ts  int64  `json:"ts"` // Unix microseconds
}

func (e BaseEvent) GetSeq() uint64 { return e.Seq }
func (e BaseEvent) GetTs() int64   { return e.Ts }

// StatusEvent is one line of the console's observable status feed.
// Every controller transition appends exactly one.
type StatusEvent struct {
	BaseEvent
	Kind    Type   `json:"kind"`
	Message string `json:"message"`
}

func (e StatusEvent) GetType() Type { return e.Kind }

// NewStatus stamps a status event with the given sequence and now.
func NewStatus(seq uint64, kind Type, message string) StatusEvent {
	return StatusEvent{
		BaseEvent: BaseEvent{Seq: seq, Ts: time.Now().UnixMicro()},
		Kind:      kind,
		Message:   message,
	}
}
