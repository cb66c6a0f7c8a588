package domain

import (
	"fmt"
	"time"
)

// AttemptState is the lifecycle state of a mint submission.
type AttemptState int

const (
	AttemptIdle AttemptState = iota
	AttemptAwaitingSignature
	AttemptSubmitted
	AttemptConfirmed
	AttemptFailed
)

func (s AttemptState) String() string {
	switch s {
	case AttemptIdle:
		return "IDLE"
	case AttemptAwaitingSignature:
		return "AWAITING_SIGNATURE"
	case AttemptSubmitted:
		return "SUBMITTED"
	case AttemptConfirmed:
		return "CONFIRMED"
	case AttemptFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MintAttempt tracks one payable mint call. Transitions are monotonic:
// Idle -> AwaitingSignature -> Submitted -> Confirmed|Failed. The only
// backward move is Reset, and only when no attempt is in flight.
type MintAttempt struct {
	State        AttemptState `json:"state"`
	TxHash       string       `json:"tx_hash,omitempty"`
	BlockNumber  uint64       `json:"block_number,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	StartedUnixM int64        `json:"started_unix_m,omitempty"`
	EndedUnixM   int64        `json:"ended_unix_m,omitempty"`
}

// InFlight reports whether a new attempt may not start yet.
func (a *MintAttempt) InFlight() bool {
	return a.State == AttemptAwaitingSignature || a.State == AttemptSubmitted
}

// Terminal reports whether the attempt has reached a final state.
func (a *MintAttempt) Terminal() bool {
	return a.State == AttemptConfirmed || a.State == AttemptFailed
}

// Begin moves Idle (or a terminal state, implicitly reset) to AwaitingSignature.
func (a *MintAttempt) Begin() error {
	if a.InFlight() {
		return fmt.Errorf("attempt already in flight (%s)", a.State)
	}
	*a = MintAttempt{
		State:        AttemptAwaitingSignature,
		StartedUnixM: time.Now().UnixMicro(),
	}
	return nil
}

// MarkSubmitted records the transaction hash the moment the provider
// returns it, before any confirmation.
func (a *MintAttempt) MarkSubmitted(txHash string) error {
	if a.State != AttemptAwaitingSignature {
		return fmt.Errorf("cannot submit from %s", a.State)
	}
	a.State = AttemptSubmitted
	a.TxHash = txHash
	return nil
}

// MarkConfirmed finalizes a submitted attempt with its receipt block.
func (a *MintAttempt) MarkConfirmed(blockNumber uint64) error {
	if a.State != AttemptSubmitted {
		return fmt.Errorf("cannot confirm from %s", a.State)
	}
	a.State = AttemptConfirmed
	a.BlockNumber = blockNumber
	a.EndedUnixM = time.Now().UnixMicro()
	return nil
}

// MarkFailed finalizes the attempt with a human-readable reason.
// Valid from AwaitingSignature (rejection) and Submitted (reversion).
func (a *MintAttempt) MarkFailed(reason string) error {
	if !a.InFlight() {
		return fmt.Errorf("cannot fail from %s", a.State)
	}
	a.State = AttemptFailed
	a.Reason = reason
	a.EndedUnixM = time.Now().UnixMicro()
	return nil
}

// Reset returns to Idle. Rejected while an attempt is in flight: the
// underlying call was already signed and cannot be revoked.
func (a *MintAttempt) Reset() error {
	if a.InFlight() {
		return fmt.Errorf("cannot reset while %s", a.State)
	}
	*a = MintAttempt{}
	return nil
}
