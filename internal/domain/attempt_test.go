package domain

import (
	"testing"
)

func TestMintAttempt_HappyPath(t *testing.T) {
	var a MintAttempt

	if a.InFlight() {
		t.Fatal("fresh attempt should not be in flight")
	}

	if err := a.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if a.State != AttemptAwaitingSignature || !a.InFlight() {
		t.Fatalf("expected AWAITING_SIGNATURE in flight, got %s", a.State)
	}

	if err := a.MarkSubmitted("0xabc"); err != nil {
		t.Fatalf("MarkSubmitted failed: %v", err)
	}
	if a.TxHash != "0xabc" || !a.InFlight() {
		t.Fatalf("tx hash not recorded: %+v", a)
	}

	if err := a.MarkConfirmed(123); err != nil {
		t.Fatalf("MarkConfirmed failed: %v", err)
	}
	if a.State != AttemptConfirmed || a.BlockNumber != 123 {
		t.Fatalf("unexpected final state: %+v", a)
	}
	if a.InFlight() {
		t.Error("confirmed attempt should not be in flight")
	}
}

func TestMintAttempt_RejectsSecondInFlight(t *testing.T) {
	var a MintAttempt
	if err := a.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := a.Begin(); err == nil {
		t.Error("second Begin should fail while AWAITING_SIGNATURE")
	}
	if err := a.MarkSubmitted("0x1"); err != nil {
		t.Fatalf("MarkSubmitted failed: %v", err)
	}
	if err := a.Begin(); err == nil {
		t.Error("second Begin should fail while SUBMITTED")
	}
}

func TestMintAttempt_FailureFromEitherInFlightState(t *testing.T) {
	var a MintAttempt
	a.Begin()
	if err := a.MarkFailed(ReasonUserRejected); err != nil {
		t.Fatalf("MarkFailed from AWAITING_SIGNATURE: %v", err)
	}
	if a.Reason != ReasonUserRejected {
		t.Errorf("reason = %q", a.Reason)
	}

	// A failed attempt allows a new Begin (implicit reset).
	if err := a.Begin(); err != nil {
		t.Fatalf("Begin after failure: %v", err)
	}
	a.MarkSubmitted("0x2")
	if err := a.MarkFailed("Transaction reverted on chain."); err != nil {
		t.Fatalf("MarkFailed from SUBMITTED: %v", err)
	}
}

func TestMintAttempt_MonotonicGuards(t *testing.T) {
	var a MintAttempt
	if err := a.MarkSubmitted("0x1"); err == nil {
		t.Error("MarkSubmitted from IDLE should fail")
	}
	if err := a.MarkConfirmed(1); err == nil {
		t.Error("MarkConfirmed from IDLE should fail")
	}
	if err := a.MarkFailed("x"); err == nil {
		t.Error("MarkFailed from IDLE should fail")
	}

	a.Begin()
	if err := a.MarkConfirmed(1); err == nil {
		t.Error("MarkConfirmed must come after MarkSubmitted")
	}
	if err := a.Reset(); err == nil {
		t.Error("Reset while in flight should fail")
	}

	a.MarkSubmitted("0x1")
	a.MarkConfirmed(7)
	if err := a.Reset(); err != nil {
		t.Errorf("Reset after terminal state: %v", err)
	}
	if a.State != AttemptIdle {
		t.Errorf("state after reset = %s", a.State)
	}
}

func TestAttemptState_String(t *testing.T) {
	if AttemptAwaitingSignature.String() != "AWAITING_SIGNATURE" {
		t.Error("unexpected state string")
	}
	if AttemptState(99).String() != "UNKNOWN" {
		t.Error("out-of-range state should be UNKNOWN")
	}
}
