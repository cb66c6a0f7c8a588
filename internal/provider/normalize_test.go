package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vamuq999/oracle.vision.v4/internal/domain"
	"github.com/vamuq999/oracle.vision.v4/internal/provider/rpc"
)

func TestNormalize_Code4001(t *testing.T) {
	err := Normalize(&rpc.RPCError{Code: rpc.CodeUserRejected, Message: "User rejected the request."})
	if err.Code != domain.ErrUserRejected {
		t.Errorf("code = %s", err.Code)
	}
	if err.Reason != domain.ReasonUserRejected {
		t.Errorf("reason = %q", err.Reason)
	}
}

func TestNormalize_TextualRejection(t *testing.T) {
	cases := []error{
		&rpc.RPCError{Code: -32000, Message: "MetaMask Tx Signature: User denied transaction signature."},
		errors.New("user rejected signing"),
	}
	for _, in := range cases {
		if got := Normalize(in); got.Code != domain.ErrUserRejected {
			t.Errorf("Normalize(%v) = %s, want USER_REJECTED", in, got.Code)
		}
	}
}

func TestNormalize_UnrecognizedChain(t *testing.T) {
	err := Normalize(&rpc.RPCError{Code: rpc.CodeUnrecognizedChain, Message: "Unrecognized chain ID"})
	if err.Code != domain.ErrUnsupportedChain {
		t.Errorf("code = %s", err.Code)
	}
}

func TestNormalize_Disconnected(t *testing.T) {
	err := Normalize(&rpc.RPCError{Code: rpc.CodeDisconnected, Message: "Provider is disconnected"})
	if err.Code != domain.ErrProviderMissing {
		t.Errorf("code = %s", err.Code)
	}
}

func TestNormalize_PassesThroughFlowErrors(t *testing.T) {
	orig := domain.NewFlowError(domain.ErrWrongNetwork, "on 0x5")
	if got := Normalize(fmt.Errorf("wrapped: %w", orig)); got != orig {
		t.Error("existing FlowError should pass through unchanged")
	}
}

func TestNormalize_Unknown(t *testing.T) {
	got := Normalize(errors.New("connection reset by peer"))
	if got.Code != domain.ErrUnknown {
		t.Errorf("code = %s", got.Code)
	}
	if got.Reason != "connection reset by peer" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestNormalize_Nil(t *testing.T) {
	if Normalize(nil) != nil {
		t.Error("Normalize(nil) should be nil")
	}
}
