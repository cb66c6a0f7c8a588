package provider

import (
	"errors"
	"strings"

	"github.com/vamuq999/oracle.vision.v4/internal/domain"
	"github.com/vamuq999/oracle.vision.v4/internal/provider/rpc"
)

// Normalize converts a raw provider/transport error into the fixed
// console taxonomy. All classification of loose provider error shapes
// happens here, at the boundary, and nowhere else.
func Normalize(err error) *domain.FlowError {
	if err == nil {
		return nil
	}

	var fe *domain.FlowError
	if errors.As(err, &fe) {
		return fe
	}

	var rpcErr *rpc.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case rpc.CodeUserRejected:
			return domain.NewFlowError(domain.ErrUserRejected, domain.ReasonUserRejected)
		case rpc.CodeUnrecognizedChain:
			return domain.NewFlowError(domain.ErrUnsupportedChain, "The wallet does not know the requested chain.")
		case rpc.CodeDisconnected, rpc.CodeChainDisconnected:
			return domain.NewFlowError(domain.ErrProviderMissing, "The wallet provider is disconnected.")
		}
		if isUserRejectedText(rpcErr.Message) {
			return domain.NewFlowError(domain.ErrUserRejected, domain.ReasonUserRejected)
		}
		return domain.NewFlowError(domain.ErrUnknown, rpcErr.Message)
	}

	if isUserRejectedText(err.Error()) {
		return domain.NewFlowError(domain.ErrUserRejected, domain.ReasonUserRejected)
	}

	return domain.NewFlowError(domain.ErrUnknown, err.Error())
}

// isUserRejectedText catches providers that signal rejection only in
// prose, without the 4001 code.
func isUserRejectedText(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "user rejected") || strings.Contains(m, "user denied")
}
