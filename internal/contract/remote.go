package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/provider"
	"github.com/vamuq999/oracle.vision.v4/pkg/evm"
)

// RemoteInvoker executes contract calls through the wallet provider.
type RemoteInvoker struct {
	prov        provider.Provider
	address     common.Address
	priceMethod string
	mintMethod  string
	mintQty     *uint256.Int
	pollEvery   time.Duration
	logger      *slog.Logger
}

var _ Invoker = (*RemoteInvoker)(nil)

// NewRemoteInvoker wires the invoker from config. mintQty is only used
// when the configured mint method takes a uint256 argument.
func NewRemoteInvoker(prov provider.Provider, cfg *infra.Config, logger *slog.Logger) *RemoteInvoker {
	return &RemoteInvoker{
		prov:        prov,
		address:     cfg.ContractAddress(),
		priceMethod: cfg.Contract.PriceMethod,
		mintMethod:  cfg.Contract.MintMethod,
		mintQty:     uint256.NewInt(cfg.Contract.MintQuantity),
		pollEvery:   time.Duration(cfg.Console.ReceiptPollMS) * time.Millisecond,
		logger:      logger.With("contract", cfg.Contract.Address),
	}
}

func (i *RemoteInvoker) Name(ctx context.Context) (string, error) {
	ret, err := i.ethCall(ctx, "name()")
	if err != nil {
		return "", err
	}
	return DecodeString(ret)
}

func (i *RemoteInvoker) Symbol(ctx context.Context) (string, error) {
	ret, err := i.ethCall(ctx, "symbol()")
	if err != nil {
		return "", err
	}
	return DecodeString(ret)
}

func (i *RemoteInvoker) MintPrice(ctx context.Context) (*uint256.Int, error) {
	ret, err := i.ethCall(ctx, i.priceMethod)
	if err != nil {
		return nil, err
	}
	return DecodeUint256(ret)
}

// Mint submits the payable call. The returned Pending carries the
// transaction hash before any confirmation exists.
func (i *RemoteInvoker) Mint(ctx context.Context, from common.Address, valueWei *uint256.Int) (Pending, error) {
	var arg *uint256.Int
	if i.mintMethod != "" && !isZeroArg(i.mintMethod) {
		arg = i.mintQty
	}
	data, err := EncodeCall(i.mintMethod, arg)
	if err != nil {
		return nil, err
	}

	params := []any{map[string]any{
		"from":  from.Hex(),
		"to":    i.address.Hex(),
		"value": valueWei.Hex(),
		"data":  data,
	}}

	result, err := i.prov.Request(ctx, provider.MethodSendTransaction, params)
	if err != nil {
		return nil, err
	}

	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return nil, fmt.Errorf("decode tx hash: %w", err)
	}

	i.logger.Info("Mint transaction submitted", "tx", txHash, "value_wei", valueWei.Dec())
	return &pendingTx{invoker: i, hash: txHash}, nil
}

func (i *RemoteInvoker) ethCall(ctx context.Context, sig string) ([]byte, error) {
	data, err := EncodeCall(sig, nil)
	if err != nil {
		return nil, err
	}

	params := []any{
		map[string]any{"to": i.address.Hex(), "data": data},
		"latest",
	}
	result, err := i.prov.Request(ctx, provider.MethodCall, params)
	if err != nil {
		return nil, err
	}

	var retHex string
	if err := json.Unmarshal(result, &retHex); err != nil {
		return nil, fmt.Errorf("decode %s return: %w", sig, err)
	}
	return hexutil.Decode(retHex)
}

// receiptPayload is the wire shape of eth_getTransactionReceipt.
type receiptPayload struct {
	TransactionHash   string `json:"transactionHash"`
	Status            string `json:"status"`
	BlockNumber       string `json:"blockNumber"`
	EffectiveGasPrice string `json:"effectiveGasPrice"`
}

type pendingTx struct {
	invoker *RemoteInvoker
	hash    string
}

func (p *pendingTx) TxHash() string { return p.hash }

// Wait polls for the receipt. A missing receipt keeps polling at the
// configured interval; transport errors back off exponentially.
func (p *pendingTx) Wait(ctx context.Context) (*Receipt, error) {
	retry := 0
	for {
		result, err := p.invoker.prov.Request(ctx, provider.MethodGetReceipt, []any{p.hash})
		if err != nil {
			delay := infra.CalculateBackoff(retry)
			retry++
			p.invoker.logger.Warn("Receipt poll failed", "tx", p.hash, "err", err, "retry_in", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		retry = 0

		if len(result) == 0 || string(result) == "null" {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.invoker.pollEvery):
				continue
			}
		}

		var payload receiptPayload
		if err := json.Unmarshal(result, &payload); err != nil {
			return nil, fmt.Errorf("decode receipt: %w", err)
		}

		status, err := evm.ParseHexUint64(payload.Status)
		if err != nil {
			return nil, fmt.Errorf("receipt status: %w", err)
		}
		block, err := evm.ParseHexUint64(payload.BlockNumber)
		if err != nil {
			return nil, fmt.Errorf("receipt block number: %w", err)
		}

		var gasPrice *uint256.Int
		if payload.EffectiveGasPrice != "" {
			gasPrice, err = evm.ParseHexUint256(payload.EffectiveGasPrice)
			if err != nil {
				return nil, fmt.Errorf("receipt gas price: %w", err)
			}
		}

		p.invoker.logger.Info("Receipt received",
			"tx", p.hash, "block", block, "status", status)

		return &Receipt{
			TxHash:            p.hash,
			Status:            status,
			BlockNumber:       block,
			EffectiveGasPrice: gasPrice,
		}, nil
	}
}

func isZeroArg(sig string) bool {
	return len(sig) >= 2 && sig[len(sig)-2:] == "()"
}
