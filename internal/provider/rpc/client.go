package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vamuq999/oracle.vision.v4/internal/infra"
)

// Client speaks JSON-RPC 2.0 over HTTP to the wallet bridge. A circuit
// breaker isolates a dead bridge so the console degrades to status
// messages instead of hammering a refusing endpoint.
type Client struct {
	httpClient *http.Client
	rpcURL     string
	authToken  string
	requestID  atomic.Int64
	breaker    *infra.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a client for the given endpoint. authToken may be
// empty for unauthenticated local bridges.
func NewClient(rpcURL, authToken string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rpcURL:     rpcURL,
		authToken:  authToken,
		breaker:    infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig("wallet-bridge")),
		logger:     logger,
	}
}

// Call issues one JSON-RPC request and returns the raw result.
// Provider-side errors come back as *RPCError.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !c.breaker.Allow() {
		return nil, fmt.Errorf("wallet bridge unavailable (circuit open)")
	}

	result, err := c.call(ctx, method, params)
	if err != nil {
		// A rejection from the human is a healthy bridge, not a fault.
		if _, isRPC := err.(*RPCError); isRPC {
			c.breaker.RecordSuccess()
		} else {
			c.breaker.RecordFailure()
		}
		return nil, err
	}

	c.breaker.RecordSuccess()
	return result, nil
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	id := int(c.requestID.Add(1))
	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp Response
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if rpcResp.Error != nil {
		c.logger.Debug("rpc error", "method", method, "code", rpcResp.Error.Code, "msg", rpcResp.Error.Message)
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}
