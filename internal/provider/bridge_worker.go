package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vamuq999/oracle.vision.v4/internal/infra"
)

// bridgeFrame is one pushed notification from the wallet bridge.
type bridgeFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// subscribeOp is sent once per connection to select the event stream.
type subscribeOp struct {
	Op     string   `json:"op"`
	Events []string `json:"events"`
	Token  string   `json:"token,omitempty"`
}

// BridgeWorker maintains the websocket stream of pushed wallet events
// (accountsChanged, chainChanged) on top of the generic BaseWSWorker.
type BridgeWorker struct {
	base     *infra.BaseWSWorker
	url      string
	token    string
	dispatch func(event string, payload json.RawMessage)
}

// NewBridgeWorker creates the push-event worker. dispatch is invoked
// from the read goroutine for every recognized frame.
func NewBridgeWorker(url, token string, dispatch func(string, json.RawMessage)) *BridgeWorker {
	w := &BridgeWorker{
		url:      url,
		token:    token,
		dispatch: dispatch,
	}
	w.base = infra.NewBaseWSWorker(w)
	return w
}

// ID returns the worker identifier.
func (w *BridgeWorker) ID() string { return "WALLET_BRIDGE" }

// GetURL returns the bridge websocket endpoint.
func (w *BridgeWorker) GetURL() string { return w.url }

// Start begins the connection loop.
func (w *BridgeWorker) Start(ctx context.Context) { w.base.Start(ctx) }

// Stop terminates the worker.
func (w *BridgeWorker) Stop() { w.base.Stop() }

// OnConnect subscribes to the wallet change events.
func (w *BridgeWorker) OnConnect(ctx context.Context, conn *websocket.Conn) error {
	op := subscribeOp{
		Op:     "subscribe",
		Events: []string{EventAccountsChanged, EventChainChanged},
		Token:  w.token,
	}
	payload, err := json.Marshal(op)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// OnMessage parses a pushed frame and dispatches it.
func (w *BridgeWorker) OnMessage(ctx context.Context, msg []byte) {
	var frame bridgeFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		slog.Warn("Bridge frame parse error", "err", err)
		return
	}

	switch frame.Event {
	case EventAccountsChanged, EventChainChanged:
		w.dispatch(frame.Event, frame.Data)
	case "":
		// Subscription acks and keepalives carry no event name.
	default:
		slog.Debug("Ignoring unknown bridge event", "event", frame.Event)
	}
}

// OnPing keeps the connection alive.
func (w *BridgeWorker) OnPing(ctx context.Context, conn *websocket.Conn) error {
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.PingMessage, nil)
}
