package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/provider/rpc"
)

// RemoteProvider talks to a wallet bridge: HTTP JSON-RPC for requests,
// an optional websocket stream for pushed events.
type RemoteProvider struct {
	client *rpc.Client
	logger *slog.Logger

	subMu  sync.RWMutex
	subs   map[string]map[int]Handler
	nextID int

	bridge *BridgeWorker
}

// NewRemoteProvider builds a provider over the given endpoints. wsURL
// may be empty; the provider then works request/response only and no
// push events are delivered.
func NewRemoteProvider(rpcURL, wsURL, authToken string, logger *slog.Logger) *RemoteProvider {
	p := &RemoteProvider{
		client: rpc.NewClient(rpcURL, authToken, logger),
		logger: logger,
		subs:   make(map[string]map[int]Handler),
	}
	if wsURL != "" {
		p.bridge = NewBridgeWorker(wsURL, authToken, p.dispatch)
	}
	return p
}

// Start begins the push-event stream, if configured.
func (p *RemoteProvider) Start(ctx context.Context) {
	if p.bridge != nil {
		p.bridge.Start(ctx)
	}
}

// Stop terminates the push-event stream.
func (p *RemoteProvider) Stop() {
	if p.bridge != nil {
		p.bridge.Stop()
	}
}

// Request implements Provider. Read-type methods share the bridge read
// rate limit; transaction submission has its own bucket.
func (p *RemoteProvider) Request(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if method == MethodSendTransaction {
		infra.GetBridgeSubmitLimiter().Wait()
	} else {
		infra.GetBridgeReadLimiter().Wait()
	}
	return p.client.Call(ctx, method, params)
}

// Subscribe implements Provider.
func (p *RemoteProvider) Subscribe(event string, h Handler) Unsubscribe {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	if p.subs[event] == nil {
		p.subs[event] = make(map[int]Handler)
	}
	p.nextID++
	id := p.nextID
	p.subs[event][id] = h

	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		delete(p.subs[event], id)
	}
}

// dispatch fans a pushed event out to all registered handlers.
func (p *RemoteProvider) dispatch(event string, payload json.RawMessage) {
	p.subMu.RLock()
	handlers := make([]Handler, 0, len(p.subs[event]))
	for _, h := range p.subs[event] {
		handlers = append(handlers, h)
	}
	p.subMu.RUnlock()

	if len(handlers) == 0 {
		p.logger.Debug("pushed event with no subscribers", "event", event)
		return
	}
	for _, h := range handlers {
		h(payload)
	}
}
