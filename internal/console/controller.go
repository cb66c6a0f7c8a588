package console

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/vamuq999/oracle.vision.v4/internal/contract"
	"github.com/vamuq999/oracle.vision.v4/internal/domain"
	"github.com/vamuq999/oracle.vision.v4/internal/event"
	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/provider"
	"github.com/vamuq999/oracle.vision.v4/internal/storage"
	"github.com/vamuq999/oracle.vision.v4/pkg/evm"
)

// Controller owns the wallet session, the contract read cache, the single
// mint attempt slot and the status feed. Commands mutate state under mu;
// view accessors take read locks so the presentation layer never blocks a
// command for long. Every accepted state transition emits exactly one
// StatusEvent into the ring and the outbox.
type Controller struct {
	prov      provider.Provider // nil when no wallet bridge was detected
	invoker   contract.Invoker
	required  evm.ChainID
	chainName string
	logger    *slog.Logger

	mu      sync.RWMutex
	wallet  domain.WalletSnapshot
	reads   domain.ContractReadCache
	attempt domain.MintAttempt

	nextSeq atomic.Uint64
	ring    *event.Ring
	outbox  chan event.StatusEvent

	journal *storage.Journal
	unsubs  []provider.Unsubscribe
}

const outboxSize = 256

// New builds a controller around the given provider and invoker. prov may be
// nil: provider absence is a normal state, and every command that needs the
// wallet reports it as such instead of crashing.
func New(prov provider.Provider, invoker contract.Invoker, cfg *infra.Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		prov:      prov,
		invoker:   invoker,
		required:  evm.ChainID(cfg.Network.ChainID).Normalize(),
		chainName: cfg.Network.ChainName,
		logger:    logger,
		ring:      event.NewRing(cfg.Console.StatusRingSize),
		outbox:    make(chan event.StatusEvent, outboxSize),
	}
}

// AttachJournal wires a persistent status journal and replays its tail into
// the ring so the feed survives restarts. Sequence numbering continues from
// the highest persisted event.
func (c *Controller) AttachJournal(ctx context.Context, j *storage.Journal) error {
	last, err := storage.ReplayIntoRing(ctx, j, c.ring)
	if err != nil {
		return fmt.Errorf("replay status journal: %w", err)
	}
	c.journal = j
	c.nextSeq.Store(last)
	return nil
}

// Start subscribes to wallet push events. Safe to call with a nil provider.
func (c *Controller) Start() {
	if c.prov == nil {
		return
	}
	c.unsubs = append(c.unsubs,
		c.prov.Subscribe(provider.EventAccountsChanged, c.handleAccountsChanged),
		c.prov.Subscribe(provider.EventChainChanged, c.handleChainChanged),
	)
}

// Stop removes the push-event subscriptions.
func (c *Controller) Stop() {
	for _, u := range c.unsubs {
		u()
	}
	c.unsubs = nil
}

// Run drains the status outbox: each event is persisted to the journal (when
// attached) and logged. Exits when ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	c.logger.Info("🎛️ console controller started", "requiredChain", c.required.String())
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("console controller stopped")
			return
		case ev := <-c.outbox:
			if c.journal != nil {
				if err := c.journal.SaveEvent(ctx, ev); err != nil {
					c.logger.Error("journal write failed", "seq", ev.Seq, "error", err)
				}
			}
			c.logger.Info("status", "seq", ev.Seq, "kind", ev.Kind.String(), "message", ev.Message)
		}
	}
}

// emit appends a status event to the ring and hands it to the outbox. The
// ring append is synchronous so view reads always observe the event that a
// just-returned command produced; persistence happens on the Run goroutine.
func (c *Controller) emit(kind event.Type, message string) {
	ev := event.NewStatus(c.nextSeq.Add(1), kind, message)
	c.ring.Append(ev)
	select {
	case c.outbox <- ev:
	default:
		c.logger.Warn("status outbox full, event dropped from journal", "seq", ev.Seq, "kind", kind.String())
	}
}

// ---- Commands -------------------------------------------------------------

// Connect requests account access from the wallet. On success it records the
// active address and chain and refreshes the contract reads when the wallet
// is already on the required chain.
func (c *Controller) Connect(ctx context.Context) error {
	if c.prov == nil {
		c.emit(event.EvProviderMissing, "No wallet provider detected.")
		return domain.NewFlowError(domain.ErrProviderMissing, "no wallet provider detected")
	}

	raw, err := c.prov.Request(ctx, provider.MethodRequestAccounts, nil)
	if err != nil {
		fe := provider.Normalize(err)
		c.emit(event.EvConnectFailed, fe.Reason)
		return fe
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		fe := domain.NewFlowError(domain.ErrUnknown, "malformed accounts response")
		c.emit(event.EvConnectFailed, fe.Reason)
		return fe
	}
	if len(accounts) == 0 {
		fe := domain.NewFlowError(domain.ErrNotConnected, "wallet returned no accounts")
		c.emit(event.EvConnectFailed, fe.Reason)
		return fe
	}

	chainID, err := c.queryChainID(ctx)
	if err != nil {
		fe := provider.Normalize(err)
		c.emit(event.EvConnectFailed, fe.Reason)
		return fe
	}

	c.adopt(ctx, accounts[0], chainID, "Connected")
	return nil
}

// Resume restores an already-authorized session without prompting:
// eth_accounts never opens a wallet dialog, and an empty list just means
// there is nothing to resume.
func (c *Controller) Resume(ctx context.Context) (bool, error) {
	if c.prov == nil {
		return false, nil
	}

	raw, err := c.prov.Request(ctx, provider.MethodAccounts, nil)
	if err != nil {
		return false, provider.Normalize(err)
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return false, domain.NewFlowError(domain.ErrUnknown, "malformed accounts response")
	}
	if len(accounts) == 0 {
		return false, nil
	}

	chainID, err := c.queryChainID(ctx)
	if err != nil {
		return false, provider.Normalize(err)
	}

	c.adopt(ctx, accounts[0], chainID, "Reconnected")
	return true, nil
}

// adopt installs the account/chain pair and finishes session setup:
// status event, persisted wallet metadata, and a read refresh when the
// wallet already sits on the required chain.
func (c *Controller) adopt(ctx context.Context, account string, chainID evm.ChainID, verb string) {
	addr := common.HexToAddress(account)
	c.mu.Lock()
	c.wallet = domain.WalletSnapshot{Address: &addr, ChainID: chainID}
	onRequired := c.wallet.OnChain(c.required)
	short := c.wallet.ShortAddress()
	c.mu.Unlock()

	c.emit(event.EvConnected, fmt.Sprintf("%s %s on chain %s", verb, short, chainID.String()))
	c.saveWalletMeta(ctx)

	if onRequired {
		// Reads carry their own success/failure event; a failed refresh
		// does not undo the connect.
		_ = c.RefreshReads(ctx)
	}
}

// SwitchNetwork asks the wallet to move to the given chain. There is no
// automatic retry; the caller decides whether to ask again.
func (c *Controller) SwitchNetwork(ctx context.Context, target evm.ChainID) error {
	if c.prov == nil {
		c.emit(event.EvProviderMissing, "No wallet provider detected.")
		return domain.NewFlowError(domain.ErrProviderMissing, "no wallet provider detected")
	}
	target = target.Normalize()

	_, err := c.prov.Request(ctx, provider.MethodSwitchChain, []any{map[string]string{"chainId": string(target)}})
	if err != nil {
		fe := provider.Normalize(err)
		if fe.Code != domain.ErrUnsupportedChain {
			fe = domain.NewFlowError(domain.ErrSwitchRejected, fe.Reason)
		}
		c.emit(event.EvSwitchFailed, fe.Reason)
		return fe
	}

	c.mu.Lock()
	c.wallet.ChainID = target
	c.reads = domain.ContractReadCache{}
	connected := c.wallet.Connected()
	onRequired := c.wallet.OnChain(c.required)
	c.mu.Unlock()

	c.emit(event.EvNetworkSwitched, fmt.Sprintf("Switched to chain %s", target.String()))
	c.saveWalletMeta(ctx)

	if connected && onRequired {
		_ = c.RefreshReads(ctx)
	}
	return nil
}

// RefreshReads fetches collection name, symbol and mint price concurrently
// and replaces the read cache only when all three succeed. Exactly one
// status event is emitted per call.
func (c *Controller) RefreshReads(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		name     string
		sym      string
		priceWei *uint256.Int

		nameErr, symErr, priceErr error
	)
	wg.Add(3)
	go func() { defer wg.Done(); name, nameErr = c.invoker.Name(ctx) }()
	go func() { defer wg.Done(); sym, symErr = c.invoker.Symbol(ctx) }()
	go func() { defer wg.Done(); priceWei, priceErr = c.invoker.MintPrice(ctx) }()
	wg.Wait()

	for _, err := range []error{nameErr, symErr, priceErr} {
		if err != nil {
			fe := provider.Normalize(err)
			c.emit(event.EvReadsFailed, fmt.Sprintf("Contract read failed: %s", fe.Reason))
			return fe
		}
	}

	c.mu.Lock()
	c.reads = domain.ContractReadCache{
		CollectionName: name,
		Symbol:         sym,
		MintPriceWei:   priceWei,
		UpdatedUnixM:   time.Now().UnixMicro(),
		ChainID:        c.wallet.ChainID,
	}
	display := c.reads.PriceDisplay()
	c.mu.Unlock()

	c.emit(event.EvReadsRefreshed, fmt.Sprintf("%s (%s), mint price %s ETH", name, sym, display))
	return nil
}

// Mint submits one mint transaction. Preconditions are checked under the
// lock and violations return before any provider traffic: no connection, a
// wrong network, an attempt already in flight or a missing price all fail
// fast. The price is re-read immediately before submission so the payable
// value is never stale.
func (c *Controller) Mint(ctx context.Context) error {
	c.mu.Lock()
	var pre *domain.FlowError
	switch {
	case !c.wallet.Connected():
		pre = domain.NewFlowError(domain.ErrNotConnected, "connect a wallet before minting")
	case !c.wallet.OnChain(c.required):
		pre = domain.NewFlowError(domain.ErrWrongNetwork,
			fmt.Sprintf("switch to %s (chain %s) before minting", c.chainName, c.required.String()))
	case c.attempt.InFlight():
		pre = domain.NewFlowError(domain.ErrAttemptInFlight, "a mint attempt is already in flight")
	case !c.reads.HasPrice() || !c.reads.ValidFor(c.required):
		pre = domain.NewFlowError(domain.ErrPriceUnavailable, "mint price not loaded for the required chain")
	}
	if pre != nil {
		c.mu.Unlock()
		c.emit(event.EvMintRejected, pre.Reason)
		return pre
	}
	if err := c.attempt.Begin(); err != nil {
		c.mu.Unlock()
		fe := domain.NewFlowError(domain.ErrAttemptInFlight, err.Error())
		c.emit(event.EvMintRejected, fe.Reason)
		return fe
	}
	from := *c.wallet.Address
	c.mu.Unlock()

	c.emit(event.EvMintSigning, "Awaiting wallet signature…")

	price, err := c.invoker.MintPrice(ctx)
	if err != nil {
		return c.failAttempt(domain.NewFlowError(domain.ErrPriceUnavailable, "price re-read failed before submit"))
	}
	c.mu.Lock()
	c.reads.MintPriceWei = price
	c.reads.UpdatedUnixM = time.Now().UnixMicro()
	c.mu.Unlock()

	pending, err := c.invoker.Mint(ctx, from, price)
	if err != nil {
		return c.failAttempt(provider.Normalize(err))
	}

	c.mu.Lock()
	markErr := c.attempt.MarkSubmitted(pending.TxHash())
	c.mu.Unlock()
	if markErr != nil {
		return c.failAttempt(domain.NewFlowError(domain.ErrUnknown, markErr.Error()))
	}
	c.emit(event.EvMintSubmitted, fmt.Sprintf("Transaction submitted: %s", pending.TxHash()))

	receipt, err := pending.Wait(ctx)
	if err != nil {
		return c.failAttempt(provider.Normalize(err))
	}
	if !receipt.Succeeded() {
		return c.failAttempt(domain.NewFlowError(domain.ErrCallReverted, "Transaction reverted on chain."))
	}

	c.mu.Lock()
	markErr = c.attempt.MarkConfirmed(receipt.BlockNumber)
	c.mu.Unlock()
	if markErr != nil {
		return c.failAttempt(domain.NewFlowError(domain.ErrUnknown, markErr.Error()))
	}
	c.emit(event.EvMintConfirmed, fmt.Sprintf("Mint confirmed in block %d", receipt.BlockNumber))
	return nil
}

// saveWalletMeta records the last observed account and chain in the
// journal KV so the next start can report the previous session before
// any wallet is attached.
func (c *Controller) saveWalletMeta(ctx context.Context) {
	if c.journal == nil {
		return
	}
	c.mu.RLock()
	w := c.wallet
	c.mu.RUnlock()

	addr := ""
	if w.Connected() {
		addr = w.Address.Hex()
	}
	now := time.Now().UnixMicro()
	if err := c.journal.UpsertMetadata(ctx, storage.MetaLastAddress, addr, now); err != nil {
		c.logger.Warn("wallet metadata write failed", "key", storage.MetaLastAddress, "error", err)
	}
	if err := c.journal.UpsertMetadata(ctx, storage.MetaLastChain, string(w.ChainID), now); err != nil {
		c.logger.Warn("wallet metadata write failed", "key", storage.MetaLastChain, "error", err)
	}
}

// failAttempt records a terminal failure on the in-flight attempt and emits
// the matching status event. User rejection gets its own event kind so the
// feed reads the way a human expects.
func (c *Controller) failAttempt(fe *domain.FlowError) error {
	c.mu.Lock()
	if err := c.attempt.MarkFailed(fe.Reason); err != nil {
		c.logger.Warn("attempt already settled", "error", err)
	}
	c.mu.Unlock()

	if fe.Code == domain.ErrUserRejected {
		c.emit(event.EvMintRejected, fe.Reason)
	} else {
		c.emit(event.EvMintFailed, fe.Reason)
	}
	return fe
}

// ---- Push-event handlers --------------------------------------------------

func (c *Controller) handleAccountsChanged(payload json.RawMessage) {
	var accounts []string
	if err := json.Unmarshal(payload, &accounts); err != nil {
		c.logger.Warn("malformed accountsChanged payload", "error", err)
		return
	}

	if len(accounts) == 0 {
		c.mu.Lock()
		c.wallet = domain.WalletSnapshot{}
		c.reads = domain.ContractReadCache{}
		c.mu.Unlock()
		c.emit(event.EvDisconnected, "Wallet disconnected.")
		c.saveWalletMeta(context.Background())
		return
	}

	addr := common.HexToAddress(accounts[0])
	c.mu.Lock()
	c.wallet.Address = &addr
	c.reads = domain.ContractReadCache{}
	onRequired := c.wallet.OnChain(c.required)
	short := c.wallet.ShortAddress()
	c.mu.Unlock()

	c.emit(event.EvAccountsChanged, fmt.Sprintf("Account changed to %s", short))
	c.saveWalletMeta(context.Background())
	if onRequired {
		_ = c.RefreshReads(context.Background())
	}
}

func (c *Controller) handleChainChanged(payload json.RawMessage) {
	var chainHex string
	if err := json.Unmarshal(payload, &chainHex); err != nil {
		c.logger.Warn("malformed chainChanged payload", "error", err)
		return
	}
	chain := evm.ChainID(chainHex).Normalize()

	// An in-flight attempt is left alone: the already-submitted transaction
	// settles on its original chain regardless of what the wallet shows now.
	c.mu.Lock()
	c.wallet.ChainID = chain
	c.reads = domain.ContractReadCache{}
	connected := c.wallet.Connected()
	onRequired := c.wallet.OnChain(c.required)
	c.mu.Unlock()

	c.emit(event.EvChainChanged, fmt.Sprintf("Network changed to chain %s", chain.String()))
	c.saveWalletMeta(context.Background())
	if connected && onRequired {
		_ = c.RefreshReads(context.Background())
	}
}

// ---- Views ----------------------------------------------------------------

// Wallet returns a copy of the current wallet snapshot.
func (c *Controller) Wallet() domain.WalletSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.wallet
}

// Reads returns a deep copy of the contract read cache.
func (c *Controller) Reads() domain.ContractReadCache {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reads.Clone()
}

// Attempt returns a copy of the last mint attempt.
func (c *Controller) Attempt() domain.MintAttempt {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attempt
}

// Status returns the retained status events, newest first.
func (c *Controller) Status() []event.StatusEvent {
	return c.ring.Snapshot()
}

// RequiredChain reports the chain the mint contract lives on.
func (c *Controller) RequiredChain() evm.ChainID {
	return c.required
}

// StateSnapshot captures the full console state for persistence.
func (c *Controller) StateSnapshot() storage.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return storage.Snapshot{
		Seq:         c.nextSeq.Load(),
		TsUnix:      time.Now().Unix(),
		Wallet:      c.wallet,
		Reads:       c.reads.Clone(),
		LastAttempt: c.attempt,
	}
}

func (c *Controller) queryChainID(ctx context.Context) (evm.ChainID, error) {
	raw, err := c.prov.Request(ctx, provider.MethodChainID, nil)
	if err != nil {
		return "", err
	}
	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		return "", fmt.Errorf("malformed chainId response: %w", err)
	}
	return evm.ChainID(hex).Normalize(), nil
}
