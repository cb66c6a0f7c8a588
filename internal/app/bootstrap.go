package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/storage"
)

// Bootstrap orchestrates the console startup sequence
type Bootstrap struct {
	Config    *infra.Config
	Pairing   *infra.PairingConfig
	Journal   *storage.Journal
	Snapshots *storage.SnapshotManager

	unlock func()
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, DB, dirs).
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping Oracle Vision...")

	// 1. Load Config (Dynamic Path Resolution)
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Bridge pairing token (env wins over secrets file)
	pairing, err := infra.LoadPairingConfig(filepath.Join("secrets", "pairing.yaml"))
	if err != nil {
		return err
	}
	b.Pairing = pairing

	// 4. Workspace layout: _workspace/data + _workspace/snapshots
	workDir := infra.GetWorkspaceDir()
	dataDir := filepath.Join(workDir, "data")
	snapDir := filepath.Join(workDir, "snapshots")

	if err := infra.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := infra.EnsureDir(snapDir); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	// 4.1 Singleton Instance Lock
	// Two consoles sharing one journal would corrupt the WAL.
	unlock, err := infra.CreateLockFile(workDir)
	if err != nil {
		return err
	}
	b.unlock = unlock

	// 5. Status journal (Single-Writer WAL DB)
	dbPath := filepath.Join(dataDir, "journal.db")
	journal, err := storage.NewJournal(dbPath)
	if err != nil {
		return err
	}
	b.Journal = journal
	slog.Info("✅ Status journal initialized (WAL-mode)", "path", dbPath)

	// 6. Snapshot manager
	b.Snapshots = storage.NewSnapshotManager(snapDir)

	return nil
}

// LogLastSession reports where the previous run left off: the wallet
// metadata KV (written on every account/chain change) and the shutdown
// snapshot, when either survives.
func (b *Bootstrap) LogLastSession() {
	ctx := context.Background()
	addr, _ := b.Journal.GetMetadata(ctx, storage.MetaLastAddress)
	chain, _ := b.Journal.GetMetadata(ctx, storage.MetaLastChain)
	if addr != "" || chain != "" {
		slog.Info("🔗 Last wallet session", "address", addr, "chain", chain)
	}

	snap, err := b.Snapshots.LoadLatest()
	if err != nil {
		slog.Warn("could not load last session snapshot", "error", err)
		return
	}
	if snap == nil {
		return
	}
	slog.Info("📂 Last session restored",
		"seq", snap.Seq,
		"wallet", snap.Wallet.ShortAddress(),
		"attempt", snap.LastAttempt.State.String())
}

// Shutdown releases the journal and the instance lock.
func (b *Bootstrap) Shutdown() {
	if b.Journal != nil {
		if err := b.Journal.Close(); err != nil {
			slog.Warn("journal close failed", "error", err)
		}
	}
	if b.unlock != nil {
		b.unlock()
	}
}
