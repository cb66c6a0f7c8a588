package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vamuq999/oracle.vision.v4/internal/app"
	"github.com/vamuq999/oracle.vision.v4/internal/console"
	"github.com/vamuq999/oracle.vision.v4/internal/contract"
	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/provider"
	"github.com/vamuq999/oracle.vision.v4/internal/storage"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Shutdown()

	cfg := bootstrap.Config
	infra.PrintBanner(cfg)
	bootstrap.LogLastSession()

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Wallet bridge detection. Absence is a normal state: the console
	// still starts, renders history and reports the provider as missing.
	logger := slog.Default()
	remote := provider.NewRemoteProvider(
		cfg.Network.RPCURL, cfg.Network.WSURL, bootstrap.Pairing.Bridge.Token, logger)

	detectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	detected := provider.Detect(detectCtx, remote)
	cancel()

	var walletProv provider.Provider
	if detected {
		walletProv = remote
		remote.Start(ctx)
		defer remote.Stop()
		slog.InfoContext(ctx, "✅ Wallet bridge detected", slog.String("rpc", cfg.Network.RPCURL))
	} else {
		slog.Warn("⚠️ No wallet bridge detected, running in view-only mode")
	}

	// 5. Contract invoker + controller
	invoker := contract.NewRemoteInvoker(walletProv, cfg, logger)
	ctrl := console.New(walletProv, invoker, cfg, logger)
	if err := ctrl.AttachJournal(ctx, bootstrap.Journal); err != nil {
		slog.Error("❌ Journal replay failed", slog.Any("error", err))
		os.Exit(1)
	}
	ctrl.Start()
	defer ctrl.Stop()

	go ctrl.Run(ctx)
	slog.InfoContext(ctx, "✅ Console controller started")

	// 6. Session restore, then an explicit connect. Resume never prompts;
	// a missing provider or a rejection shows up in the status feed like
	// any other outcome.
	resumed, err := ctrl.Resume(ctx)
	if err != nil {
		slog.Warn("session resume failed", "error", err)
	}
	if !resumed {
		if err := ctrl.Connect(ctx); err != nil {
			slog.Warn("initial connect did not complete", "error", err)
		}
	}

	slog.InfoContext(ctx, "✨ Oracle Vision Mint Console operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")

	// 7. Persist the closing state so the next start can show it.
	snap := ctrl.StateSnapshot()
	if err := bootstrap.Snapshots.Save(&snap); err != nil {
		slog.Warn("snapshot save failed", "error", err)
	}
	if err := bootstrap.Snapshots.Cleanup(storage.DefaultSnapshotKeep); err != nil {
		slog.Warn("snapshot cleanup failed", "error", err)
	}
}
