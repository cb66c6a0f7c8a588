package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vamuq999/oracle.vision.v4/internal/contract"
	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/provider"
	"github.com/vamuq999/oracle.vision.v4/pkg/evm"
)

// One-shot probe: read name, symbol and mint price straight off the
// contract, no controller involved. Handy for checking a bridge and a
// contract address before starting the console.
func main() {
	fmt.Println("=== Oracle Vision Contract Probe ===")
	fmt.Println()

	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		fmt.Printf("❌ config: %v\n", err)
		os.Exit(1)
	}

	// Keep the probe output clean.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pairing, err := infra.LoadPairingConfig("secrets/pairing.yaml")
	if err != nil {
		fmt.Printf("❌ pairing: %v\n", err)
		os.Exit(1)
	}

	prov := provider.NewRemoteProvider(cfg.Network.RPCURL, "", pairing.Bridge.Token, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if !provider.Detect(ctx, prov) {
		fmt.Printf("❌ no wallet bridge answering at %s\n", cfg.Network.RPCURL)
		os.Exit(1)
	}

	inv := contract.NewRemoteInvoker(prov, cfg, logger)

	name, err := inv.Name(ctx)
	if err != nil {
		fmt.Printf("❌ name(): %v\n", err)
		os.Exit(1)
	}
	symbol, err := inv.Symbol(ctx)
	if err != nil {
		fmt.Printf("❌ symbol(): %v\n", err)
		os.Exit(1)
	}
	price, err := inv.MintPrice(ctx)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", cfg.Contract.PriceMethod, err)
		os.Exit(1)
	}

	fmt.Printf("📜 Contract:   %s\n", cfg.Contract.Address)
	fmt.Printf("🌐 Chain:      %s (%s)\n", cfg.Network.ChainName, cfg.Network.ChainID)
	fmt.Printf("🏷️  Collection: %s (%s)\n", name, symbol)
	fmt.Printf("💰 Mint price: %s ETH (%s wei)\n", evm.FormatEther(price), price.Dec())
	fmt.Println()
	fmt.Println("✅ Contract reads OK")
}
