package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vamuq999/oracle.vision.v4/internal/infra"
	"github.com/vamuq999/oracle.vision.v4/internal/storage"
)

// Prints the persisted status feed and the last shutdown snapshot.
func main() {
	var fromSeq uint64
	flag.Uint64Var(&fromSeq, "from", 1, "first event sequence to print")
	flag.Parse()

	workDir := infra.GetWorkspaceDir()
	dbPath := filepath.Join(workDir, "data", "journal.db")

	journal, err := storage.NewJournal(dbPath)
	if err != nil {
		fmt.Printf("❌ open journal %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer journal.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := journal.LoadEvents(ctx, fromSeq)
	if err != nil {
		fmt.Printf("❌ load events: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Oracle Vision Status History (%d events) ===\n\n", len(events))
	for _, ev := range events {
		ts := time.UnixMicro(ev.Ts).Format("2006-01-02 15:04:05")
		fmt.Printf("%6d  %s  %-16s %s\n", ev.Seq, ts, ev.Kind.String(), ev.Message)
	}

	snapDir := filepath.Join(workDir, "snapshots")
	snap, err := storage.NewSnapshotManager(snapDir).LoadLatest()
	if err != nil || snap == nil {
		return
	}

	fmt.Println()
	fmt.Println("=== Last Session ===")
	if snap.Wallet.Connected() {
		fmt.Printf("Wallet:  %s on chain %s\n", snap.Wallet.ShortAddress(), snap.Wallet.ChainID)
	} else {
		fmt.Println("Wallet:  not connected")
	}
	if snap.Reads.CollectionName != "" {
		fmt.Printf("Reads:   %s (%s), price %s ETH\n",
			snap.Reads.CollectionName, snap.Reads.Symbol, snap.Reads.PriceDisplay())
	}
	fmt.Printf("Attempt: %s", snap.LastAttempt.State.String())
	if snap.LastAttempt.TxHash != "" {
		fmt.Printf(" (%s)", snap.LastAttempt.TxHash)
	}
	fmt.Println()
}
