package storage

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/vamuq999/oracle.vision.v4/internal/domain"
)

func TestSnapshotManager_SaveAndLoadLatest(t *testing.T) {
	sm := NewSnapshotManager(t.TempDir())

	reads := domain.ContractReadCache{
		CollectionName: "Oracle Vision",
		Symbol:         "ORCL",
		MintPriceWei:   uint256.NewInt(10000000000000000),
		ChainID:        "0x1",
	}
	snap := CreateSnapshot(5, domain.WalletSnapshot{ChainID: "0x1"}, reads, domain.MintAttempt{State: domain.AttemptConfirmed, TxHash: "0xabc", BlockNumber: 42})

	if err := sm.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := sm.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a snapshot")
	}
	if loaded.Seq != 5 || loaded.Reads.Symbol != "ORCL" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.LastAttempt.State != domain.AttemptConfirmed || loaded.LastAttempt.BlockNumber != 42 {
		t.Errorf("attempt = %+v", loaded.LastAttempt)
	}
}

func TestSnapshotManager_LoadLatestPicksHighestSeq(t *testing.T) {
	sm := NewSnapshotManager(t.TempDir())

	for _, seq := range []uint64{3, 9, 6} {
		if err := sm.Save(CreateSnapshot(seq, domain.WalletSnapshot{}, domain.ContractReadCache{}, domain.MintAttempt{})); err != nil {
			t.Fatalf("Save(%d) failed: %v", seq, err)
		}
	}

	loaded, err := sm.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if loaded.Seq != 9 {
		t.Errorf("loaded seq = %d, want 9", loaded.Seq)
	}
}

func TestSnapshotManager_NoSnapshots(t *testing.T) {
	sm := NewSnapshotManager(t.TempDir())
	loaded, err := sm.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if loaded != nil {
		t.Error("expected nil for empty dir")
	}
}

func TestSnapshotManager_Cleanup(t *testing.T) {
	dir := t.TempDir()
	sm := NewSnapshotManager(dir)

	for seq := uint64(1); seq <= 5; seq++ {
		if err := sm.Save(CreateSnapshot(seq, domain.WalletSnapshot{}, domain.ContractReadCache{}, domain.MintAttempt{})); err != nil {
			t.Fatalf("Save(%d) failed: %v", seq, err)
		}
	}

	if err := sm.Cleanup(2); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	loaded, err := sm.LoadLatest()
	if err != nil || loaded == nil {
		t.Fatalf("LoadLatest after cleanup: %v", err)
	}
	if loaded.Seq != 5 {
		t.Errorf("latest after cleanup = %d", loaded.Seq)
	}
}
