package bench

import (
	"os"
	"testing"
	"time"
)

func TestRecordAndHistory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "kestrel-bench-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	os.Setenv("XDG_DATA_HOME", tmpDir)
	defer os.Unsetenv("XDG_DATA_HOME")

	store, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	runs := []BenchmarkRun{
		{Timestamp: base, FEN: "startpos", Depth: 6, Nodes: 1000, ElapsedMS: 50, NPS: 20000, BestMove: "e2e4", ScoreCP: 20},
		{Timestamp: base.Add(time.Minute), FEN: "startpos", Depth: 6, Nodes: 2000, ElapsedMS: 80, NPS: 25000, BestMove: "d2d4", ScoreCP: 25},
	}
	for _, r := range runs {
		if err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	history, err := store.History(0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(history))
	}
	if history[0].BestMove != "d2d4" {
		t.Errorf("expected newest run first (d2d4), got %s", history[0].BestMove)
	}

	limited, err := store.History(1)
	if err != nil {
		t.Fatalf("History(1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 run, got %d", len(limited))
	}
}

func TestDataDirCreated(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "kestrel-bench-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	os.Setenv("XDG_DATA_HOME", tmpDir)
	defer os.Unsetenv("XDG_DATA_HOME")

	dir, err := databaseDir()
	if err != nil {
		t.Fatalf("databaseDir failed: %v", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("database directory was not created: %s", dir)
	}
}
