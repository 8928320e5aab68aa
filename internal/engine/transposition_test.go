package engine

import (
	"testing"

	"github.com/kestrel-chess/kestrel/internal/board"
)

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)

	var key uint64 = 0xABCD1234
	move := board.NewMove(board.E2, board.E4)

	tt.Insert(key, move, 55, 8, TTExact)

	got, score, ok := tt.Probe(key, 8, -Infinity, Infinity)
	if !ok {
		t.Fatalf("expected a hit on exact entry at matching depth")
	}
	if got != move {
		t.Errorf("expected stored move %v, got %v", move, got)
	}
	if score != 55 {
		t.Errorf("expected score 55, got %d", score)
	}
}

func TestTranspositionTableBoundFlags(t *testing.T) {
	tt := NewTranspositionTable(1)
	var key uint64 = 42
	move := board.NewMove(board.D2, board.D4)

	tt.Insert(key, move, 100, 6, TTUpperBound)
	if _, _, ok := tt.Probe(key, 6, 50, 200); ok {
		t.Errorf("upper bound of 100 should not resolve a probe with alpha=50 (100 > 50)")
	}
	if _, score, ok := tt.Probe(key, 6, 150, 200); !ok || score != 150 {
		t.Errorf("upper bound of 100 <= alpha=150 should report alpha, got score=%d ok=%v", score, ok)
	}

	tt.Insert(key, move, 100, 6, TTLowerBound)
	if _, _, ok := tt.Probe(key, 6, -200, 150); ok {
		t.Errorf("lower bound of 100 should not resolve a probe with beta=150 (100 < 150)")
	}
	if _, score, ok := tt.Probe(key, 6, -200, 50); !ok || score != 50 {
		t.Errorf("lower bound of 100 >= beta=50 should report beta, got score=%d ok=%v", score, ok)
	}
}

func TestTranspositionTableProbeReturnsMoveEvenWhenShallow(t *testing.T) {
	tt := NewTranspositionTable(1)
	var key uint64 = 777
	move := board.NewMove(board.G1, board.F3)

	tt.Insert(key, move, 10, 2, TTExact)

	got, _, ok := tt.Probe(key, 10, -Infinity, Infinity)
	if ok {
		t.Errorf("expected probe to refuse to resolve a score when stored depth (2) < requested (10)")
	}
	if got != move {
		t.Errorf("expected the stored move to still be returned for ordering, got %v", got)
	}

	if hm := tt.HashMove(key); hm != move {
		t.Errorf("HashMove should return the stored move regardless of depth, got %v", hm)
	}
}

func TestTranspositionTableMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	if _, _, ok := tt.Probe(999, 5, -Infinity, Infinity); ok {
		t.Errorf("expected a miss on an empty table")
	}
	if m := tt.HashMove(999); m != board.NoMove {
		t.Errorf("expected NoMove on an empty table, got %v", m)
	}
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Insert(5, board.NoMove, 1, 1, TTExact)
	if _, ok := tt.Get(5); !ok {
		t.Fatalf("expected entry present before Clear")
	}
	tt.Clear()
	if _, ok := tt.Get(5); ok {
		t.Errorf("expected entry gone after Clear")
	}
	if rate := tt.HitRate(); rate != 0 {
		t.Errorf("expected hit rate reset to 0 after Clear, got %f", rate)
	}
}

func TestRoundDownToPowerOf2(t *testing.T) {
	cases := map[uint64]uint64{
		0:   0,
		1:   1,
		2:   2,
		3:   2,
		5:   4,
		1023: 512,
		1024: 1024,
		1025: 1024,
	}
	for in, want := range cases {
		if got := roundDownToPowerOf2(in); got != want {
			t.Errorf("roundDownToPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAdjustScoreRoundTrip(t *testing.T) {
	ply := 4
	mateScore := MateScore - 10

	toTT := AdjustScoreToTT(mateScore, ply)
	back := AdjustScoreFromTT(toTT, ply)
	if back != mateScore {
		t.Errorf("mate score did not round-trip: got %d, want %d", back, mateScore)
	}

	// Non-mate scores are left untouched by both directions.
	if got := AdjustScoreToTT(37, ply); got != 37 {
		t.Errorf("expected ordinary score untouched, got %d", got)
	}
	if got := AdjustScoreFromTT(37, ply); got != 37 {
		t.Errorf("expected ordinary score untouched, got %d", got)
	}
}
