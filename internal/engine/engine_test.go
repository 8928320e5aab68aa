package engine

import (
	"testing"
	"time"

	"github.com/kestrel-chess/kestrel/internal/board"
)

// bestMoveCases are fixed-depth analogues of the engine's literal
// movetime-based test scenarios: a depth limit replaces the wall-clock
// movetime so the expected best move doesn't depend on machine speed.
var bestMoveCases = []struct {
	name  string
	fen   string
	depth int
	want  string
}{
	{"mate in 1, rook ladder", "6k1/2R5/8/8/8/3R4/2K5/8 w - - 0 1", 4, "d3d8"},
	{"mate in 1, back rank", "6k1/2p4p/2p4b/p7/3P1p2/2P2P2/PP2b1KP/4q3 b - - 9 35", 4, "e1f1"},
	{"back rank tactic", "6k1/2p4p/b1p1q2b/p7/3P1pp1/2P2P2/PP4PP/4B1K1 b - - 1 29", 6, "e6e1"},
	{"back rank tactic 2", "4r1k1/ppp2ppp/5n2/6P1/1PP5/2b4P/r7/5K1R b - - 0 33", 6, "e8e1"},
	{"free capture, white", "7k/8/8/4p3/3Q4/8/8/K7 w - - 0 1", 4, "d4e5"},
	{"free capture, black", "7k/8/8/4q3/3Q4/8/8/K7 b - - 0 1", 4, "e5d4"},
}

func TestFindBestMoveScenarios(t *testing.T) {
	for _, tc := range bestMoveCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := board.ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
			}

			eng := NewEngine(16)
			move, _, _ := eng.FindBestMove(pos, UCILimits{Depth: tc.depth})
			if move == board.NoMove {
				t.Fatalf("expected a move, got NoMove")
			}
			if got := move.String(); got != tc.want {
				t.Errorf("FindBestMove(%q, depth %d) = %s, want %s", tc.fen, tc.depth, got, tc.want)
			}
		})
	}
}

func TestFindBestMoveDeadlineAlreadyPast(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	searcher := NewSearcher(tt, nil, false, time.Unix(0, 0))

	// Force the very first node to see a past deadline.
	for i := 0; i < 2048; i++ {
		searcher.nodes++
	}

	_, _, ok := searcher.Search(pos, -Infinity, Infinity, 4, 0)
	if ok {
		t.Errorf("expected Search to report ok=false when the deadline has already passed")
	}
}

func TestFindBestMoveIdempotentOnCopy(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	before := pos.Hash
	eng.FindBestMove(pos.Copy(), UCILimits{Depth: 3})
	if pos.Hash != before {
		t.Errorf("FindBestMove must not mutate the caller's position; hash changed from %x to %x", before, pos.Hash)
	}
}

func TestScoreToString(t *testing.T) {
	if got := ScoreToString(0); got != "0.0" {
		t.Errorf("ScoreToString(0) = %q, want %q", got, "0.0")
	}
	if got := ScoreToString(150); got != "1.50" {
		t.Errorf("ScoreToString(150) = %q, want %q", got, "1.50")
	}
	if got := ScoreToString(-150); got != "-1.50" {
		t.Errorf("ScoreToString(-150) = %q, want %q", got, "-1.50")
	}
	if got := ScoreToString(MateScore - 1); got != "Mate in 1" {
		t.Errorf("ScoreToString(MateScore-1) = %q, want %q", got, "Mate in 1")
	}
	if got := ScoreToString(-MateScore + 1); got != "Mated in 1" {
		t.Errorf("ScoreToString(-MateScore+1) = %q, want %q", got, "Mated in 1")
	}
}
