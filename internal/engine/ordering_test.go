package engine

import (
	"testing"

	"github.com/kestrel-chess/kestrel/internal/board"
)

// TestHashMoveSortsFirst covers the move-ordering stability property: if
// the TT holds a best_move for the current position, it must sort to
// index 0 regardless of what else is on the board.
func TestHashMoveSortsFirst(t *testing.T) {
	pos, err := board.ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		t.Fatalf("expected legal moves")
	}

	// Pick some legal move buried in generation order as the hash move.
	ttMove := moves.Get(moves.Len() - 1)

	OrderMoves(pos, moves, ttMove)

	if moves.Get(0) != ttMove {
		t.Errorf("expected hash move %v to sort to index 0, got %v", ttMove, moves.Get(0))
	}
}

func TestHashMoveOfZeroValueStillNoMoveSafe(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	n := moves.Len()
	for i, s := range ScoreMoves(pos, moves, board.NoMove) {
		if s == hashMoveScore {
			t.Errorf("move %v scored hashMoveScore with no hash move", moves.Get(i))
		}
	}
	OrderMoves(pos, moves, board.NoMove)
	// With no hash move, nothing should score hashMoveScore; ordering
	// should complete without panicking and preserve the move count.
	if moves.Len() == 0 {
		t.Fatalf("expected legal moves from the starting position")
	}
	if moves.Len() != n {
		t.Errorf("ordering changed the move count from %d to %d", n, moves.Len())
	}
}

// TestMVVLVAOrdersBiggerVictimsFirst covers MVV-LVA's relative ordering:
// a pawn capturing a queen must outrank a pawn capturing a pawn.
func TestMVVLVAOrdersBiggerVictimsFirst(t *testing.T) {
	// White pawn on e5 can capture either a black pawn on d6 or a black
	// queen on f6.
	pos, err := board.ParseFEN("4k3/8/3p1q2/4P3/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	var captureQueen, capturePawn board.Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !m.IsCapture(pos) {
			continue
		}
		switch m.To() {
		case board.F6:
			captureQueen = m
		case board.D6:
			capturePawn = m
		}
	}
	if captureQueen == board.NoMove || capturePawn == board.NoMove {
		t.Fatalf("expected both captures to be generated, got queen=%v pawn=%v", captureQueen, capturePawn)
	}

	scoreQueen := scoreMove(pos, captureQueen, board.NoMove)
	scorePawn := scoreMove(pos, capturePawn, board.NoMove)
	if scoreQueen <= scorePawn {
		t.Errorf("expected capturing the queen to score higher than capturing the pawn: queen=%d pawn=%d",
			scoreQueen, scorePawn)
	}
}

func TestSortMovesDescending(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	scores := make([]int, moves.Len())
	for i := range scores {
		scores[i] = moves.Len() - i
	}
	// Deliberately scramble so the input isn't already sorted.
	scores[0], scores[len(scores)-1] = scores[len(scores)-1], scores[0]

	SortMoves(moves, scores)

	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1] {
			t.Fatalf("scores not sorted descending at index %d: %v", i, scores)
		}
	}
}
