package engine

import (
	"github.com/kestrel-chess/kestrel/internal/board"
)

// Move ordering priorities. A hash move always sorts first; captures
// are ranked by MVV-LVA above that; everything else scores zero and
// keeps generation order.
const (
	hashMoveScore = 1 << 30
	captureBase   = 1 << 20
)

// ScoreMoves assigns an ordering score to every move in the list:
// the TT hash move gets top priority, captures are scored by MVV-LVA,
// and everything else scores zero.
func ScoreMoves(pos *board.Position, moves *board.MoveList, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = scoreMove(pos, moves.Get(i), ttMove)
	}
	return scores
}

func scoreMove(pos *board.Position, m, ttMove board.Move) int {
	if m == ttMove {
		return hashMoveScore
	}

	if !m.IsCapture(pos) {
		return 0
	}

	attackerPiece := pos.PieceAt(m.From())
	if attackerPiece == board.NoPiece {
		return captureBase
	}
	attacker := attackerPiece.Type()

	var victim board.PieceType
	if m.IsEnPassant() {
		victim = board.Pawn
	} else if capturedPiece := pos.PieceAt(m.To()); capturedPiece != board.NoPiece {
		victim = capturedPiece.Type()
	} else {
		return captureBase
	}

	if victim >= board.King || attacker > board.King {
		return captureBase
	}

	// MVV-LVA: victim value minus attacker value (board.PieceValue), so
	// bigger victims and smaller attackers both push the move earlier.
	return captureBase + board.PieceValue[victim] - board.PieceValue[attacker]
}

// SortMoves performs an in-place insertion sort of the parallel
// (move, score) arrays, descending by score. The legal-move count is
// small enough (rarely above a few dozen) that insertion sort's
// simplicity beats anything fancier.
func SortMoves(moves *board.MoveList, scores []int) {
	for i := 1; i < moves.Len(); i++ {
		j := i
		for j > 0 && scores[j] > scores[j-1] {
			scores[j], scores[j-1] = scores[j-1], scores[j]
			moves.Swap(j, j-1)
			j--
		}
	}
}

// OrderMoves scores and sorts moves in place, returning the same list
// for convenience at call sites.
func OrderMoves(pos *board.Position, moves *board.MoveList, ttMove board.Move) *board.MoveList {
	scores := ScoreMoves(pos, moves, ttMove)
	SortMoves(moves, scores)
	return moves
}
