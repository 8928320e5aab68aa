package engine

import (
	"time"

	"github.com/kestrel-chess/kestrel/internal/board"
	"github.com/kestrel-chess/kestrel/internal/neural"
)

// Score sentinels. MateScore is the "line is lost/won" magnitude; the
// evaluator reports every checkmate as exactly ±MateScore, with no
// distance to mate encoded. Scores within MaxPly of it get
// ply-adjusted going in and out of the transposition table (see
// AdjustScoreToTT/AdjustScoreFromTT). Infinity is used only
// as the initial full aspiration window, never stored anywhere.
const (
	Infinity  = 32000
	MateScore = 25000
	MaxPly    = 128
)

// Null-move reduction constant. Fixed, not Stockfish's depth/eval
// dependent formula.
const nullMoveR = 3

// Futility margin at pre-leaf nodes, in centipawns, and the initial
// aspiration window half-width used by searchWithAspiration.
const (
	futilityMargin    = 100
	initialWindowSize = 15
)

// lmrInvertedCondition marks the late-move reduction gate below: it
// reduces checking, non-capture, non-first moves near the leaves, the
// reverse of the usual "reduce quiet moves" rule.
const lmrInvertedCondition = true

// Quiescence delta-pruning margins, in centipawns.
const (
	deltaMarginQueen     = 975
	deltaMarginPromotion = 1750
)

// Searcher holds everything a single search needs that must survive
// across recursive calls: the shared transposition table, node count,
// deadline, and the optional neural evaluator. One Searcher is built
// per call to the iterative-deepening driver and discarded afterward;
// it carries no state that should outlive a single `go` command.
type Searcher struct {
	tt    *TranspositionTable
	nn    *neural.Evaluator
	useNN bool
	nodes uint64
	dead  time.Time
}

// NewSearcher builds a Searcher over an existing transposition table.
// Passing a nil *neural.Evaluator disables the NN adjustment regardless
// of useNN.
func NewSearcher(tt *TranspositionTable, nn *neural.Evaluator, useNN bool, deadline time.Time) *Searcher {
	return &Searcher{tt: tt, nn: nn, useNN: useNN && nn != nil, dead: deadline}
}

// Nodes returns the number of nodes visited so far by this searcher.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// timeUp polls the deadline every 2048 nodes; checking a monotonic
// clock on every single node would dominate the node rate at shallow
// depths.
func (s *Searcher) timeUp() bool {
	return s.nodes&2047 == 0 && !time.Now().Before(s.dead)
}

func (s *Searcher) evaluate(pos *board.Position) int {
	score := Evaluate(pos)
	if s.useNN && score >= -300 && score <= 300 {
		score += s.nn.Evaluate(pos)
	}
	return score
}

// Search runs negamax over pos to depthLeft plies (depthFromRoot is the
// node's distance from the search root, used for futility and mate
// scoring). It returns ok=false iff the deadline was reached anywhere
// in the subtree, in which case score and move are meaningless.
func (s *Searcher) Search(pos *board.Position, alpha, beta, depthLeft, depthFromRoot int) (int, board.Move, bool) {
	if s.timeUp() {
		return 0, board.NoMove, false
	}
	s.nodes++

	key := pos.Hash

	ttMove, ttScore, ttHit := s.tt.Probe(key, depthLeft, alpha, beta)
	if ttHit {
		return AdjustScoreFromTT(ttScore, depthFromRoot), ttMove, true
	}

	if depthLeft <= 0 {
		score, ok := s.Quiesce(pos, alpha, beta)
		if !ok {
			return 0, board.NoMove, false
		}
		s.tt.Insert(key, board.NoMove, AdjustScoreToTT(score, depthFromRoot), 0, TTExact)
		return score, board.NoMove, true
	}

	inCheck := pos.InCheck()

	if depthLeft == 1 && depthFromRoot > 1 && !inCheck && s.evaluate(pos)+futilityMargin <= alpha {
		score, ok := s.Quiesce(pos, alpha, beta)
		if !ok {
			return 0, board.NoMove, false
		}
		s.tt.Insert(key, board.NoMove, AdjustScoreToTT(score, depthFromRoot), depthLeft, TTExact)
		return score, board.NoMove, true
	}

	if !inCheck && depthLeft >= 3 {
		if swapped, ok := pos.SwapTurn(); ok {
			reduced := depthLeft - 1 - nullMoveR
			if reduced < 0 {
				reduced = 0
			}
			score, _, searched := s.Search(&swapped, -beta, 1-beta, reduced, depthFromRoot+1)
			if !searched {
				return 0, board.NoMove, false
			}
			if -score >= beta {
				s.tt.Insert(key, board.NoMove, AdjustScoreToTT(beta, depthFromRoot), depthLeft, TTLowerBound)
				return beta, board.NoMove, true
			}
		}
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		score := Evaluate(pos)
		s.tt.Insert(key, board.NoMove, AdjustScoreToTT(score, depthFromRoot), depthLeft, TTExact)
		return score, board.NoMove, true
	}
	OrderMoves(pos, moves, ttMove)

	best := board.NoMove
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)

		child := *pos
		child.MakeMove(m)
		givesCheck := child.InCheck()

		extension := 0
		if depthLeft < 3 && (m.IsPromotion() || givesCheck) {
			extension = 1
		}
		newDepth := depthLeft - 1 + extension

		if lmrInvertedCondition && depthLeft < 2 && givesCheck && extension == 0 && !m.IsCapture(pos) && i > 0 {
			if newDepth > 0 {
				newDepth--
			}
		}

		score, _, searched := s.Search(&child, -beta, -alpha, newDepth, depthFromRoot+1)
		if !searched {
			return 0, board.NoMove, false
		}
		score = -score

		if score >= beta {
			s.tt.Insert(key, m, AdjustScoreToTT(beta, depthFromRoot), depthLeft, TTLowerBound)
			return beta, m, true
		}
		if score > alpha {
			alpha = score
			best = m
		}
	}

	s.tt.Insert(key, best, AdjustScoreToTT(alpha, depthFromRoot), depthLeft, TTUpperBound)
	return alpha, best, true
}

// Quiesce extends search along captures, promotions, and checking
// moves until the position is quiet, bounding the horizon effect at
// the leaves of the main search.
func (s *Searcher) Quiesce(pos *board.Position, alpha, beta int) (int, bool) {
	if s.timeUp() {
		return 0, false
	}
	s.nodes++

	standPat := s.evaluate(pos)
	if standPat >= beta {
		return beta, true
	}

	margin := deltaMarginQueen
	if pawnOneRankFromPromotion(pos) {
		margin = deltaMarginPromotion
	}
	if standPat < alpha-margin {
		return alpha, true
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := pos.GenerateLegalMoves()
	loud := loudMoves(pos, moves)
	OrderMoves(pos, loud, board.NoMove)

	for i := 0; i < loud.Len(); i++ {
		m := loud.Get(i)
		child := *pos
		child.MakeMove(m)

		score, ok := s.Quiesce(&child, -beta, -alpha)
		if !ok {
			return 0, false
		}
		score = -score

		if score >= beta {
			return beta, true
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha, true
}

// loudMoves filters moves down to the union of captures, promotions,
// and checking moves: a deliberate union, not an intersection of all
// three.
func loudMoves(pos *board.Position, moves *board.MoveList) *board.MoveList {
	out := board.NewMoveList()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.IsCapture(pos) || m.IsPromotion() {
			out.Add(m)
			continue
		}
		child := *pos
		child.MakeMove(m)
		if child.InCheck() {
			out.Add(m)
		}
	}
	return out
}

// pawnOneRankFromPromotion reports whether the side to move has a pawn
// that could promote on its very next push, widening the delta-pruning
// margin so a near-promotion isn't pruned away on material alone.
func pawnOneRankFromPromotion(pos *board.Position) bool {
	pawns := pos.Pieces[pos.SideToMove][board.Pawn]
	if pos.SideToMove == board.White {
		return pawns&board.Rank7 != 0
	}
	return pawns&board.Rank2 != 0
}
