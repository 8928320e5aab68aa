package engine

import (
	"time"

	"github.com/kestrel-chess/kestrel/internal/board"
	"github.com/kestrel-chess/kestrel/internal/book"
	"github.com/kestrel-chess/kestrel/internal/neural"
)

// SearchInfo is reported to the UCI front-end after every completed
// iterative-deepening depth.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	HashFull int
}

// Engine drives the iterative-deepening search over a single
// transposition table. It is single-threaded: one search runs at a
// time, recursing in the calling goroutine.
type Engine struct {
	tt     *TranspositionTable
	book   *book.Book
	neural *neural.Evaluator

	useBook bool
	useNN   bool

	// OnInfo, if set, is called after every completed depth.
	OnInfo func(SearchInfo)
}

// NewEngine creates a chess engine with a transposition table sized to
// ttSizeMB megabytes, and the built-in neural evaluator ready (but
// disabled by default; enable with SetUseNN).
func NewEngine(ttSizeMB int) *Engine {
	return &Engine{
		tt:      NewTranspositionTable(ttSizeMB),
		neural:  neural.NewEvaluator(),
		useBook: true,
	}
}

// SetBook installs an opening book. A nil book disables book probing.
func (e *Engine) SetBook(b *book.Book) {
	e.book = b
}

// SetUseBook toggles whether FindBestMove consults the opening book.
func (e *Engine) SetUseBook(use bool) {
	e.useBook = use
}

// SetUseNN toggles the neural evaluator's contribution to leaf scores.
func (e *Engine) SetUseNN(use bool) {
	e.useNN = use
}

// HasBook reports whether an opening book is loaded.
func (e *Engine) HasBook() bool {
	return e.book != nil
}

// HashFull returns the permille occupancy of the transposition table.
func (e *Engine) HashFull() int {
	return e.tt.HashFull()
}

// Clear empties the transposition table.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// Perft counts leaf nodes at depth, for move-generation testing.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove(move, undo)
	}
	return nodes
}

// FindBestMove runs the opening book probe, then (on a miss) the full
// iterative-deepening driver, per the search contract: depth 1 at a
// full window, then aspiration-windowed depths up to limits.Depth or
// until the deadline.
func (e *Engine) FindBestMove(pos *board.Position, limits UCILimits) (board.Move, int, uint64) {
	if e.useBook && e.book != nil {
		if move, ok := e.book.Probe(pos); ok {
			return move, 0, 0
		}
	}

	tm := NewTimeManager()
	tm.Init(limits, pos.SideToMove)

	e.tt.Clear()

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	searcher := NewSearcher(e.tt, e.neural, e.useNN, tm.Deadline())

	score, move, ok := searcher.Search(pos, -Infinity, Infinity, 1, 0)
	if !ok {
		return board.NoMove, 0, searcher.Nodes()
	}
	bestScore, bestMove := score, move
	e.reportInfo(searcher, 1, bestScore, tm)

	if abs(bestScore) >= MateScore-MaxPly {
		return bestMove, bestScore, searcher.Nodes()
	}

	for depth := 2; depth <= maxDepth; depth++ {
		if tm.ShouldStop() {
			break
		}

		score, move, ok := searchWithAspiration(searcher, pos, depth, bestScore)
		if !ok {
			break
		}
		bestScore, bestMove = score, move
		e.reportInfo(searcher, depth, bestScore, tm)

		if abs(bestScore) >= MateScore-MaxPly {
			if bestMove == board.NoMove {
				bestMove = resolveMate(pos, depth)
			}
			break
		}
	}

	return bestMove, bestScore, searcher.Nodes()
}

// searchWithAspiration runs one iterative-deepening depth using a
// narrow aspiration window around prevScore, widening and re-searching
// the same depth on fail-low or fail-high until the result lands
// inside the window.
func searchWithAspiration(searcher *Searcher, pos *board.Position, depth, prevScore int) (int, board.Move, bool) {
	aw, bw := initialWindowSize, initialWindowSize
	alpha := prevScore - aw
	beta := prevScore + bw

	for {
		score, move, ok := searcher.Search(pos, alpha, beta, depth, 0)
		if !ok {
			return 0, board.NoMove, false
		}
		if score <= alpha {
			aw *= 2
			alpha = prevScore - aw
			continue
		}
		if score >= beta {
			bw *= 2
			beta = prevScore + bw
			continue
		}
		return score, move, true
	}
}

// resolveMate recovers the actual mating move when the main search
// reported a mate score but cached NULL_MOVE as the best move (the
// mate was discovered through a null-move or terminal branch rather
// than a root move). It re-derives the move with a small minimax that
// never touches the transposition table.
func resolveMate(pos *board.Position, depth int) board.Move {
	_, move := plainNegamax(pos, -Infinity, Infinity, depth)
	return move
}

func plainNegamax(pos *board.Position, alpha, beta, depthLeft int) (int, board.Move) {
	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 || depthLeft == 0 {
		return Evaluate(pos), board.NoMove
	}

	best := board.NoMove
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		child := *pos
		child.MakeMove(m)

		score, _ := plainNegamax(&child, -beta, -alpha, depthLeft-1)
		score = -score

		if score >= beta {
			return beta, m
		}
		if score > alpha {
			alpha = score
			best = m
		}
	}
	return alpha, best
}

func (e *Engine) reportInfo(searcher *Searcher, depth, score int, tm *TimeManager) {
	if e.OnInfo == nil {
		return
	}
	e.OnInfo(SearchInfo{
		Depth:    depth,
		Score:    score,
		Nodes:    searcher.Nodes(),
		Time:     tm.Elapsed(),
		HashFull: e.tt.HashFull(),
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ScoreToString renders a score as UCI-adjacent human text ("Mate in
// N" or pawn units), used by the CLI's demo and benchmark modes.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + itoa(mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100
	return sign + itoa(pawns) + "." + itoa(centipawns)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}
