package neural

import "github.com/kestrel-chess/kestrel/internal/board"

// Evaluator wraps a Weights set behind the shape the search core
// expects: construct once, call Evaluate per position. There is no
// incremental accumulator here (contrast the teacher's HalfKA-style
// nnue package) since this network recomputes its input from scratch
// every call.
type Evaluator struct {
	weights *Weights
}

// NewEvaluator returns an evaluator using the engine's built-in
// pre-baked weights.
func NewEvaluator() *Evaluator {
	return &Evaluator{weights: DefaultWeights()}
}

// Evaluate returns the network's side-to-move-relative centipawn
// adjustment for pos.
func (e *Evaluator) Evaluate(pos *board.Position) int {
	return e.weights.Predict(pos)
}
