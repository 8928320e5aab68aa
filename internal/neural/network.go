// Package neural implements the engine's optional evaluator: a small,
// deterministic, fixed-point integer feed-forward network run purely
// for inference over pre-baked weights (no training happens here).
//
// The network is a flat multi-layer perceptron over a 768-dimensional
// board encoding, not a Stockfish-style incremental HalfKA network:
// every call recomputes the input vector from scratch, since the
// specification's network is small enough that incremental updates
// aren't worth the bookkeeping.
package neural

import "github.com/kestrel-chess/kestrel/internal/board"

// Scale is the fixed-point denominator: weights, biases, and
// activations are integers representing value*Scale.
const Scale = 64

// Layer widths. InputSize covers the twelve (color, role) planes of
// 64 squares each; the three hidden layers are deliberately narrow
// since this network only nudges the static evaluator, not replaces it.
const (
	InputSize  = 768
	Hidden1    = 8
	Hidden2    = 8
	Hidden3    = 8
	OutputSize = 1
)

// Weights holds every layer's weights and biases in fixed-point int16
// form. The zero value is usable (an all-zero network always predicts
// zero), which keeps NewEvaluator safe to call before weights are
// loaded from anywhere else.
type Weights struct {
	W0 [InputSize * Hidden1]int16
	B0 [Hidden1]int16
	W1 [Hidden1 * Hidden2]int16
	B1 [Hidden2]int16
	W2 [Hidden2 * Hidden3]int16
	B2 [Hidden3]int16
	W3 [Hidden3]int16
	B3 int16
}

func relu(x int16) int16 {
	if x < 0 {
		return 0
	}
	return x
}

func dot(x []int16, y []int16) int16 {
	var sum int32
	for i := range x {
		sum += int32(x[i]) * int32(y[i]) / Scale
	}
	return int16(sum)
}

// FeedForward runs the network over a 768-entry input vector and
// returns the raw (not side-flipped) scalar output.
func (w *Weights) FeedForward(input *[InputSize]int16) int16 {
	var h0 [Hidden1]int16
	for i := 0; i < Hidden1; i++ {
		h0[i] = relu(dot(input[:], w.W0[InputSize*i:InputSize*(i+1)]) + w.B0[i])
	}

	var h1 [Hidden2]int16
	for i := 0; i < Hidden2; i++ {
		h1[i] = relu(dot(h0[:], w.W1[Hidden1*i:Hidden1*(i+1)]) + w.B1[i])
	}

	var h2 [Hidden3]int16
	for i := 0; i < Hidden3; i++ {
		h2[i] = relu(dot(h1[:], w.W2[Hidden2*i:Hidden2*(i+1)]) + w.B2[i])
	}

	return dot(h2[:], w.W3[:]) + w.B3
}

// Serialize writes the twelve (color, role) occupancy planes of pos
// into a flat 768-entry fixed-point input vector: occupied squares
// get Scale, empty squares get 0. Plane order is
// [White, Black] x [Pawn, Knight, Bishop, Rook, Queen, King].
func Serialize(pos *board.Position) [InputSize]int16 {
	var input [InputSize]int16
	index := 0
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				input[index+int(sq)] = Scale
			}
			index += 64
		}
	}
	return input
}

// Predict returns the network's output for pos, sign-flipped so that,
// like the static evaluator, a positive score favors the side to move.
func (w *Weights) Predict(pos *board.Position) int {
	input := Serialize(pos)
	out := int(w.FeedForward(&input))
	if pos.SideToMove == board.Black {
		out = -out
	}
	return out
}
