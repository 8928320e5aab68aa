// Package book implements the engine's opening book: a small embedded
// table mapping a root position's Zobrist hash to a handful of
// reasonable replies, picked uniformly at random rather than weighted,
// since the book carries no statistics worth weighting by.
package book

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/kestrel-chess/kestrel/internal/board"
)

//go:embed book.json
var defaultBookFS embed.FS

// Book maps a Zobrist hash (parsed from the hex keys of the JSON blob)
// to the move shapes recorded for that position.
type Book struct {
	entries map[uint64][]board.Move
}

// Load parses blob as a JSON object of {"<hex hash>": ["e2e4", ...]}.
// A move string that fails to parse, or that doesn't resolve to a
// legal move from any position sharing that hash, is silently dropped
// rather than failing the whole load: a partially-bad book is still
// useful.
func Load(blob []byte) (*Book, error) {
	var raw map[string][]string
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("book: parse: %w", err)
	}

	b := &Book{entries: make(map[uint64][]board.Move, len(raw))}
	for hexKey, ucis := range raw {
		key, err := strconv.ParseUint(hexKey, 16, 64)
		if err != nil {
			continue
		}
		b.entries[key] = parseUCIStrings(ucis)
	}
	return b, nil
}

// parseUCIStrings keeps only the syntactically valid UCI move shapes;
// full legality is re-checked against the actual position at probe
// time, since a book move's flags (capture, en passant, castling) can
// only be recovered from the position it's played in.
func parseUCIStrings(ucis []string) []board.Move {
	moves := make([]board.Move, 0, len(ucis))
	for _, u := range ucis {
		if len(u) < 4 || len(u) > 5 {
			continue
		}
		m := encodeUCIShape(u)
		if m == board.NoMove {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}

// encodeUCIShape builds a bare from/to (and promotion) move with no
// capture/castle/en-passant flags; Probe re-resolves it against the
// real legal move list before returning it.
func encodeUCIShape(u string) board.Move {
	from, err1 := board.ParseSquare(u[0:2])
	to, err2 := board.ParseSquare(u[2:4])
	if err1 != nil || err2 != nil {
		return board.NoMove
	}
	if len(u) == 5 {
		pt := promotionFromLetter(u[4])
		if pt == board.NoPieceType {
			return board.NoMove
		}
		return board.NewPromotion(from, to, pt)
	}
	return board.NewMove(from, to)
}

func promotionFromLetter(c byte) board.PieceType {
	switch c {
	case 'n':
		return board.Knight
	case 'b':
		return board.Bishop
	case 'r':
		return board.Rook
	case 'q':
		return board.Queen
	}
	return board.NoPieceType
}

// LoadDefault loads the engine's built-in embedded book.
func LoadDefault() (*Book, error) {
	blob, err := defaultBookFS.ReadFile("book.json")
	if err != nil {
		return nil, fmt.Errorf("book: read embedded blob: %w", err)
	}
	return Load(blob)
}

// Probe looks up pos's root hash and, on a hit, returns a uniformly
// random listed move re-resolved against pos's actual legal moves (to
// recover its real capture/en-passant/castling flags). Returns false
// on a miss, an empty entry, or when every listed move fails to
// resolve to something legal.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}

	candidates, ok := b.entries[pos.Hash]
	if !ok || len(candidates) == 0 {
		return board.NoMove, false
	}

	legal := pos.GenerateLegalMoves()
	order := rand.Perm(len(candidates))
	for _, i := range order {
		if resolved, found := resolve(legal, candidates[i]); found {
			return resolved, true
		}
	}
	return board.NoMove, false
}

// resolve finds the legal move matching m's from/to/promotion shape,
// recovering the flags lost by the book's plain from/to encoding.
func resolve(legal *board.MoveList, m board.Move) (board.Move, bool) {
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != m.From() || lm.To() != m.To() {
			continue
		}
		if m.IsPromotion() != lm.IsPromotion() {
			continue
		}
		if m.IsPromotion() && m.Promotion() != lm.Promotion() {
			continue
		}
		return lm, true
	}
	return board.NoMove, false
}

// Size returns the number of distinct root positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
