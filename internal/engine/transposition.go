package engine

import (
	"github.com/kestrel-chess/kestrel/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // true minimax value
	TTLowerBound               // failed high (beta cutoff): true value >= Score
	TTUpperBound               // failed low: true value <= Score
)

// TTEntry is one slot of the transposition table. The key is stored in
// full (not truncated to its upper bits) since the table always-replaces
// and never chains, so there's no packing pressure to trade away
// collision safety for.
type TTEntry struct {
	Key      uint64
	BestMove board.Move
	Score    int16
	Depth    int8
	Flag     TTFlag
}

// TranspositionTable is a fixed-size, open-addressed, always-replace
// hash table keyed by Zobrist hash. An empty slot is recognized by
// Key == 0 (and NoMove for the best move); a real position hashing to
// exactly zero is indistinguishable from empty, an accepted and
// negligible risk.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64

	hits   uint64
	probes uint64
}

// NewTranspositionTable allocates a table sized to sizeMB megabytes,
// rounded down to a power of two entry count so indexing is a mask
// instead of a modulo.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = uint64(16) // approximate size of TTEntry
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Get returns the occupant of key's slot iff its stored key matches.
func (tt *TranspositionTable) Get(key uint64) (TTEntry, bool) {
	tt.probes++
	entry := tt.entries[key&tt.mask]
	if entry.Key == key && entry.Key != 0 {
		tt.hits++
		return entry, true
	}
	return TTEntry{}, false
}

// Probe returns the stored move and a usable score for (depth, alpha,
// beta) per the transposition table's probe contract: a hit requires
// stored.Depth >= depth and one of Exact, or Lower with stored score
// at least beta (beta is reported), or Upper with stored score at most
// alpha (alpha is reported). The move is always returned on any hit,
// even one that isn't deep enough to prune, so the caller can still use
// it for move ordering.
func (tt *TranspositionTable) Probe(key uint64, depth, alpha, beta int) (board.Move, int, bool) {
	entry, ok := tt.Get(key)
	if !ok {
		return board.NoMove, 0, false
	}
	if int(entry.Depth) < depth {
		return entry.BestMove, 0, false
	}
	switch entry.Flag {
	case TTExact:
		return entry.BestMove, int(entry.Score), true
	case TTLowerBound:
		if int(entry.Score) >= beta {
			return entry.BestMove, beta, true
		}
	case TTUpperBound:
		if int(entry.Score) <= alpha {
			return entry.BestMove, alpha, true
		}
	}
	return entry.BestMove, 0, false
}

// HashMove returns the move stored for key, if any, regardless of
// whether it is deep enough to use for pruning. Used by move ordering,
// which wants the hash move even when Probe itself misses.
func (tt *TranspositionTable) HashMove(key uint64) board.Move {
	entry, ok := tt.Get(key)
	if !ok {
		return board.NoMove
	}
	return entry.BestMove
}

// Insert unconditionally replaces the occupant of key's slot.
func (tt *TranspositionTable) Insert(key uint64, move board.Move, score, depth int, flag TTFlag) {
	tt.entries[key&tt.mask] = TTEntry{
		Key:      key,
		BestMove: move,
		Score:    int16(score),
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear zeroes every slot.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that
// is occupied, sampled over the first 1000 entries.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Key != 0 {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT converts a stored mate score back to one relative
// to the current ply, since mate scores are stored relative to the
// node they were found at (distance from root) but need to be relative
// to the probing node's own ply.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT is the inverse of AdjustScoreFromTT, applied before
// storing a mate score.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
