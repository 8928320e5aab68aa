package bench

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BenchmarkRun is one record of a fixed-depth "benchmark" CLI
// invocation.
type BenchmarkRun struct {
	Timestamp time.Time `json:"timestamp"`
	FEN       string    `json:"fen"`
	Depth     int       `json:"depth"`
	Nodes     uint64    `json:"nodes"`
	ElapsedMS int64     `json:"elapsed_ms"`
	NPS       uint64    `json:"nps"`
	BestMove  string    `json:"best_move"`
	ScoreCP   int       `json:"score_cp"`
}

const keyPrefix = "run/"

// Store wraps a BadgerDB database of benchmark run history, rooted at
// the platform data directory. Close is safe on a nil or unopened
// Store; RecordRun and History need a Store returned by a successful
// Open. Open and RecordRun report failures as errors, which the
// benchmark mode logs without failing.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the benchmark history database.
func Open() (*Store, error) {
	dir, err := databaseDir()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun appends run, keyed by its RFC3339 timestamp.
func (s *Store) RecordRun(run BenchmarkRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	key := keyPrefix + run.Timestamp.Format(time.RFC3339Nano)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// History returns the most recent runs, newest first, capped at limit
// (0 or negative means unlimited).
func (s *Store) History(limit int) ([]BenchmarkRun, error) {
	var runs []BenchmarkRun

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var run BenchmarkRun
				if err := json.Unmarshal(val, &run); err != nil {
					return err
				}
				runs = append(runs, run)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
