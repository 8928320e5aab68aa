package engine

import (
	"time"

	"github.com/kestrel-chess/kestrel/internal/board"
)

// UCILimits contains UCI time control parameters, parsed from the
// arguments of a "go" command.
type UCILimits struct {
	Time      [2]time.Duration // wtime, btime (remaining time for each color)
	Inc       [2]time.Duration // winc, binc (increment per move)
	MovesToGo int              // moves until next time control (unused by the formula below)
	MoveTime  time.Duration    // fixed time per move (overrides the formula)
	Depth     int              // maximum search depth
	Nodes     uint64           // node limit from "go nodes"; parsed but not enforced by the search
	Infinite  bool             // search until stopped
}

// latency is subtracted from the computed think time as a fixed buffer
// against the round-trip to the GUI and engine startup overhead.
const latency = 100 * time.Millisecond

// TimeManager turns UCI time controls into a single allotment for the
// current move: think_ms = side_time/20 + side_inc - latency. There is
// no stability-based rescaling; the allotment is fixed once computed
// and the driver stops as soon as it elapses.
type TimeManager struct {
	allotted  time.Duration
	startTime time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init computes the time allotment for the side to move.
func (tm *TimeManager) Init(limits UCILimits, us board.Color) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.allotted = limits.MoveTime
		return
	}

	if limits.Infinite || limits.Depth > 0 || (limits.Time[us] == 0 && limits.MoveTime == 0) {
		tm.allotted = time.Hour
		return
	}

	think := limits.Time[us]/20 + limits.Inc[us] - latency
	if think < 10*time.Millisecond {
		think = 10 * time.Millisecond
	}
	tm.allotted = think
}

// Elapsed returns the time elapsed since the search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Deadline returns the absolute time the search must stop by.
func (tm *TimeManager) Deadline() time.Time {
	return tm.startTime.Add(tm.allotted)
}

// ShouldStop returns true once the allotted time has elapsed.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.allotted
}
