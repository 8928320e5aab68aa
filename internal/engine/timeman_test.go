package engine

import (
	"testing"
	"time"

	"github.com/kestrel-chess/kestrel/internal/board"
)

func TestTimeManagerMoveTimeOverridesFormula(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{
		MoveTime: 500 * time.Millisecond,
		Time:     [2]time.Duration{10 * time.Second, 10 * time.Second},
	}, board.White)

	if tm.allotted != 500*time.Millisecond {
		t.Errorf("expected movetime to override the formula, got %v", tm.allotted)
	}
}

func TestTimeManagerInfiniteAndDepthGetLongAllotment(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{Infinite: true}, board.White)
	if tm.allotted < time.Minute {
		t.Errorf("expected a long allotment for infinite search, got %v", tm.allotted)
	}

	tm2 := NewTimeManager()
	tm2.Init(UCILimits{Depth: 10}, board.White)
	if tm2.allotted < time.Minute {
		t.Errorf("expected a long allotment for depth-limited search, got %v", tm2.allotted)
	}
}

func TestTimeManagerFormula(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{
		Time: [2]time.Duration{20 * time.Second, 20 * time.Second},
		Inc:  [2]time.Duration{500 * time.Millisecond, 500 * time.Millisecond},
	}, board.White)

	// think = 20s/20 + 0.5s - 0.1s = 1s + 0.4s = 1.4s
	want := 1400 * time.Millisecond
	if tm.allotted != want {
		t.Errorf("expected allotted=%v, got %v", want, tm.allotted)
	}
}

func TestTimeManagerFloor(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{
		Time: [2]time.Duration{1 * time.Millisecond, 1 * time.Millisecond},
	}, board.White)

	if tm.allotted != 10*time.Millisecond {
		t.Errorf("expected the 10ms floor to apply, got %v", tm.allotted)
	}
}

func TestTimeManagerShouldStop(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{MoveTime: 10 * time.Millisecond}, board.White)
	if tm.ShouldStop() {
		t.Errorf("should not stop immediately after Init")
	}
	time.Sleep(15 * time.Millisecond)
	if !tm.ShouldStop() {
		t.Errorf("expected ShouldStop to be true after the allotment elapsed")
	}
}

func TestTimeManagerDeadlineMatchesAllotment(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(UCILimits{MoveTime: 250 * time.Millisecond}, board.White)
	if d := tm.Deadline().Sub(tm.startTime); d != 250*time.Millisecond {
		t.Errorf("expected deadline = start + allotted, got delta %v", d)
	}
}
