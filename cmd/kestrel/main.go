// Command kestrel is a UCI-speaking chess engine. Run with no
// arguments to speak UCI over stdin/stdout, or "demo"/"benchmark" for
// the two standalone modes described in their respective functions
// below.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/kestrel-chess/kestrel/internal/bench"
	"github.com/kestrel-chess/kestrel/internal/board"
	"github.com/kestrel-chess/kestrel/internal/book"
	"github.com/kestrel-chess/kestrel/internal/engine"
	"github.com/kestrel-chess/kestrel/internal/uci"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "demo":
			runDemo(args[1:])
			return
		case "benchmark":
			runBenchmark(args[1:])
			return
		}
	}
	runUCI(args)
}

// startProfile begins pprof CPU profiling to path (or the CPUPROFILE
// env var if path is empty), returning a function that stops it. A
// no-op stop function is returned when neither is set.
func startProfile(path string) func() {
	if path == "" {
		path = os.Getenv("CPUPROFILE")
	}
	if path == "" {
		return func() {}
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatal("could not create CPU profile: ", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatal("could not start CPU profile: ", err)
	}
	log.Printf("CPU profiling enabled, writing to %s", path)
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}

// newEngine builds a 64MB-hash engine with the embedded opening book
// attached (book usage itself is still gated by the Book UCI option;
// benchmark mode below turns it off).
func newEngine() *engine.Engine {
	eng := engine.NewEngine(64)
	if b, err := book.LoadDefault(); err == nil {
		eng.SetBook(b)
	} else {
		log.Printf("opening book not loaded: %v", err)
	}
	return eng
}

func runUCI(args []string) {
	fs := flag.NewFlagSet("kestrel", flag.ExitOnError)
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	fs.Parse(args)

	stop := startProfile(*cpuprofile)
	defer stop()

	protocol := uci.New(newEngine())
	protocol.Run()
}

// runDemo plays the engine against itself from the starting position,
// 10 seconds per move, for up to 50 plies or until the game ends.
func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	fs.Parse(args)

	stop := startProfile(*cpuprofile)
	defer stop()

	eng := newEngine()
	pos := board.NewPosition()

	for ply := 0; ply < 50; ply++ {
		if pos.IsCheckmate() || pos.IsDraw() {
			break
		}

		move, score, _ := eng.FindBestMove(pos, engine.UCILimits{MoveTime: 10 * time.Second})
		if move == board.NoMove {
			break
		}

		pos.MakeMove(move)
		fmt.Printf("%d. %s  (%s)\n", ply+1, move.String(), engine.ScoreToString(score))
		fmt.Println(pos.String())
	}

	fmt.Println("final position:")
	fmt.Println(pos.String())
}

// runBenchmark runs a single fixed-depth search from the starting
// position (or -fen) and prints a summary, persisting it to the
// benchmark history store on a best-effort basis.
func runBenchmark(args []string) {
	fs := flag.NewFlagSet("benchmark", flag.ExitOnError)
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	fenFlag := fs.String("fen", "", "FEN to benchmark from (defaults to the starting position)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		log.Fatal("usage: kestrel benchmark <depth> [-fen <fen>]")
	}
	depth, err := strconv.Atoi(fs.Arg(0))
	if err != nil || depth <= 0 {
		log.Fatalf("invalid depth %q", fs.Arg(0))
	}

	stop := startProfile(*cpuprofile)
	defer stop()

	fen := *fenFlag
	var pos *board.Position
	if fen != "" {
		pos, err = board.ParseFEN(fen)
		if err != nil {
			log.Fatalf("invalid fen: %v", err)
		}
	} else {
		pos = board.NewPosition()
		fen = board.StartFEN
	}

	eng := newEngine()
	eng.SetUseBook(false)

	start := time.Now()
	move, score, nodes := eng.FindBestMove(pos, engine.UCILimits{Depth: depth})
	elapsed := time.Since(start)

	var nps uint64
	if elapsed > 0 {
		nps = uint64(float64(nodes) / elapsed.Seconds())
	}

	fmt.Printf("depth %d\n", depth)
	fmt.Printf("nodes %d\n", nodes)
	fmt.Printf("nps %d\n", nps)
	fmt.Printf("elapsed %s\n", elapsed)
	fmt.Printf("bestmove %s\n", move.String())
	fmt.Printf("score %s\n", engine.ScoreToString(score))

	recordBenchmark(bench.BenchmarkRun{
		Timestamp: start,
		FEN:       fen,
		Depth:     depth,
		Nodes:     nodes,
		ElapsedMS: elapsed.Milliseconds(),
		NPS:       nps,
		BestMove:  move.String(),
		ScoreCP:   score,
	})
}

// recordBenchmark persists run, logging but never failing the caller
// if the store can't be opened or written to.
func recordBenchmark(run bench.BenchmarkRun) {
	store, err := bench.Open()
	if err != nil {
		log.Printf("benchmark history not recorded: %v", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(run); err != nil {
		log.Printf("benchmark history not recorded: %v", err)
	}
}
