// sokosolve finds a push-optimal solution to a Sokoban level read from a
// file or stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"sokosolve/board"
	"sokosolve/history"
	"sokosolve/level"
	"sokosolve/progress"
	"sokosolve/solver"
)

var (
	buildVersion = "(devel)"
	buildTime    = "(just now)"

	maxStates  = flag.Int("max-states", 2_000_000, "state budget for the search")
	debugPath  = flag.String("debug", "", "enable board.Debug invariant assertions and log to this file")
	dotPath    = flag.String("dot", "", "write a Graphviz digraph of the entire generated search tree to this file")
	historyDB  = flag.String("history", "", "path to a sqlite database to append this run's result to")
	watchAddr  = flag.String("watch", "", "address to serve live progress snapshots on, e.g. :8080")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "only print version and exit")
)

// report is the JSON shape printed to stdout once a solve completes.
type report struct {
	Solved         bool  `json:"solved"`
	StatesVisited  int   `json:"states_visited"`
	PushesRequired int   `json:"pushes_required"`
	ElapsedMs      int64 `json:"elapsed_ms"`
}

func main() {
	fmt.Printf("sokosolve %v, build with %v at %v, running on %v\n",
		buildVersion, runtime.Version(), buildTime, runtime.GOARCH)

	flag.Parse()
	if *version {
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	var debugLog *os.File
	if *debugPath != "" {
		var err error
		debugLog, err = os.Create(*debugPath)
		if err != nil {
			log.Fatalf("cannot open %s for writing: %v", *debugPath, err)
		}
		defer debugLog.Close()
		log.SetOutput(debugLog)
		board.Debug = true
	}

	args := flag.Args()
	text, err := readLevel(args)
	if err != nil {
		log.Fatal(err)
	}

	lvl, err := level.Parse(text)
	if err != nil {
		log.Fatalf("parsing level: %v", err)
	}
	b, err := lvl.Board()
	if err != nil {
		log.Fatalf("building board: %v", err)
	}

	s := solver.New(b)
	if debugLog != nil {
		s.SetLogger(solver.WriterLogger{W: debugLog})
	}

	var dotFile *os.File
	if *dotPath != "" {
		var err error
		dotFile, err = os.Create(*dotPath)
		if err != nil {
			log.Fatalf("cannot open %s for writing: %v", *dotPath, err)
		}
		defer dotFile.Close()
		graph := solver.NewGraphWriter(dotFile)
		defer graph.Close()
		s.SetGraphWriter(graph)
	}

	runID := progress.NewRunID()
	var hub *progress.Hub
	if *watchAddr != "" {
		hub = progress.NewHub()
		go hub.Run()
		mux := http.NewServeMux()
		mux.HandleFunc("/progress", hub.Handler)
		go func() {
			log.Printf("serving progress snapshots on %s (run=%s)", *watchAddr, runID)
			if err := http.ListenAndServe(*watchAddr, mux); err != nil {
				log.Printf("progress server: %v", err)
			}
		}()
	}

	started := time.Now()
	res := s.Solve(*maxStates)
	elapsed := time.Since(started)

	if hub != nil {
		hub.Publish(progress.Snapshot{
			RunID:          runID,
			StatesVisited:  res.StatesVisited,
			Done:           true,
			Solved:         res.Solved,
			PushesRequired: res.PushesRequired,
		})
	}

	if *historyDB != "" {
		store, err := history.Open(*historyDB)
		if err != nil {
			log.Printf("history: %v", err)
		} else {
			name := "stdin"
			if len(args) > 0 {
				name = args[0]
			}
			run := history.FromResult(runID, name, started, started.Add(elapsed), res, nil)
			if err := store.Save(run); err != nil {
				log.Printf("history: save: %v", err)
			}
			store.Close()
		}
	}

	out := report{
		Solved:         res.Solved,
		StatesVisited:  res.StatesVisited,
		PushesRequired: res.PushesRequired,
		ElapsedMs:      elapsed.Milliseconds(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

func readLevel(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
