package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"othello-engine/engine"
	om "othello-engine/othellomg"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	timeFlag := flag.Duration("time", 0, "time budget per search, 0 for none")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	boardFlag := flag.String("board", "", "64 cells to search (empty = initial position)")
	sideFlag := flag.String("side", "black", "side to move")
	threadsFlag := flag.Int("threads", 0, "worker threads, 0 for auto")
	privateFlag := flag.Bool("private", false, "private transposition tables")
	sequentialFlag := flag.Bool("sequential", false, "disable the worker pool")
	cutStats := flag.Bool("cutstats", false, "log cut statistics after each search")
	verbose := flag.Bool("v", false, "log every completed iteration")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	board := om.InitialBoard()
	if *boardFlag != "" {
		var err error
		if board, err = om.ParseBoard(*boardFlag); err != nil {
			log.Fatal().Err(err).Msg("invalid board")
		}
	}
	side, err := om.ParseColor(*sideFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid side")
	}

	opts := engine.DefaultOptions()
	opts.Threads = *threadsFlag
	opts.PrivateTables = *privateFlag
	opts.DisableParallel = *sequentialFlag
	opts.PrintCutStats = *cutStats
	eng, err := engine.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build engine")
	}

	so := engine.SearchOptions{Time: engine.NoTimeLimit, MaxDepth: *depthFlag}
	if *timeFlag > 0 {
		so.Time = *timeFlag
	}

	log.Info().Int("depth", *depthFlag).Int("repeat", *repeatFlag).Stringer("side", side).Msg("searchbench")

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		res := eng.AnalyzePosition(om.NewPosition(board, side), so)
		log.Info().
			Int("iteration", i+1).
			Stringer("bestmove", res.Move).
			Str("score", res.Score.String()).
			Uint64("nodes", res.Nodes).
			Dur("time", res.Elapsed).
			Msg("search done")
	}
	log.Info().Dur("total", time.Since(startAll)).Msg("searchbench done")

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
