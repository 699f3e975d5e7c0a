package engine

import (
	"sync"
	"sync/atomic"

	om "othello-engine/othellomg"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Mode records which root strategy produced a Result.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeDirect
	ModeParallel
	ModeSequential
)

func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeParallel:
		return "parallel"
	case ModeSequential:
		return "sequential"
	}
	return "none"
}

// Engine picks moves for Othello positions. Calls are serialised; Stop may be
// called from any goroutine.
type Engine struct {
	opts   Options
	caps   Capabilities
	log    zerolog.Logger
	shared *sharedTable
	pool   chan *Searcher

	mu       sync.Mutex
	inflight chan struct{} // closed once the last pool's workers have returned
	stop     atomic.Pointer[atomic.Bool]
}

// New validates opts, probes the capabilities and builds the worker pool.
func New(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	caps := ProbeCapabilities(opts)
	e := &Engine{
		opts: opts,
		caps: caps,
		log:  opts.Logger.With().Str("component", "engine").Logger(),
		pool: make(chan *Searcher, caps.Workers),
	}
	e.opts.Logger = e.log
	if caps.SharedMemoryAvailable {
		e.shared = newSharedTable(opts.TTBits)
	}
	for i := 0; i < caps.Workers; i++ {
		var tt TransTable = e.shared
		if e.shared == nil {
			tt = newLocalTable(opts.TTBits)
		}
		e.pool <- newSearcher(&e.opts, tt)
	}
	e.log.Debug().
		Int("workers", caps.Workers).
		Bool("parallel", caps.ParallelismAvailable).
		Bool("shared_tt", caps.SharedMemoryAvailable).
		Int("tt_bits", opts.TTBits).
		Msg("engine ready")
	return e, nil
}

// Capabilities returns what the engine probed at construction.
func (e *Engine) Capabilities() Capabilities { return e.caps }

func (e *Engine) acquire() *Searcher { return <-e.pool }

func (e *Engine) release(s *Searcher) { e.pool <- s }

// Stop ends the running search early. The best completed result is returned.
func (e *Engine) Stop() {
	if flag := e.stop.Load(); flag != nil {
		flag.Store(true)
	}
}

// LegalMoves lists the legal moves of side on g in ascending square order.
// It panics if g holds an invalid cell.
func (e *Engine) LegalMoves(g om.Grid, side om.Color) []om.Square {
	b, err := om.Pack(g)
	if err != nil {
		panic(errors.Wrap(err, "legal moves"))
	}
	return b.LegalSquares(side)
}

// ChooseMove returns the move the engine picks for side, or false when side
// has no legal move. It panics if g holds an invalid cell.
func (e *Engine) ChooseMove(g om.Grid, side om.Color, so SearchOptions) (om.Square, bool) {
	res, err := e.Analyze(g, side, so)
	if err != nil {
		panic(err)
	}
	return res.Move, res.Move != om.NoSquare
}

// Analyze is ChooseMove with the full search result.
func (e *Engine) Analyze(g om.Grid, side om.Color, so SearchOptions) (Result, error) {
	b, err := om.Pack(g)
	if err != nil {
		return Result{Move: om.NoSquare}, errors.Wrap(err, "analyze")
	}
	return e.AnalyzePosition(om.NewPosition(b, side), so), nil
}

// AnalyzePosition searches pos within so and returns the chosen move.
func (e *Engine) AnalyzePosition(pos om.Position, so SearchOptions) Result {
	so = so.withDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.awaitWorkers()

	stop := new(atomic.Bool)
	e.stop.Store(stop)
	th := newTimeHandler(so.Time, stop)

	moves := om.SquaresOf(pos.Moves())
	if len(moves) == 0 {
		return Result{Move: om.NoSquare}
	}
	if e.shared != nil {
		e.shared.Clear()
	}

	var res Result
	switch {
	case len(moves) == 1 || e.caps.Workers <= 1:
		res = e.searchDirect(pos, so, th)
		res.Mode = ModeDirect
	case !e.caps.ParallelismAvailable:
		res = e.searchSequential(pos, orderRootMoves(pos, moves), so, th)
		res.Mode = ModeSequential
	default:
		order := orderRootMoves(pos, moves)
		var err error
		res, err = e.searchParallel(pos, order, so, th)
		res.Mode = ModeParallel
		if err != nil {
			e.log.Warn().Err(err).Msg("parallel search failed, scoring root moves sequentially")
			e.awaitWorkers()
			res = e.searchSequential(pos, order, so, th)
			res.Mode = ModeSequential
		}
	}
	res.Elapsed = th.Elapsed()

	e.log.Info().
		Stringer("side", pos.Side).
		Stringer("move", res.Move).
		Str("score", res.Score.String()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Stringer("mode", res.Mode).
		Dur("elapsed", res.Elapsed).
		Msg("move chosen")
	return res
}

// awaitWorkers blocks until workers abandoned by the previous parallel search
// have unwound. They stop promptly once their pool is cancelled.
func (e *Engine) awaitWorkers() {
	if e.inflight != nil {
		<-e.inflight
		e.inflight = nil
	}
}
