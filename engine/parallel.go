package engine

import (
	"context"
	"sync/atomic"
	"time"

	om "othello-engine/othellomg"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// collectGrace is how long the pool may run past the deadline to report the
// iterations its workers were finishing.
const collectGrace = 25 * time.Millisecond

// rootMoveHook runs at the start of every root move task when set.
var rootMoveHook func(om.Square)

type rootResult struct {
	index  int
	result Result
}

// searched reports whether the move got past its one-ply baseline.
func (r rootResult) searched() bool { return r.result.Depth > 1 || r.result.Score.Exact }

// better reports whether r should replace best. A searched move outranks a
// baseline; equal scores go to the move earlier in root order.
func (r rootResult) better(best rootResult) bool {
	if best.index < 0 {
		return true
	}
	if rs, bs := r.searched(), best.searched(); rs != bs {
		return rs
	}
	if r.result.Score.Better(best.result.Score) {
		return true
	}
	return !best.result.Score.Better(r.result.Score) && r.index < best.index
}

/*
scoreRootMove searches one root move on its own: a one-ply baseline, then the
exact solver for short endgames or iterative deepening with aspiration windows
on the reply. The score is from the root mover's view and only completed
iterations count.
*/
func (s *Searcher) scoreRootMove(pos om.Position, sq om.Square, maxDepth int) Result {
	s.reset()
	if rootMoveHook != nil {
		rootMoveHook(sq)
	}

	fc := om.CountFlips(pos.Own, pos.Opp, sq.Bit())
	child := pos.Play(sq)
	result := Result{Move: sq, Score: HeuristicScore(staticScore(child)), Depth: 1, PV: PVLine{Moves: []om.Square{sq}}}

	if child.Empties() <= s.opts.EndgameEmpties {
		diff := -s.solveExact(child, -maxDiscDiff, maxDiscDiff, 1)
		if !s.stopped {
			result.Score = ExactScore(diff)
			result.Depth = child.Empties() + 1
			s.logIteration(result, sq)
		}
		result.Nodes = s.nodes
		return result
	}

	var prevScore int32
	for depth := 2; depth <= maxDepth; depth++ {
		if s.timeUp() {
			break
		}
		s.rootDepth = int8(depth)
		newDepth := int8(depth) - 1 + s.extension(pos, child, sq, fc, 0)

		alpha, beta := -MaxScore, MaxScore
		if depth > 2 {
			alpha, beta = prevScore-s.opts.AspirationWindow, prevScore+s.opts.AspirationWindow
		}
		score := s.searchReply(child, newDepth, alpha, beta)
		if !s.stopped && (score <= alpha || score >= beta) && (alpha > -MaxScore || beta < MaxScore) {
			s.stats.AspirationFails++
			score = s.searchReply(child, newDepth, -MaxScore, MaxScore)
		}
		if s.stopped {
			break
		}

		prevScore = score
		pv := PVLine{Moves: []om.Square{sq}}
		pv.Moves = append(pv.Moves, s.pvs[1].Moves...)
		result = Result{Move: sq, Score: HeuristicScore(score), Depth: depth, PV: pv}
		s.logIteration(result, sq)
	}
	if s.opts.PrintCutStats {
		s.dumpCutStats()
	}
	result.Nodes = s.nodes
	return result
}

func (s *Searcher) searchReply(child om.Position, depth int8, alpha, beta int32) int32 {
	return -s.alphabeta(child, depth, -beta, -alpha, 1)
}

// searchParallel hands every root move to the worker pool and keeps the best
// result reported before the deadline. A failed worker aborts the pool and
// returns ErrWorkerFailed.
func (e *Engine) searchParallel(pos om.Position, order []om.Square, so SearchOptions, th *TimeHandler) (Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := new(atomic.Bool)
	wth := th.withStop(stop)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.caps.Workers)
	context.AfterFunc(gctx, func() { stop.Store(true) })

	results := make(chan rootResult, len(order))
	done := make(chan error, 1)
	inflight := make(chan struct{})
	e.inflight = inflight

	go func() {
		defer close(inflight)
		for i, sq := range order {
			i, sq := i, sq
			g.Go(func() (err error) {
				// Moves reached after the deadline are never scored.
				if gctx.Err() != nil || wth.TimeStatus() {
					return nil
				}
				s := e.acquire()
				defer e.release(s)
				defer func() {
					if r := recover(); r != nil {
						err = errors.Wrapf(ErrWorkerFailed, "root move %v: %v", sq, r)
					}
				}()
				s.th = wth
				results <- rootResult{index: i, result: s.scoreRootMove(pos, sq, so.MaxDepth)}
				return nil
			})
		}
		done <- g.Wait()
	}()

	var timeout <-chan time.Time
	if remaining := th.Remaining(); remaining != NoTimeLimit {
		timer := time.NewTimer(remaining + collectGrace)
		defer timer.Stop()
		timeout = timer.C
	}

	var err error
	select {
	case err = <-done:
	case <-timeout:
		e.log.Debug().Msg("deadline passed, abandoning unfinished root moves")
	}

	best := rootResult{index: -1}
	var nodes uint64
collect:
	for {
		select {
		case r := <-results:
			nodes += r.result.Nodes
			if r.better(best) {
				best = r
			}
		default:
			break collect
		}
	}
	if err != nil {
		return Result{Move: om.NoSquare}, err
	}
	if best.index < 0 {
		move, score := staticBest(pos, order)
		return Result{Move: move, Score: HeuristicScore(score), Depth: 1, PV: PVLine{Moves: []om.Square{move}}}, nil
	}
	best.result.Nodes = nodes
	return best.result, nil
}

// searchSequential scores the root moves one after another, each with an
// equal slice of the remaining time.
func (e *Engine) searchSequential(pos om.Position, order []om.Square, so SearchOptions, th *TimeHandler) Result {
	s := e.acquire()
	defer e.release(s)

	slice := NoTimeLimit
	if remaining := th.Remaining(); remaining != NoTimeLimit {
		slice = remaining / time.Duration(len(order))
	}

	best := rootResult{index: -1}
	var nodes uint64
	for i, sq := range order {
		s.th = th.Slice(slice)
		r := rootResult{index: i, result: s.scoreRootMove(pos, sq, so.MaxDepth)}
		nodes += r.result.Nodes
		if r.better(best) {
			best = r
		}
	}
	best.result.Nodes = nodes
	return best.result
}

// searchDirect runs the whole root search on one searcher.
func (e *Engine) searchDirect(pos om.Position, so SearchOptions, th *TimeHandler) Result {
	s := e.acquire()
	defer e.release(s)
	s.th = th
	return s.rootsearch(pos, so.MaxDepth)
}
