package engine

import (
	"time"

	om "othello-engine/othellomg"

	"github.com/rs/zerolog"
)

// =============================================================================
// LMR/EXTENSION PARAMETERS
// =============================================================================
var lmrMinDepth int8 = 3
var lmrMinIndex = 3
var lmrCaptureLimit = 5
var extensionRun = 6
var extensionPlies = 2 // extensions stop at ply extensionPlies*rootDepth

// Searcher owns everything one search thread mutates: killers, history, the
// per-ply move buffers and, when tables are private, its transposition table.
type Searcher struct {
	opts    *Options
	log     zerolog.Logger
	tt      TransTable
	th      *TimeHandler
	killers KillerStruct
	history HistoryStruct
	stats   CutStatistics
	lists   [MaxPly + 1]moveList
	pvs     [MaxPly + 2]PVLine

	nodes     uint64
	rootDepth int8
	stopped   bool
}

func newSearcher(opts *Options, tt TransTable) *Searcher {
	s := &Searcher{opts: opts, log: opts.Logger, tt: tt}
	for i := range s.lists {
		s.lists[i].moves = make([]move, 0, 32)
	}
	s.reset()
	return s
}

// reset prepares the searcher for a new root search. Private tables are
// cleared here; the shared table is cleared once per call by the engine.
func (s *Searcher) reset() {
	s.killers.ClearKillers()
	s.history.Clear()
	s.stats = CutStatistics{}
	s.nodes = 0
	s.stopped = false
	if lt, ok := s.tt.(*localTable); ok {
		lt.Clear()
	}
}

// timeUp polls the deadline and latches the result.
func (s *Searcher) timeUp() bool {
	if !s.stopped && s.th.TimeStatus() {
		s.stopped = true
	}
	return s.stopped
}

// rootsearch runs the full search for pos: a one-ply baseline, then either the
// exact solver or iterative deepening with aspiration windows. Only completed
// iterations are kept.
func (s *Searcher) rootsearch(pos om.Position, maxDepth int) Result {
	s.reset()
	moves := pos.Moves()
	if moves == 0 {
		return Result{Move: om.NoSquare}
	}

	list := s.scoreMoves(pos, moves, 0, om.NoSquare)
	order := make([]om.Square, 0, len(list.moves))
	for i := range list.moves {
		orderNextMove(i, list)
		order = append(order, list.moves[i].square)
	}

	bestMove, bestScore := staticBest(pos, order)
	result := Result{Move: bestMove, Score: HeuristicScore(bestScore), Depth: 1, PV: PVLine{Moves: []om.Square{bestMove}}}

	if pos.Empties() <= s.opts.EndgameEmpties {
		move, diff := s.solveRoot(pos, order)
		if !s.stopped {
			result = Result{Move: move, Score: ExactScore(diff), Depth: pos.Empties(), PV: PVLine{Moves: []om.Square{move}}}
			s.logIteration(result, om.NoSquare)
		}
		result.Nodes = s.nodes
		return result
	}

	var prevScore int32
	for depth := Min(2, maxDepth); depth <= maxDepth && depth > 1; depth++ {
		if s.timeUp() {
			break
		}
		s.rootDepth = int8(depth)
		alpha, beta := -MaxScore, MaxScore
		if depth > 2 {
			alpha, beta = prevScore-s.opts.AspirationWindow, prevScore+s.opts.AspirationWindow
		}

		move, score := s.searchRoot(pos, order, int8(depth), alpha, beta)
		if !s.stopped && (score <= alpha || score >= beta) && (alpha > -MaxScore || beta < MaxScore) {
			s.stats.AspirationFails++
			move, score = s.searchRoot(pos, order, int8(depth), -MaxScore, MaxScore)
		}
		if s.stopped {
			break
		}

		prevScore = score
		result = Result{Move: move, Score: HeuristicScore(score), Depth: depth, PV: s.pvs[0].Clone()}
		s.logIteration(result, om.NoSquare)

		// Search the previous best first next time.
		order = promote(order, move)
	}

	if s.opts.PrintCutStats {
		s.dumpCutStats()
	}
	result.Nodes = s.nodes
	return result
}

// searchRoot searches every root move in order at depth, the first with the
// full window and the rest with a null window plus re-search.
func (s *Searcher) searchRoot(pos om.Position, order []om.Square, depth int8, alpha, beta int32) (om.Square, int32) {
	s.pvs[0].Clear()
	bestMove, bestScore := om.NoSquare, -MaxScore
	for i, sq := range order {
		fc := om.CountFlips(pos.Own, pos.Opp, sq.Bit())
		child := pos.Play(sq)
		childPV := &s.pvs[1]
		childPV.Clear()

		newDepth := depth - 1 + s.extension(pos, child, sq, fc, 0)
		var score int32
		if i == 0 {
			score = -s.alphabeta(child, newDepth, -beta, -alpha, 1)
		} else {
			score = s.searchMoveWithPVS(child, newDepth, 0, alpha, beta, 0)
		}
		if s.stopped {
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = sq
			s.pvs[0].Update(sq, *childPV)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return bestMove, bestScore
}

func (s *Searcher) alphabeta(pos om.Position, depth int8, alpha, beta int32, ply int) int32 {
	s.nodes++
	pvLine := &s.pvs[ply]
	pvLine.Clear()

	if s.timeUp() {
		s.stats.TimeoutNodes++
		return Evaluate(pos.Own, pos.Opp)
	}
	if pos.Full() {
		return terminalScore(pos.FinalDiff())
	}
	if depth <= 0 || ply >= MaxPly {
		return Evaluate(pos.Own, pos.Opp)
	}

	alphaOrig := alpha

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	ttMove := om.NoSquare
	if entry, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = entry.Move
		var cut bool
		var ttScore int32
		alpha, beta, cut, ttScore = useEntry(entry, depth, alpha, beta)
		if cut {
			s.stats.TTCutoffs++
			return ttScore
		}
	}

	moves := pos.Moves()
	if moves == 0 {
		if pos.OpponentMoves() == 0 {
			return terminalScore(pos.FinalDiff())
		}
		childPV := &s.pvs[ply+1]
		childPV.Clear()
		score := -s.alphabeta(pos.Pass(), depth-1, -beta, -alpha, ply+1)
		pvLine.Update(om.NoSquare, *childPV)
		s.store(pos.Hash, depth, score, alphaOrig, beta, om.NoSquare)
		return score
	}

	list := s.scoreMoves(pos, moves, ply, ttMove)
	bestScore, bestMove := -MaxScore, om.NoSquare

	for index := range list.moves {
		orderNextMove(index, list)
		mv := list.moves[index]

		child := pos.Play(mv.square)
		childPV := &s.pvs[ply+1]
		childPV.Clear()
		ext := s.extension(pos, child, mv.square, mv.flips, ply)

		var score int32
		if index == 0 {
			score = -s.alphabeta(child, depth-1+ext, -beta, -alpha, ply+1)
		} else {
			/*
				LATE MOVE REDUCTIONS
				Quiet-looking moves late in the list are first probed one ply shallower.
			*/
			var reduct int8
			if depth >= lmrMinDepth && index >= lmrMinIndex && ext == 0 &&
				!mv.square.IsCorner() && mv.flips.Vertical+mv.flips.Horizontal < lmrCaptureLimit {
				reduct = 1
				s.stats.LMRReductions++
			}
			score = s.searchMoveWithPVS(child, depth-1+ext, reduct, alpha, beta, ply)
		}
		if s.stopped {
			return bestScore
		}

		if score > bestScore {
			bestScore = score
			bestMove = mv.square
		}

		// Beta cutoff
		if score >= beta {
			s.stats.BetaCutoffs++
			s.killers.InsertKiller(mv.square, ply)
			s.history.Increment(pos.Side, mv.square, depth)
			break
		}

		if score > alpha {
			alpha = score
			pvLine.Update(mv.square, *childPV)
		}
	}

	s.store(pos.Hash, depth, bestScore, alphaOrig, beta, bestMove)
	return bestScore
}

// store records a node result unless the search was cut short.
func (s *Searcher) store(hash uint64, depth int8, score, alphaOrig, beta int32, move om.Square) {
	if s.stopped {
		return
	}
	var flag int8 = ExactFlag
	switch {
	case score <= alphaOrig:
		flag = AlphaFlag
	case score >= beta:
		flag = BetaFlag
	}
	s.tt.Store(hash, depth, score, flag, move)
}

// searchMoveWithPVS performs a Principal Variation Search for a move
// This implements the standard PVS 3-stage pattern:
// 1. Search with reduced depth using null window
// 2. If reduction was applied and score > alpha, re-search at full depth with null window
// 3. If score is between alpha and beta, do a full window search
func (s *Searcher) searchMoveWithPVS(child om.Position, depth, reduction int8, alpha, beta int32, ply int) int32 {
	score := -s.alphabeta(child, depth-reduction, -(alpha + 1), -alpha, ply+1)

	if score > alpha && reduction > 0 && !s.stopped {
		s.stats.LMRResearches++
		score = -s.alphabeta(child, depth, -(alpha + 1), -alpha, ply+1)
	}

	if score > alpha && score < beta && !s.stopped {
		s.stats.PVSResearches++
		score = -s.alphabeta(child, depth, -beta, -alpha, ply+1)
	}

	return score
}

/*
extension grants one extra ply to sharp moves: taking a corner, handing the
opponent a new corner reply, or flipping a long line in one direction. Only
the first extensionPlies*rootDepth plies extend, which bounds the tree.
*/
func (s *Searcher) extension(pos, child om.Position, sq om.Square, fc om.FlipCounts, ply int) int8 {
	if ply >= extensionPlies*int(s.rootDepth) {
		return 0
	}
	if sq.IsCorner() || fc.LongestRun >= extensionRun {
		s.stats.Extensions++
		return 1
	}
	if child.Moves()&om.CornerMask&^pos.OpponentMoves() != 0 {
		s.stats.Extensions++
		return 1
	}
	return 0
}

// staticBest scores each move one ply ahead and keeps the first maximum.
func staticBest(pos om.Position, order []om.Square) (om.Square, int32) {
	bestMove, bestScore := om.NoSquare, -MaxScore
	for _, sq := range order {
		if score := staticScore(pos.Play(sq)); score > bestScore {
			bestMove, bestScore = sq, score
		}
	}
	return bestMove, bestScore
}

func (s *Searcher) logIteration(r Result, rootMove om.Square) {
	elapsed := s.th.Elapsed()
	ms := elapsed.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	ev := s.log.Debug().
		Int("depth", r.Depth).
		Str("score", r.Score.String()).
		Uint64("nodes", s.nodes).
		Int64("time_ms", elapsed.Milliseconds()).
		Uint64("nps", s.nodes*1000/uint64(ms)).
		Stringer("move", r.Move).
		Stringer("pv", r.PV)
	if rootMove != om.NoSquare {
		ev = ev.Stringer("root", rootMove)
	}
	ev.Msg("iteration complete")
}

// Result is the outcome of a root search.
type Result struct {
	Move    om.Square
	Score   Score
	Depth   int
	Nodes   uint64
	PV      PVLine
	Mode    Mode
	Elapsed time.Duration
}
