package engine

import (
	"math/bits"

	om "othello-engine/othellomg"
)

// Below this many empties the solver takes moves in board order; sorting
// costs more than it saves.
const sortedSolveEmpties = 6

/*
solveExact returns the final disc difference of pos under perfect play from
the mover's view, searched to the end of the game. When time runs out it
returns the current disc difference and latches s.stopped, so callers must
discard the result.
*/
func (s *Searcher) solveExact(pos om.Position, alpha, beta int32, ply int) int32 {
	s.nodes++
	if s.timeUp() {
		s.stats.TimeoutNodes++
		return int32(pos.DiscDiff())
	}
	if pos.Full() {
		return int32(pos.FinalDiff())
	}

	moves := pos.Moves()
	if moves == 0 {
		if pos.OpponentMoves() == 0 {
			return int32(pos.FinalDiff())
		}
		return -s.solveExact(pos.Pass(), -beta, -alpha, ply+1)
	}

	best := -maxDiscDiff
	if pos.Empties() <= sortedSolveEmpties || ply >= MaxPly {
		for bb := moves; bb != 0; bb &= bb - 1 {
			sq := om.Square(bits.TrailingZeros64(bb))
			score := -s.solveExact(pos.Play(sq), -beta, -alpha, ply+1)
			if s.stopped {
				return best
			}
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	list := s.endgameMoves(pos, moves, ply)
	for index := range list.moves {
		orderNextMove(index, list)
		score := -s.solveExact(pos.Play(list.moves[index].square), -beta, -alpha, ply+1)
		if s.stopped {
			return best
		}
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// endgameMoves orders corners first, then moves leaving the opponent the
// fewest replies.
func (s *Searcher) endgameMoves(pos om.Position, moves uint64, ply int) *moveList {
	list := &s.lists[ply]
	list.moves = list.moves[:0]
	for bb := moves; bb != 0; bb &= bb - 1 {
		sq := om.Square(bits.TrailingZeros64(bb))
		child := pos.Play(sq)
		score := -int32(bits.OnesCount64(child.Moves()))
		if sq.IsCorner() {
			score += cornerOffset
		}
		list.moves = append(list.moves, move{square: sq, score: score})
	}
	return list
}

// solveRoot solves every root move in order and keeps the first best one.
func (s *Searcher) solveRoot(pos om.Position, order []om.Square) (om.Square, int32) {
	bestMove, best := om.NoSquare, -maxDiscDiff
	alpha := -maxDiscDiff
	for _, sq := range order {
		score := -s.solveExact(pos.Play(sq), -maxDiscDiff, -alpha, 1)
		if s.stopped {
			break
		}
		if score > best {
			bestMove, best = sq, score
		}
		alpha = Max(alpha, best)
	}
	return bestMove, best
}
