package engine

import (
	"math/bits"

	om "othello-engine/othellomg"
)

type move struct {
	square om.Square
	score  int32
	flips  om.FlipCounts
}
type moveList struct {
	moves []move
}

/*
	Move ordering offsets!
	- The transposition table move is tried first; it was best the last time we looked at this position.
	- Corners can never be flipped back, so they come right after.
	- Everything else is ranked by what the move captures: vertical and horizontal runs are weighted above
	  diagonals, edges are preferred, and long single-direction runs get a bonus since they tend to build
	  solid lines.
	- History and killers are added on top so cutoffs elsewhere in the tree pull moves forward.
*/
var ttOffset int32 = 2_000_000
var cornerOffset int32 = 1_000_000
var killerOffset int32 = 20_000

const (
	verticalWeight   = 48
	horizontalWeight = 38
	totalWeight      = 8
	edgeWeight       = 40
	runWeight        = 22
	longVertical     = 400 // vertical captures of 6 or more
	fullVertical     = 700 // extra for 7
	longEdge         = 260 // edge move capturing 5 or more vertically
)

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	tempMove := moves.moves[currIndex]
	moves.moves[currIndex] = moves.moves[bestIndex]
	moves.moves[bestIndex] = tempMove
}

// captureScore ranks a non-corner move by the discs it captures.
func captureScore(sq om.Square, fc om.FlipCounts) int32 {
	edge := sq.IsEdge()
	score := int32(fc.Vertical*verticalWeight + fc.Horizontal*horizontalWeight + fc.Total*totalWeight + fc.LongestRun*runWeight)
	if edge {
		score += edgeWeight
	}
	if fc.Vertical >= 6 {
		score += longVertical
	}
	if fc.Vertical >= 7 {
		score += fullVertical
	}
	if edge && fc.Vertical >= 5 {
		score += longEdge
	}
	return score
}

// scoreMoves fills the ply's buffer with every legal move of pos, scored for
// ordering. The slice is reused, so callers must finish with it before
// searching deeper at the same ply.
func (s *Searcher) scoreMoves(pos om.Position, moves uint64, ply int, ttMove om.Square) *moveList {
	list := &s.lists[ply]
	list.moves = list.moves[:0]
	for bb := moves; bb != 0; bb &= bb - 1 {
		sq := om.Square(bits.TrailingZeros64(bb))
		fc := om.CountFlips(pos.Own, pos.Opp, sq.Bit())
		var score int32
		switch {
		case sq == ttMove:
			score = ttOffset
		case sq.IsCorner():
			score = cornerOffset
		default:
			score = captureScore(sq, fc)
		}
		score += s.history.Score(pos.Side, sq)
		if s.killers.IsKiller(sq, ply) {
			score += killerOffset
		}
		list.moves = append(list.moves, move{square: sq, score: score, flips: fc})
	}
	return list
}
