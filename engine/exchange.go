package engine

import (
	"math/bits"

	om "othello-engine/othellomg"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

/*
netFlips is a one-ply exchange estimate for a move: the discs it flips minus
the most discs the opponent can flip back with a single reply.
*/
func netFlips(pos om.Position, sq om.Square) int {
	gain := bits.OnesCount64(pos.Flips(sq))
	child := pos.Play(sq)
	reply := 0
	for bb := child.Moves(); bb != 0; bb &= bb - 1 {
		reply = Max(reply, bits.OnesCount64(om.Flips(child.Own, child.Opp, bb&-bb)))
	}
	return gain - reply
}

type rootCandidate struct {
	square om.Square
	score  int
}

// Lightweight root ordering weights.
const (
	rootVertical   = 12
	rootHorizontal = 10
	rootDiagonal   = 2
	rootFlips      = 3
	rootEdge       = 24
	rootExchange   = 4
)

// rootScore is the capture-weighted ordering value of a non-corner root move.
func rootScore(pos om.Position, sq om.Square) int {
	fc := om.CountFlips(pos.Own, pos.Opp, sq.Bit())
	score := fc.Vertical*rootVertical + fc.Horizontal*rootHorizontal + fc.Diagonal*rootDiagonal +
		fc.Total*rootFlips + netFlips(pos, sq)*rootExchange
	if sq.IsEdge() {
		score += rootEdge
	}
	return score
}

// orderRootMoves puts corners first and sorts the rest by what they capture.
// The order decides which moves the pool starts on and breaks score ties.
func orderRootMoves(pos om.Position, moves []om.Square) []om.Square {
	corners := lo.Filter(moves, func(sq om.Square, _ int) bool { return sq.IsCorner() })
	rest := lo.Map(lo.Filter(moves, func(sq om.Square, _ int) bool { return !sq.IsCorner() }),
		func(sq om.Square, _ int) rootCandidate { return rootCandidate{square: sq, score: rootScore(pos, sq)} })
	slices.SortStableFunc(rest, func(a, b rootCandidate) bool { return a.score > b.score })
	return append(corners, lo.Map(rest, func(c rootCandidate, _ int) om.Square { return c.square })...)
}

// RootOrder returns the legal moves of pos in the order the pool takes them.
func RootOrder(pos om.Position) []om.Square {
	return orderRootMoves(pos, om.SquaresOf(pos.Moves()))
}
