package engine

import (
	"strings"

	om "othello-engine/othellomg"

	"golang.org/x/exp/slices"
)

const (
	// MaxPly bounds recursion; extensions are capped well below it.
	MaxPly        = 192
	historyMaxVal = 10000 // history plus capture score stays below killerOffset
)

// HistoryStruct scores moves by how often they caused a beta cutoff, per side
// to move.
type HistoryStruct struct {
	Scores [2][om.Squares]int32
}

/*
HISTORY
If a move caused a beta cutoff we credit it with depth*depth so deep cutoffs
count for more. When any entry reaches historyMaxVal the table is aged by
halving every value, keeping recent cutoffs ahead of stale ones.
*/
func (h *HistoryStruct) Increment(side om.Color, move om.Square, depth int8) {
	h.Scores[side][move] += int32(depth) * int32(depth)
	if h.Scores[side][move] >= historyMaxVal {
		h.age()
	}
}

func (h *HistoryStruct) Score(side om.Color, move om.Square) int32 {
	return h.Scores[side][move]
}

func (h *HistoryStruct) age() {
	for side := range h.Scores {
		for sq := range h.Scores[side] {
			h.Scores[side][sq] /= 2
		}
	}
}

func (h *HistoryStruct) Clear() {
	h.Scores = [2][om.Squares]int32{}
}

// staticScore is the one-ply value of a child position from the parent's
// view: the negated evaluation, or the final score when the board is full.
func staticScore(child om.Position) int32 {
	if child.Full() {
		return -terminalScore(child.FinalDiff())
	}
	return -Evaluate(child.Own, child.Opp)
}

// PVLine is a principal variation; NoSquare marks a pass.
type PVLine struct {
	Moves []om.Square
}

// Update sets the line to move followed by the child's line.
func (p *PVLine) Update(move om.Square, child PVLine) {
	p.Moves = append(p.Moves[:0], move)
	p.Moves = append(p.Moves, child.Moves...)
}

func (p *PVLine) Clear() {
	p.Moves = p.Moves[:0]
}

func (p PVLine) Clone() PVLine {
	return PVLine{Moves: append([]om.Square(nil), p.Moves...)}
}

// GetPVMove returns the first move of the line, or NoSquare.
func (p PVLine) GetPVMove() om.Square {
	if len(p.Moves) == 0 {
		return om.NoSquare
	}
	return p.Moves[0]
}

func (p PVLine) String() string {
	var sb strings.Builder
	for i, move := range p.Moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(move.String())
	}
	return sb.String()
}

// promote moves sq to the front of order, keeping the rest in place.
func promote(order []om.Square, sq om.Square) []om.Square {
	i := slices.Index(order, sq)
	if i <= 0 {
		return order
	}
	copy(order[1:i+1], order[:i])
	order[0] = sq
	return order
}
