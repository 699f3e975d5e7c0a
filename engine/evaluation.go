package engine

import (
	"math/bits"

	om "othello-engine/othellomg"

	"github.com/rs/zerolog"
)

// Game phases, chosen by the number of discs on the board.
const (
	PhaseOpening = iota
	PhaseMidgame
	PhaseEndgame
)

const (
	midgameDiscs  = 28
	endgameDiscs  = 54
	regionMinimum = 32 // region parity is only counted from this many discs
)

type phaseWeights struct {
	Material, Position, Mobility, Corner, XSquare, CSquare int32
	Frontier, Stability, Parity, FullLine, Region, Edge     int32
	Run                                                    int32
}

var phaseTable = [3]phaseWeights{
	PhaseOpening: {Material: 1, Position: 30, Mobility: 16, Corner: 120, XSquare: 26, CSquare: 16,
		Frontier: 14, Stability: 10, Parity: 2, FullLine: 80, Region: 8, Edge: 6, Run: 10},
	PhaseMidgame: {Material: 10, Position: 24, Mobility: 18, Corner: 150, XSquare: 22, CSquare: 14,
		Frontier: 16, Stability: 20, Parity: 6, FullLine: 120, Region: 20, Edge: 8, Run: 12},
	PhaseEndgame: {Material: 140, Position: 8, Mobility: 2, Corner: 200, XSquare: 8, CSquare: 8,
		Frontier: 8, Stability: 40, Parity: 18, FullLine: 200, Region: 30, Edge: 10, Run: 10},
}

var positionTable = [om.Size][om.Size]int32{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 2, 2, 3, -5, 5},
	{5, -5, 3, 2, 2, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

// Flattened by square, filled by initVariables.
var positionWeights [om.Squares]int32

// Edge runs walked from each corner for the stability term.
var edgeLines = [8]struct {
	corner om.Square
	dir    int
}{
	{0, om.DirE}, {7, om.DirW}, {56, om.DirE}, {63, om.DirW},
	{0, om.DirS}, {56, om.DirN}, {7, om.DirS}, {63, om.DirN},
}

var rowMasks, colMasks [om.Size]uint64

func gamePhase(discs int) int {
	switch {
	case discs >= endgameDiscs:
		return PhaseEndgame
	case discs >= midgameDiscs:
		return PhaseMidgame
	default:
		return PhaseOpening
	}
}

// EvalTerms holds the raw feature values of a position from the mover's view.
type EvalTerms struct {
	Phase      int
	Material   int32
	Position   int32
	Mobility   int32
	Corners    int32
	XSquares   int32
	CSquares   int32
	Frontier   int32
	Stability  int32
	Parity     int32
	FullLines  int32
	Regions    int32
	Edges      int32
	LongestRun int32
}

// Evaluate scores own against opp for the side that owns own. The result is
// clamped to ±EvalLimit so it never reaches a decided game's score.
func Evaluate(own, opp uint64) int32 {
	return evaluateTerms(own, opp).Score()
}

// Score combines the terms with the weights of their phase.
func (t EvalTerms) Score() int32 {
	w := &phaseTable[t.Phase]
	score := w.Material*t.Material + w.Position*t.Position + w.Mobility*t.Mobility +
		w.Corner*t.Corners - w.XSquare*t.XSquares - w.CSquare*t.CSquares +
		w.Frontier*t.Frontier + w.Stability*t.Stability + w.Parity*t.Parity +
		w.FullLine*t.FullLines + w.Region*t.Regions + w.Edge*t.Edges + w.Run*t.LongestRun
	return Clamp(score, -EvalLimit, EvalLimit)
}

// Explain returns the evaluation terms of a position.
func Explain(pos om.Position) EvalTerms {
	return evaluateTerms(pos.Own, pos.Opp)
}

// MarshalZerologObject lets the terms be logged as one object.
func (t EvalTerms) MarshalZerologObject(e *zerolog.Event) {
	e.Int("phase", t.Phase).
		Int32("material", t.Material).
		Int32("position", t.Position).
		Int32("mobility", t.Mobility).
		Int32("corners", t.Corners).
		Int32("x_squares", t.XSquares).
		Int32("c_squares", t.CSquares).
		Int32("frontier", t.Frontier).
		Int32("stability", t.Stability).
		Int32("parity", t.Parity).
		Int32("full_lines", t.FullLines).
		Int32("regions", t.Regions).
		Int32("edges", t.Edges).
		Int32("longest_run", t.LongestRun).
		Int32("score", t.Score())
}

func evaluateTerms(own, opp uint64) EvalTerms {
	occupied := own | opp
	empty := ^occupied
	discs := bits.OnesCount64(occupied)

	var t EvalTerms
	t.Phase = gamePhase(discs)
	t.Material = int32(bits.OnesCount64(own) - bits.OnesCount64(opp))
	t.Mobility = int32(bits.OnesCount64(om.LegalMoves(own, opp)) - bits.OnesCount64(om.LegalMoves(opp, own)))

	// X and C squares only hurt while their corner is still open.
	for i, corner := range om.Corners {
		cb := corner.Bit()
		switch {
		case own&cb != 0:
			t.Corners++
		case opp&cb != 0:
			t.Corners--
		default:
			t.XSquares += ownership(own, opp, om.XSquares[i])
			for _, c := range om.CSquares[i] {
				t.CSquares += ownership(own, opp, c)
			}
		}
	}

	neigh := om.Neighbours(empty)
	t.Frontier = int32(bits.OnesCount64(opp&neigh) - bits.OnesCount64(own&neigh))

	for bb := own; bb != 0; bb &= bb - 1 {
		t.Position += positionWeights[bits.TrailingZeros64(bb)]
	}
	for bb := opp; bb != 0; bb &= bb - 1 {
		t.Position -= positionWeights[bits.TrailingZeros64(bb)]
	}

	t.Stability = edgeStability(own, opp)

	if (om.Squares-discs)&1 == 1 {
		t.Parity = 1
	} else {
		t.Parity = -1
	}
	if discs >= regionMinimum {
		t.Regions = regionParity(empty)
	}

	for i := 0; i < om.Size; i++ {
		t.FullLines += fullLine(own, opp, rowMasks[i]) + fullLine(own, opp, colMasks[i])
	}

	t.Edges = int32(bits.OnesCount64(own&om.EdgeMask) - bits.OnesCount64(opp&om.EdgeMask))
	t.LongestRun = int32(longestLine(own) - longestLine(opp))
	return t
}

func ownership(own, opp uint64, sq om.Square) int32 {
	switch b := sq.Bit(); {
	case own&b != 0:
		return 1
	case opp&b != 0:
		return -1
	}
	return 0
}

func fullLine(own, opp, mask uint64) int32 {
	switch mask {
	case own & mask:
		return 1
	case opp & mask:
		return -1
	}
	return 0
}

// edgeStability counts same-coloured runs walked from occupied corners along
// both adjacent edges.
func edgeStability(own, opp uint64) int32 {
	var stable int32
	for _, line := range edgeLines {
		start := line.corner.Bit()
		var colour uint64
		var sign int32
		switch {
		case own&start != 0:
			colour, sign = own, 1
		case opp&start != 0:
			colour, sign = opp, -1
		default:
			continue
		}
		for cur := start; cur != 0 && colour&cur != 0; cur = om.Shift(cur, line.dir) {
			stable += sign
		}
	}
	return stable
}

// regionParity returns odd regions minus even regions among the orthogonally
// connected empty areas.
func regionParity(empty uint64) int32 {
	var odd, even int32
	for remaining := empty; remaining != 0; {
		region := remaining & -remaining
		for frontier := region; frontier != 0; {
			grown := om.Neighbours4(frontier) & remaining &^ region
			region |= grown
			frontier = grown
		}
		if bits.OnesCount64(region)&1 == 1 {
			odd++
		} else {
			even++
		}
		remaining &^= region
	}
	return odd - even
}

// longestLine is the longest horizontal or vertical run of discs in bb.
func longestLine(bb uint64) int {
	best := 0
	for _, dir := range [2]int{om.DirE, om.DirS} {
		run := 0
		for cur := bb; cur != 0; cur &= om.Shift(cur, dir) {
			run++
		}
		best = Max(best, run)
	}
	return best
}
