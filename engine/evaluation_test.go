package engine

import (
	"testing"

	om "othello-engine/othellomg"
)

func TestGamePhaseBoundaries(t *testing.T) {
	cases := []struct {
		discs int
		phase int
	}{
		{4, PhaseOpening},
		{27, PhaseOpening},
		{28, PhaseMidgame},
		{53, PhaseMidgame},
		{54, PhaseEndgame},
		{64, PhaseEndgame},
	}
	for _, c := range cases {
		if got := gamePhase(c.discs); got != c.phase {
			t.Fatalf("expected phase %d for %d discs, got %d", c.phase, c.discs, got)
		}
	}
}

func TestCornerRaisesScore(t *testing.T) {
	b := om.InitialBoard()
	without := Evaluate(b.Black, b.White)
	with := Evaluate(b.Black|om.Corners[0].Bit(), b.White)
	if with <= without {
		t.Fatalf("expected corner to raise score above %d, got %d", without, with)
	}
}

func TestXSquareOnlyCountsNearOpenCorner(t *testing.T) {
	b := om.InitialBoard()
	x := om.XSquares[0].Bit()

	open := evaluateTerms(b.Black|x, b.White)
	if open.XSquares != 1 {
		t.Fatalf("expected X-square to count next to an empty corner, got %d", open.XSquares)
	}
	taken := evaluateTerms(b.Black|x, b.White|om.Corners[0].Bit())
	if taken.XSquares != 0 {
		t.Fatalf("expected X-square ignored once the corner is taken, got %d", taken.XSquares)
	}
}

func TestEdgeStabilityRuns(t *testing.T) {
	own := om.SquareAt(0, 0).Bit() | om.SquareAt(0, 1).Bit() | om.SquareAt(0, 2).Bit() | om.SquareAt(1, 0).Bit()
	// b1..c1 along the row, a2 down the column, the corner on both lines.
	if got := edgeStability(own, 0); got != 5 {
		t.Fatalf("expected 5 stable discs, got %d", got)
	}
	if got := edgeStability(0, own); got != -5 {
		t.Fatalf("expected -5 for the opponent, got %d", got)
	}
	if got := edgeStability(om.SquareAt(0, 1).Bit(), 0); got != 0 {
		t.Fatalf("expected no stability without a corner, got %d", got)
	}
}

func TestRegionParity(t *testing.T) {
	a1, g8, h8 := om.SquareAt(0, 0).Bit(), om.SquareAt(7, 6).Bit(), om.SquareAt(7, 7).Bit()
	if got := regionParity(a1 | g8 | h8); got != 0 {
		t.Fatalf("expected one odd and one even region, got %d", got)
	}
	if got := regionParity(a1 | h8); got != 2 {
		t.Fatalf("expected two odd regions, got %d", got)
	}
}

func TestLongestLine(t *testing.T) {
	row := om.SquareAt(2, 0).Bit() | om.SquareAt(2, 1).Bit() | om.SquareAt(2, 2).Bit()
	if got := longestLine(row); got != 3 {
		t.Fatalf("expected run of 3, got %d", got)
	}
	col := om.SquareAt(0, 5).Bit() | om.SquareAt(1, 5).Bit() | om.SquareAt(2, 5).Bit() | om.SquareAt(3, 5).Bit()
	if got := longestLine(row | col); got != 4 {
		t.Fatalf("expected run of 4, got %d", got)
	}
	wrap := om.SquareAt(0, 7).Bit() | om.SquareAt(1, 0).Bit()
	if got := longestLine(wrap); got != 1 {
		t.Fatalf("expected no run across the board edge, got %d", got)
	}
}

func TestFullLines(t *testing.T) {
	terms := evaluateTerms(rowMasks[0], rowMasks[7])
	if terms.FullLines != 0 {
		t.Fatalf("expected full rows to cancel out, got %d", terms.FullLines)
	}
	terms = evaluateTerms(rowMasks[0]|colMasks[0], 0)
	if terms.FullLines != 2 {
		t.Fatalf("expected a full row and column, got %d", terms.FullLines)
	}
}

func TestEvaluateStaysBelowExactScores(t *testing.T) {
	for n := 0; n < 60; n++ {
		pos := playout(n)
		score := Evaluate(pos.Own, pos.Opp)
		if Abs(score) > EvalLimit {
			t.Fatalf("expected |eval| <= %d after %d plies, got %d", EvalLimit, n, score)
		}
		if terminalScore(1) <= EvalLimit {
			t.Fatalf("expected a one-disc win to outrank every evaluation")
		}
	}
}
