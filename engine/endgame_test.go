package engine

import (
	"testing"

	om "othello-engine/othellomg"
)

func TestSolveExactMatchesBruteForce(t *testing.T) {
	for _, empties := range []int{1, 4, 7, 9} {
		pos := playoutToEmpties(empties)
		if pos.GameOver() {
			continue
		}
		s := newTestSearcher()
		got := s.solveExact(pos, -maxDiscDiff, maxDiscDiff, 0)
		if want := int32(bruteForce(pos)); got != want {
			t.Fatalf("%d empties: expected %d, got %d", empties, want, got)
		}
	}
}

func TestSolveRootPicksOptimalMove(t *testing.T) {
	pos := playoutToEmpties(9)
	if pos.GameOver() {
		t.Fatalf("expected the playout to leave a live position")
	}
	if pos.Moves() == 0 {
		pos = pos.Pass()
	}
	s := newTestSearcher()
	move, diff := s.solveRoot(pos, om.SquaresOf(pos.Moves()))
	if want := int32(bruteForce(pos)); diff != want {
		t.Fatalf("expected optimum %d, got %d", want, diff)
	}
	if got := -int32(bruteForce(pos.Play(move))); got != diff {
		t.Fatalf("expected %v to reach %d, it reaches %d", move, diff, got)
	}
}

func TestSolveExactStopsOnDeadline(t *testing.T) {
	s := newTestSearcher()
	s.th = newTimeHandler(0, nil)
	s.solveExact(playoutToEmpties(12), -maxDiscDiff, maxDiscDiff, 0)
	if !s.stopped {
		t.Fatalf("expected an expired deadline to stop the solver")
	}
}

func TestFinalDiffCreditsEmptiesToWinner(t *testing.T) {
	// Black a1..c1, white h8, black to move with nobody able to play.
	b := om.Board{Black: 0x7, White: om.SquareAt(7, 7).Bit()}
	pos := om.NewPosition(b, om.Black)
	if !pos.GameOver() {
		t.Fatalf("expected a finished game")
	}
	s := newTestSearcher()
	if got := s.solveExact(pos, -maxDiscDiff, maxDiscDiff, 0); got != 62 {
		t.Fatalf("expected 3-1 plus 60 empties = 62, got %d", got)
	}
}
