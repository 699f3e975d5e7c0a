package othellomg

import (
	"math/bits"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func TestInitialBoardLegalMoves(t *testing.T) {
	b := InitialBoard()
	if !b.Validate() {
		t.Fatalf("initial board masks overlap")
	}
	moves := b.LegalSquares(Black)
	want := []Square{SquareAt(2, 3), SquareAt(3, 2), SquareAt(4, 5), SquareAt(5, 4)}
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves, got %v", len(want), moves)
	}
	own, opp := b.Split(Black)
	for i, sq := range moves {
		if sq != want[i] {
			t.Fatalf("move %d: expected %v, got %v", i, want[i], sq)
		}
		if n := bits.OnesCount64(Flips(own, opp, sq.Bit())); n != 1 {
			t.Fatalf("move %v: expected 1 flip, got %d", sq, n)
		}
	}
}

func TestFlipsIgnoreOpenRuns(t *testing.T) {
	b := mustParse(t, `
		XOO.....
		.OO.....
		OOO.....
		........
		........
		........
		........
		........`)
	own, opp := b.Split(Black)

	closed := Flips(own, opp, SquareAt(0, 3).Bit())
	if closed != SquareAt(0, 1).Bit()|SquareAt(0, 2).Bit() {
		t.Fatalf("expected b1,c1 captured, got %#x", closed)
	}
	if f := rayFlips(own, opp, SquareAt(1, 3).Bit(), DirW); f != 0 {
		t.Fatalf("run ending on an empty square must not flip, got %#x", f)
	}
	if f := rayFlips(own, opp, SquareAt(2, 3).Bit(), DirW); f != 0 {
		t.Fatalf("run ending at the edge must not flip, got %#x", f)
	}
	legal := LegalMoves(own, opp)
	if legal&SquareAt(0, 3).Bit() == 0 {
		t.Fatalf("d1 should be legal")
	}
}

func TestMultiDirectionCapture(t *testing.T) {
	b := mustParse(t, `
		X.X.X...
		.OOO....
		XO.OX...
		.OOO....
		X.X.X...
		........
		........
		........`)
	own, opp := b.Split(Black)
	fc := CountFlips(own, opp, SquareAt(2, 2).Bit())
	if fc.Total != 8 {
		t.Fatalf("expected 8 flips, got %d (%+v)", fc.Total, fc)
	}
	if fc.Vertical != 2 || fc.Horizontal != 2 || fc.Diagonal != 4 || fc.LongestRun != 1 {
		t.Fatalf("unexpected axis counts %+v", fc)
	}
	byDir := FlipsByDir(own, opp, SquareAt(2, 2).Bit())
	var union uint64
	for dir, run := range byDir {
		if bits.OnesCount64(run) != 1 {
			t.Fatalf("expected one flip in direction %d, got %#x", dir, run)
		}
		union |= run
	}
	if union != Flips(own, opp, SquareAt(2, 2).Bit()) {
		t.Fatalf("expected per-direction runs to add up to the flip set, got %#x", union)
	}
	if byDir[DirN] != SquareAt(1, 2).Bit() || byDir[DirE] != SquareAt(2, 3).Bit() {
		t.Fatalf("expected c2 to the north and d3 to the east, got %#x and %#x", byDir[DirN], byDir[DirE])
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	b := InitialBoard()
	sq := SquareAt(2, 3)
	first := b.Apply(Black, sq)
	second := b.Apply(Black, sq)
	if first != second {
		t.Fatalf("apply not deterministic: %v vs %v", first, second)
	}
	black, white := first.Count()
	if black != 4 || white != 1 {
		t.Fatalf("expected 4/1 discs after d3, got %d/%d", black, white)
	}
	if !first.Validate() {
		t.Fatalf("masks overlap after apply")
	}
}

func TestApplyIllegalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for illegal move")
		}
	}()
	InitialBoard().Apply(Black, SquareAt(0, 0))
}

func TestGameOverIffNoMovesForBoth(t *testing.T) {
	full := Board{Black: Full &^ 1, White: 1}
	if !full.GameOver() {
		t.Fatalf("full board must be game over")
	}
	lone := Board{Black: SquareAt(0, 0).Bit()}
	if !lone.GameOver() {
		t.Fatalf("single-colour board must be game over")
	}
	if InitialBoard().GameOver() {
		t.Fatalf("initial board is not game over")
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	b := InitialBoard()
	parsed := mustParse(t, b.String())
	if parsed != b {
		t.Fatalf("round trip mismatch:\n%v\n%v", b, parsed)
	}
	g, err := Unpack(b)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	packed, err := Pack(g)
	if err != nil || packed != b {
		t.Fatalf("Pack(Unpack(b)) = %v, %v", packed, err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseBoard("XO."); errors.Cause(err) != ErrBoardSize {
		t.Fatalf("expected ErrBoardSize, got %v", err)
	}
	if _, err := ParseBoard("Z" + strings.Repeat(".", 63)); errors.Cause(err) != ErrBadCell {
		t.Fatalf("expected ErrBadCell, got %v", err)
	}
	if _, err := Unpack(Board{Black: 1, White: 1}); errors.Cause(err) != ErrOverlap {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	var g Grid
	g[0][0] = Cell(7)
	if _, err := Pack(g); errors.Cause(err) != ErrBadCell {
		t.Fatalf("expected ErrBadCell, got %v", err)
	}
	if _, err := ParseSquare("i9"); errors.Cause(err) != ErrBadSquare {
		t.Fatalf("expected ErrBadSquare, got %v", err)
	}
	if _, err := ParseColor("green"); errors.Cause(err) != ErrBadSide {
		t.Fatalf("expected ErrBadSide, got %v", err)
	}
}

func TestSquareNames(t *testing.T) {
	sq, err := ParseSquare("d3")
	if err != nil {
		t.Fatalf("ParseSquare: %v", err)
	}
	if sq != SquareAt(2, 3) || sq.String() != "d3" {
		t.Fatalf("expected d3 at row 2 col 3, got %v (%d)", sq, sq)
	}
	for i, c := range Corners {
		if !c.IsCorner() {
			t.Fatalf("corner %v not recognised", c)
		}
		if XMask&XSquares[i].Bit() == 0 || CMask&CSquares[i][0].Bit() == 0 || CMask&CSquares[i][1].Bit() == 0 {
			t.Fatalf("corner %v neighbours missing from masks", c)
		}
	}
}
