package engine

import (
	"testing"
	"time"

	om "othello-engine/othellomg"
)

func TestInitialLegalMoves(t *testing.T) {
	e := newTestEngine(t, nil)
	got := e.LegalMoves(om.InitialBoard().Grid(), om.Black)
	want := []string{"d3", "c4", "f5", "e6"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, sq := range got {
		if sq.String() != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFullBoardHasNoMove(t *testing.T) {
	var g om.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = om.BlackDisc
			if (r+c)%3 == 0 {
				g[r][c] = om.WhiteDisc
			}
		}
	}
	e := newTestEngine(t, nil)
	for _, side := range []om.Color{om.Black, om.White} {
		if sq, ok := e.ChooseMove(g, side, SearchOptions{Time: time.Second}); ok {
			t.Fatalf("expected no move on a full board, got %v", sq)
		}
	}
}

func TestNoMoveWhileOpponentCanMove(t *testing.T) {
	// White a1, black b1: black cannot move, white can take b1 from c1.
	b := om.Board{White: om.SquareAt(0, 0).Bit(), Black: om.SquareAt(0, 1).Bit()}
	e := newTestEngine(t, nil)
	if sq, ok := e.ChooseMove(b.Grid(), om.Black, SearchOptions{Time: time.Second}); ok {
		t.Fatalf("expected black to have to pass, got %v", sq)
	}
	sq, ok := e.ChooseMove(b.Grid(), om.White, SearchOptions{Time: time.Second})
	if !ok || sq.String() != "c1" {
		t.Fatalf("expected white c1, got %v %v", sq, ok)
	}
}

func TestDepthOneMatchesStaticArgmax(t *testing.T) {
	for _, plies := range []int{0, 7, 15, 24} {
		pos := playout(plies)
		e := newTestEngine(t, func(o *Options) { o.Threads = 1 })
		res := e.AnalyzePosition(pos, SearchOptions{Time: NoTimeLimit, MaxDepth: 1})

		s := newTestSearcher()
		list := s.scoreMoves(pos, pos.Moves(), 0, om.NoSquare)
		var order []om.Square
		best := -MaxScore
		for i := range list.moves {
			orderNextMove(i, list)
			order = append(order, list.moves[i].square)
			best = Max(best, staticScore(pos.Play(list.moves[i].square)))
		}
		want, _ := staticBest(pos, order)

		if res.Move != want || res.Depth != 1 {
			t.Fatalf("after %d plies: expected %v at depth 1, got %v at depth %d", plies, want, res.Move, res.Depth)
		}
		if got := staticScore(pos.Play(res.Move)); got != best || res.Score.Value != best {
			t.Fatalf("after %d plies: expected static maximum %d, got %d (reported %d)", plies, best, got, res.Score.Value)
		}
	}
}

func TestIterativeDeepeningReachesMaxDepth(t *testing.T) {
	pos := playout(12)
	e := newTestEngine(t, func(o *Options) { o.Threads = 1 })
	res := e.AnalyzePosition(pos, SearchOptions{Time: NoTimeLimit, MaxDepth: 5})
	if res.Depth != 5 || res.Score.Exact {
		t.Fatalf("expected a heuristic depth 5 result, got %+v", res)
	}
	if pos.Moves()&res.Move.Bit() == 0 {
		t.Fatalf("expected a legal move, got %v", res.Move)
	}
	if res.PV.GetPVMove() != res.Move {
		t.Fatalf("expected the PV to start with %v, got %v", res.Move, res.PV)
	}
	if res.Nodes == 0 || res.Mode != ModeDirect {
		t.Fatalf("expected a direct search with nodes counted, got %+v", res)
	}
}

func TestSearchIsDeterministicSingleThreaded(t *testing.T) {
	pos := playout(16)
	so := SearchOptions{Time: NoTimeLimit, MaxDepth: 4}
	first := newTestEngine(t, func(o *Options) { o.Threads = 1 }).AnalyzePosition(pos, so)
	second := newTestEngine(t, func(o *Options) { o.Threads = 1 }).AnalyzePosition(pos, so)
	if first.Move != second.Move || first.Score != second.Score {
		t.Fatalf("expected identical searches, got %v/%v and %v/%v", first.Move, first.Score, second.Move, second.Score)
	}
}

func TestStopEndsUnlimitedSearch(t *testing.T) {
	e := newTestEngine(t, func(o *Options) { o.Threads = 1 })
	pos := playout(4)
	done := make(chan Result, 1)
	go func() { done <- e.AnalyzePosition(pos, SearchOptions{Time: NoTimeLimit, MaxDepth: MaxSearchDepth}) }()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	giveUp := time.After(10 * time.Second)
	for {
		select {
		case res := <-done:
			if pos.Moves()&res.Move.Bit() == 0 {
				t.Fatalf("expected a legal move after stop, got %v", res.Move)
			}
			return
		case <-ticker.C:
			e.Stop()
		case <-giveUp:
			t.Fatalf("expected Stop to end the search")
		}
	}
}

func TestPromoteKeepsOrder(t *testing.T) {
	order := []om.Square{1, 2, 3, 4}
	promote(order, 3)
	want := []om.Square{3, 1, 2, 4}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

// treePositions are live positions along a playout, plus one where black
// must pass.
func treePositions() []om.Position {
	var out []om.Position
	for plies := 0; plies <= 48; plies += 3 {
		if pos := playout(plies); !pos.GameOver() {
			out = append(out, pos)
		}
	}
	b := om.Board{White: om.SquareAt(0, 0).Bit(), Black: om.SquareAt(0, 1).Bit()}
	return append(out, om.NewPosition(b, om.Black))
}

func TestAlphaBetaMatchesNegamax(t *testing.T) {
	disableReductions(t)
	for i, pos := range treePositions() {
		for depth := int8(1); depth <= 4; depth++ {
			s := newTestSearcher()
			got := s.alphabeta(pos, depth, -MaxScore, MaxScore, 0)
			if want := negamax(pos, depth); got != want {
				t.Fatalf("position %d depth %d: expected %d, got %d", i, depth, want, got)
			}
		}
	}
}

func TestReducedMoveBeatingAlphaIsResearched(t *testing.T) {
	disableReductions(t)
	const depth = 3
	researched := 0
	for i, pos := range treePositions() {
		for _, sq := range om.SquaresOf(pos.Moves()) {
			child := pos.Play(sq)
			want := -negamax(child, depth)
			alpha := want - 1

			s := newTestSearcher()
			got := s.searchMoveWithPVS(child, depth, 1, alpha, MaxScore, 0)
			if s.stats.LMRResearches > 0 {
				researched++
			}
			if got > alpha && got != want {
				t.Fatalf("position %d move %v: expected full depth score %d, got %d", i, sq, want, got)
			}
		}
	}
	if researched == 0 {
		t.Fatalf("expected some reduced probe to beat alpha")
	}
}

func TestAspirationFailureFallsBackToFullWindow(t *testing.T) {
	disableReductions(t)
	const depth = 4
	var fails uint64
	for plies := 0; plies <= 40; plies += 4 {
		pos := playout(plies)
		if pos.Moves() == 0 || pos.Empties() <= DefaultEndgameEmpties {
			continue
		}
		s := newTestSearcher()
		s.opts.AspirationWindow = 1
		res := s.rootsearch(pos, depth)
		fails += s.stats.AspirationFails
		if want := negamax(pos, depth); res.Score.Value != want || res.Depth != depth {
			t.Fatalf("after %d plies: expected %d at depth %d, got %d at depth %d", plies, want, depth, res.Score.Value, res.Depth)
		}
	}
	if fails == 0 {
		t.Fatalf("expected a one point window to fail at least once")
	}
}

func TestCornerReplyExtension(t *testing.T) {
	// Black b1 flips c1, after which white e1 brackets b1..d1 from a1.
	a2, a3 := om.SquareAt(1, 0).Bit(), om.SquareAt(2, 0).Bit()
	c1, d1, e1 := om.SquareAt(0, 2).Bit(), om.SquareAt(0, 3).Bit(), om.SquareAt(0, 4).Bit()
	b1 := om.SquareAt(0, 1)

	cases := []struct {
		name  string
		board om.Board
		ply   int
		want  int8
	}{
		{"new corner reply", om.Board{Black: d1, White: c1 | e1}, 0, 1},
		{"corner already available", om.Board{Black: d1 | a2, White: c1 | e1 | a3}, 0, 0},
		{"past the extension horizon", om.Board{Black: d1, White: c1 | e1}, 8, 0},
	}
	for _, c := range cases {
		pos := om.NewPosition(c.board, om.Black)
		if !c.board.IsLegal(om.Black, b1) {
			t.Fatalf("%s: expected b1 to be legal", c.name)
		}
		s := newTestSearcher()
		s.rootDepth = 4
		fc := om.CountFlips(pos.Own, pos.Opp, b1.Bit())
		if got := s.extension(pos, pos.Play(b1), b1, fc, c.ply); got != c.want {
			t.Fatalf("%s: expected extension %d, got %d", c.name, c.want, got)
		}
	}
}
