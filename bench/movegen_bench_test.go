package bench

import (
	"testing"

	om "othello-engine/othellomg"
)

// playout plays the lowest legal square (or passes) for n plies.
func playout(n int) om.Position {
	pos := om.NewPosition(om.InitialBoard(), om.Black)
	for i := 0; i < n && !pos.GameOver(); i++ {
		if moves := pos.Moves(); moves != 0 {
			pos = pos.Play(om.LowestSquare(moves))
		} else {
			pos = pos.Pass()
		}
	}
	return pos
}

func benchLegalMoves(b *testing.B, pos om.Position) {
	b.ReportAllocs()
	b.ResetTimer()
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink ^= om.LegalMoves(pos.Own, pos.Opp)
	}
	_ = sink
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, playout(0))
}

func BenchmarkLegalMoves_Midgame(b *testing.B) {
	benchLegalMoves(b, playout(24))
}

func BenchmarkFlips_AllMoves_Midgame(b *testing.B) {
	pos := playout(24)
	moves := om.SquaresOf(pos.Moves())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			if pos.Flips(m) == 0 {
				b.Fatalf("legal move %v flips nothing", m)
			}
		}
	}
}

func BenchmarkPlay_AllMoves_Midgame(b *testing.B) {
	pos := playout(24)
	moves := om.SquaresOf(pos.Moves())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			child := pos.Play(m)
			if child.Side == pos.Side {
				b.Fatalf("side did not change after %v", m)
			}
		}
	}
}
