package othellomg

import "math/bits"

// Perft counts leaf nodes of the move tree to depth. A forced pass counts as
// one child; a finished game is a leaf.
func Perft(p Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.Moves()
	if moves == 0 {
		if p.OpponentMoves() == 0 {
			return 1
		}
		return Perft(p.Pass(), depth-1)
	}
	if depth == 1 {
		return uint64(bits.OnesCount64(moves))
	}
	var nodes uint64
	for ; moves != 0; moves &= moves - 1 {
		nodes += Perft(p.Play(LowestSquare(moves)), depth-1)
	}
	return nodes
}

// PerftDivide returns per-root-move node counts.
func PerftDivide(p Position, depth int) map[Square]uint64 {
	out := make(map[Square]uint64)
	if depth <= 0 {
		return out
	}
	moves := p.Moves()
	if moves == 0 {
		if p.OpponentMoves() != 0 {
			out[NoSquare] = Perft(p.Pass(), depth-1)
		}
		return out
	}
	for ; moves != 0; moves &= moves - 1 {
		sq := LowestSquare(moves)
		out[sq] = Perft(p.Play(sq), depth-1)
	}
	return out
}
