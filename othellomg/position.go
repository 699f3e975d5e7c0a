package othellomg

import "math/bits"

// Position is a side-relative search node: the mover's discs, the opponent's
// discs, who the mover is and the Zobrist key. It is a value type; Play and
// Pass return new positions and never mutate the receiver.
type Position struct {
	Own  uint64
	Opp  uint64
	Side Color
	Hash uint64
}

// NewPosition builds the position for side to move on b.
func NewPosition(b Board, side Color) Position {
	own, opp := b.Split(side)
	return Position{Own: own, Opp: opp, Side: side, Hash: ComputeZobrist(b, side)}
}

// Board returns the absolute board.
func (p Position) Board() Board { return FromMasks(p.Own, p.Opp, p.Side) }

// Moves returns the legal move mask for the side to move.
func (p Position) Moves() uint64 { return LegalMoves(p.Own, p.Opp) }

// OpponentMoves returns the legal move mask for the side not to move.
func (p Position) OpponentMoves() uint64 { return LegalMoves(p.Opp, p.Own) }

// Flips returns the discs captured by playing sq.
func (p Position) Flips(sq Square) uint64 { return Flips(p.Own, p.Opp, sq.Bit()) }

// Play returns the position after the side to move plays sq. sq must be legal.
func (p Position) Play(sq Square) Position {
	m := sq.Bit()
	flips := Flips(p.Own, p.Opp, m)
	return Position{
		Own:  p.Opp ^ flips,
		Opp:  p.Own ^ flips | m,
		Side: p.Side.Other(),
		Hash: updateZobrist(p.Hash, p.Side, sq, flips),
	}
}

// Pass hands the turn to the opponent without changing the discs.
func (p Position) Pass() Position {
	return Position{Own: p.Opp, Opp: p.Own, Side: p.Side.Other(), Hash: p.Hash ^ zobristSide}
}

// Discs returns the number of discs on the board.
func (p Position) Discs() int { return bits.OnesCount64(p.Own | p.Opp) }

// Empties returns the number of empty squares.
func (p Position) Empties() int { return Squares - p.Discs() }

// Full reports whether every square is occupied.
func (p Position) Full() bool { return p.Own|p.Opp == Full }

// GameOver reports whether neither side can move.
func (p Position) GameOver() bool { return p.Moves() == 0 && p.OpponentMoves() == 0 }

// DiscDiff returns own discs minus opponent discs.
func (p Position) DiscDiff() int {
	return bits.OnesCount64(p.Own) - bits.OnesCount64(p.Opp)
}

// FinalDiff returns the disc difference of a finished game from the mover's
// view, with empty squares credited to the winner.
func (p Position) FinalDiff() int {
	own, opp := bits.OnesCount64(p.Own), bits.OnesCount64(p.Opp)
	diff := own - opp
	empties := Squares - own - opp
	switch {
	case diff > 0:
		diff += empties
	case diff < 0:
		diff -= empties
	}
	return diff
}
