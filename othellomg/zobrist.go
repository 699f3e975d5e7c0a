package othellomg

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Zobrist keys: one per (colour, square) and one for black to move.
var zobristDisc [2][Squares]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so keys are identical across processes and test runs.
	seed := make([]byte, 32)
	copy(seed, "othellomg/zobrist key stream v1")
	rng := frand.NewCustom(seed, 1024, 12)

	next := func() uint64 {
		var buf [8]byte
		for {
			_, _ = rng.Read(buf[:])
			if k := binary.LittleEndian.Uint64(buf[:]); k != 0 {
				return k
			}
		}
	}
	for c := 0; c < 2; c++ {
		for sq := 0; sq < Squares; sq++ {
			zobristDisc[c][sq] = next()
		}
	}
	zobristSide = next()
}

// ComputeZobrist hashes a board from scratch. Identical disc placement and
// side to move always give the same key regardless of move order.
func ComputeZobrist(b Board, side Color) uint64 {
	var key uint64
	for bb := b.Black; bb != 0; bb &= bb - 1 {
		key ^= zobristDisc[Black][LowestSquare(bb)]
	}
	for bb := b.White; bb != 0; bb &= bb - 1 {
		key ^= zobristDisc[White][LowestSquare(bb)]
	}
	if side == Black {
		key ^= zobristSide
	}
	return key
}

// updateZobrist returns key after side plays move flipping flips. The side
// key toggles because the turn passes to the opponent.
func updateZobrist(key uint64, side Color, move Square, flips uint64) uint64 {
	key ^= zobristDisc[side][move] ^ zobristSide
	other := side.Other()
	for ; flips != 0; flips &= flips - 1 {
		sq := LowestSquare(flips)
		key ^= zobristDisc[side][sq] ^ zobristDisc[other][sq]
	}
	return key
}
