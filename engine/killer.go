package engine

import om "othello-engine/othellomg"

// KillerStruct keeps the two most recent cutoff moves per ply, newest first.
type KillerStruct struct {
	KillerMoves [MaxPly + 1][2]om.Square
}

func (k *KillerStruct) InsertKiller(move om.Square, ply int) {
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// IsKiller reports whether move is one of the killers recorded at ply.
func (k *KillerStruct) IsKiller(move om.Square, ply int) bool {
	return k.KillerMoves[ply][0] == move || k.KillerMoves[ply][1] == move
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for ply := range k.KillerMoves {
		k.KillerMoves[ply][0] = om.NoSquare
		k.KillerMoves[ply][1] = om.NoSquare
	}
}
