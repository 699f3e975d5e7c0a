package engine

import om "othello-engine/othellomg"

func init() {
	initVariables()
}

func initVariables() {
	initPositionWeights()
	initLineMasks()
}

func initPositionWeights() {
	for sq := om.Square(0); sq < om.Squares; sq++ {
		positionWeights[sq] = positionTable[sq.Row()][sq.Col()]
	}
}

func initLineMasks() {
	for i := 0; i < om.Size; i++ {
		rowMasks[i] = om.RowTop << uint(i*om.Size)
		colMasks[i] = om.FileA << uint(i)
	}
}
