package othellomg

import (
	"fmt"
	"math/bits"
	"strings"
)

// Color identifies a side. It doubles as an index into per-colour tables.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Other returns the opposing colour.
func (c Color) Other() Color { return c ^ 1 }

// Disc returns the cell value a disc of this colour occupies.
func (c Color) Disc() Cell {
	if c == Black {
		return BlackDisc
	}
	return WhiteDisc
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Cell is the tri-state value of a square at the API boundary.
type Cell uint8

const (
	Empty     Cell = 0
	BlackDisc Cell = 1
	WhiteDisc Cell = 2
)

// Grid is the plain 8x8 array exchanged with callers, indexed [row][col].
type Grid [Size][Size]Cell

// Board holds one occupancy mask per colour. Bit i is square row*8+col, with
// row 0 at the top and col 0 on the left (a1 is bit 0, h8 is bit 63).
type Board struct {
	Black uint64
	White uint64
}

// InitialBoard returns the standard starting position: white on d4/e5 and
// black on e4/d5.
func InitialBoard() Board {
	return Board{
		Black: SquareAt(3, 4).Bit() | SquareAt(4, 3).Bit(),
		White: SquareAt(3, 3).Bit() | SquareAt(4, 4).Bit(),
	}
}

// Split returns the (own, opponent) masks for side.
func (b Board) Split(side Color) (own, opp uint64) {
	if side == Black {
		return b.Black, b.White
	}
	return b.White, b.Black
}

// FromMasks builds a board from side-relative masks.
func FromMasks(own, opp uint64, side Color) Board {
	if side == Black {
		return Board{Black: own, White: opp}
	}
	return Board{Black: opp, White: own}
}

// Validate reports whether the two masks are disjoint.
func (b Board) Validate() bool {
	return b.Black&b.White == 0
}

// Occupied returns the mask of all discs on the board.
func (b Board) Occupied() uint64 { return b.Black | b.White }

// Empties returns the number of empty squares.
func (b Board) Empties() int { return Squares - bits.OnesCount64(b.Occupied()) }

// Count returns the disc count of each colour.
func (b Board) Count() (black, white int) {
	return bits.OnesCount64(b.Black), bits.OnesCount64(b.White)
}

// CellAt returns the content of sq.
func (b Board) CellAt(sq Square) Cell {
	m := sq.Bit()
	switch {
	case b.Black&m != 0:
		return BlackDisc
	case b.White&m != 0:
		return WhiteDisc
	default:
		return Empty
	}
}

// Legal returns the legal move mask for side.
func (b Board) Legal(side Color) uint64 {
	own, opp := b.Split(side)
	return LegalMoves(own, opp)
}

// LegalSquares returns the legal moves for side in ascending square order.
func (b Board) LegalSquares(side Color) []Square {
	return SquaresOf(b.Legal(side))
}

// IsLegal reports whether side may play sq.
func (b Board) IsLegal(side Color, sq Square) bool {
	return sq.Valid() && b.Legal(side)&sq.Bit() != 0
}

// Apply plays sq for side and returns the resulting board. Playing a square
// that is not in Legal(side) is a caller bug and panics.
func (b Board) Apply(side Color, sq Square) Board {
	if !b.IsLegal(side, sq) {
		panic(fmt.Sprintf("othellomg: illegal move %v for %v", sq, side))
	}
	own, opp := b.Split(side)
	own, opp = ApplyMove(own, opp, sq.Bit())
	return FromMasks(own, opp, side)
}

// GameOver reports whether neither side has a legal move.
func (b Board) GameOver() bool {
	return b.Legal(Black) == 0 && b.Legal(White) == 0
}

// Hash returns the Zobrist key of the board with side to move.
func (b Board) Hash(side Color) uint64 {
	return ComputeZobrist(b, side)
}

// Grid converts the board to the boundary array form.
func (b Board) Grid() Grid {
	var g Grid
	for sq := Square(0); sq < Squares; sq++ {
		g[sq.Row()][sq.Col()] = b.CellAt(sq)
	}
	return g
}

// String renders the board with a column header, one row per line.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < Size; row++ {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(cellChar(b.CellAt(SquareAt(row, col))))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
