package othellomg

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

const (
	Size    = 8
	Squares = Size * Size
)

// Square is a board index in [0, 64), or NoSquare.
type Square int8

const NoSquare Square = -1

// Masks used by move generation and evaluation.
const (
	Full       uint64 = 0xFFFFFFFFFFFFFFFF
	FileA      uint64 = 0x0101010101010101
	FileH      uint64 = 0x8080808080808080
	RowTop     uint64 = 0x00000000000000FF
	RowBottom  uint64 = 0xFF00000000000000
	NotFileA          = Full ^ FileA
	NotFileH          = Full ^ FileH
	EdgeMask          = FileA | FileH | RowTop | RowBottom
	CornerMask uint64 = 0x8100000000000081
	XMask      uint64 = 0x0042000000004200
	CMask      uint64 = 0x4281000000008142
)

// Corners lists the four corners; XSquares and CSquares are indexed alike.
var Corners = [4]Square{0, 7, 56, 63}

// XSquares are the diagonal neighbours of each corner.
var XSquares = [4]Square{9, 14, 49, 54}

// CSquares are the edge neighbours of each corner.
var CSquares = [4][2]Square{{1, 8}, {6, 15}, {48, 57}, {55, 62}}

// SquareAt returns the square at row, col.
func SquareAt(row, col int) Square { return Square(row*Size + col) }

// Row returns the zero-based row (0 = top).
func (sq Square) Row() int { return int(sq) / Size }

// Col returns the zero-based column (0 = a).
func (sq Square) Col() int { return int(sq) % Size }

// Bit returns the single-bit mask of sq.
func (sq Square) Bit() uint64 { return uint64(1) << uint(sq) }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < Squares }

// IsCorner reports whether sq is one of the four corners.
func (sq Square) IsCorner() bool { return sq.Valid() && CornerMask&sq.Bit() != 0 }

// IsEdge reports whether sq lies on the outer ring.
func (sq Square) IsEdge() bool { return sq.Valid() && EdgeMask&sq.Bit() != 0 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "pass"
	}
	return string([]byte{byte('a' + sq.Col()), byte('1' + sq.Row())})
}

// ParseSquare parses coordinates such as "d3" (column letter, row digit).
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	return SquareAt(int(s[1]-'1'), int(s[0]-'a')), nil
}

// LowestSquare returns the lowest set square of bb, or NoSquare when empty.
func LowestSquare(bb uint64) Square {
	if bb == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(bb))
}

// SquaresOf lists the set squares of bb in ascending order.
func SquaresOf(bb uint64) []Square {
	out := make([]Square, 0, bits.OnesCount64(bb))
	for bb != 0 {
		out = append(out, Square(bits.TrailingZeros64(bb)))
		bb &= bb - 1
	}
	return out
}
