package othellomg

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Pack converts a boundary grid into bitboards.
func Pack(g Grid) (Board, error) {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			m := SquareAt(row, col).Bit()
			switch g[row][col] {
			case Empty:
			case BlackDisc:
				b.Black |= m
			case WhiteDisc:
				b.White |= m
			default:
				return Board{}, errors.Wrapf(ErrBadCell, "value %d at %v", g[row][col], SquareAt(row, col))
			}
		}
	}
	return b, nil
}

// Unpack is the inverse of Pack.
func Unpack(b Board) (Grid, error) {
	if !b.Validate() {
		return Grid{}, errors.Wrapf(ErrOverlap, "mask %#016x", b.Black&b.White)
	}
	return b.Grid(), nil
}

// ParseBoard reads 64 cells from text, ignoring whitespace and an optional
// "a b c d e f g h" header or leading row digits. Black is 'X', 'B' or '*';
// white is 'O' or 'W'; empty is '.', '-' or '_'.
func ParseBoard(s string) (Board, error) {
	var b Board
	sq := Square(0)
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(strings.ReplaceAll(trimmed, " ", ""), "abcdefgh") {
			continue
		}
		for _, r := range trimmed {
			if unicode.IsSpace(r) || unicode.IsDigit(r) {
				continue
			}
			if sq >= Squares {
				return Board{}, errors.Wrapf(ErrBoardSize, "extra cell %q", r)
			}
			switch unicode.ToUpper(r) {
			case 'X', 'B', '*':
				b.Black |= sq.Bit()
			case 'O', 'W':
				b.White |= sq.Bit()
			case '.', '-', '_':
			default:
				return Board{}, errors.Wrapf(ErrBadCell, "%q at %v", r, sq)
			}
			sq++
		}
	}
	if sq != Squares {
		return Board{}, errors.Wrapf(ErrBoardSize, "got %d cells", sq)
	}
	return b, nil
}

// ParseColor accepts "black"/"b"/"x" and "white"/"w"/"o".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b", "x":
		return Black, nil
	case "white", "w", "o":
		return White, nil
	}
	return Black, errors.Wrapf(ErrBadSide, "%q", s)
}

func cellChar(c Cell) byte {
	switch c {
	case BlackDisc:
		return 'X'
	case WhiteDisc:
		return 'O'
	default:
		return '.'
	}
}
