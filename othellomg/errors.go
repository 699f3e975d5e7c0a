package othellomg

import "github.com/pkg/errors"

var (
	ErrBoardSize = errors.New("board text must describe 64 squares")
	ErrBadCell   = errors.New("invalid cell")
	ErrOverlap   = errors.New("square occupied by both colours")
	ErrBadSquare = errors.New("invalid square")
	ErrBadSide   = errors.New("invalid side")
)
