package othellomg

import "math/bits"

// Direction indices, in the order E, W, N, S, NE, NW, SE, SW.
const (
	DirE = iota
	DirW
	DirN
	DirS
	DirNE
	DirNW
	DirSE
	DirSW
	NumDirs
)

var dirShift = [NumDirs]int{1, -1, -Size, Size, -Size + 1, -Size - 1, Size + 1, Size - 1}

// Pre-shift masks stop rays from wrapping around the left/right edges.
var dirMask = [NumDirs]uint64{NotFileH, NotFileA, Full, Full, NotFileH, NotFileA, NotFileH, NotFileA}

func shift(bb uint64, dir int) uint64 {
	bb &= dirMask[dir]
	s := dirShift[dir]
	if s > 0 {
		return bb << uint(s)
	}
	return bb >> uint(-s)
}

// LegalMoves returns every empty square from which some ray through opponent
// discs ends on an own disc.
func LegalMoves(own, opp uint64) uint64 {
	empty := ^(own | opp)
	var moves uint64
	for dir := 0; dir < NumDirs; dir++ {
		t := shift(own, dir) & opp
		t |= shift(t, dir) & opp
		t |= shift(t, dir) & opp
		t |= shift(t, dir) & opp
		t |= shift(t, dir) & opp
		t |= shift(t, dir) & opp
		moves |= shift(t, dir) & empty
	}
	return moves
}

// rayFlips returns the opponent run captured in one direction, or 0 when the
// run is open (ends on an empty square or the edge).
func rayFlips(own, opp, move uint64, dir int) uint64 {
	var run uint64
	t := shift(move, dir) & opp
	for t != 0 {
		run |= t
		t = shift(t, dir) & opp
	}
	if shift(run, dir)&own == 0 {
		return 0
	}
	return run
}

// Flips returns the union of bracketed runs captured by playing move.
func Flips(own, opp, move uint64) uint64 {
	var flips uint64
	for dir := 0; dir < NumDirs; dir++ {
		flips |= rayFlips(own, opp, move, dir)
	}
	return flips
}

// FlipsByDir returns the captured run per direction.
func FlipsByDir(own, opp, move uint64) (out [NumDirs]uint64) {
	for dir := 0; dir < NumDirs; dir++ {
		out[dir] = rayFlips(own, opp, move, dir)
	}
	return out
}

// FlipCounts summarises a move's captures along each axis.
type FlipCounts struct {
	Dir        [NumDirs]int
	Vertical   int // N + S
	Horizontal int // E + W
	Diagonal   int
	Total      int
	LongestRun int // longest run in a single direction
}

// CountFlips computes FlipCounts for move.
func CountFlips(own, opp, move uint64) FlipCounts {
	var fc FlipCounts
	for dir := 0; dir < NumDirs; dir++ {
		n := bits.OnesCount64(rayFlips(own, opp, move, dir))
		fc.Dir[dir] = n
		fc.Total += n
		if n > fc.LongestRun {
			fc.LongestRun = n
		}
	}
	fc.Vertical = fc.Dir[DirN] + fc.Dir[DirS]
	fc.Horizontal = fc.Dir[DirE] + fc.Dir[DirW]
	fc.Diagonal = fc.Total - fc.Vertical - fc.Horizontal
	return fc
}

// ApplyMove places move for the owner of own and flips the captured discs.
// move must be legal; callers check LegalMoves first.
func ApplyMove(own, opp, move uint64) (uint64, uint64) {
	flips := Flips(own, opp, move)
	return own ^ flips | move, opp ^ flips
}

// Neighbours returns every square adjacent (8-way) to a square of bb.
func Neighbours(bb uint64) uint64 {
	var n uint64
	for dir := 0; dir < NumDirs; dir++ {
		n |= shift(bb, dir)
	}
	return n
}

// Neighbours4 returns the orthogonal neighbours of bb.
func Neighbours4(bb uint64) uint64 {
	return shift(bb, DirE) | shift(bb, DirW) | shift(bb, DirN) | shift(bb, DirS)
}

// Shift moves every disc of bb one step in dir, dropping discs that fall off.
func Shift(bb uint64, dir int) uint64 { return shift(bb, dir) }
