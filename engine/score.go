package engine

import "fmt"

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MaxScore bounds every search window.
	MaxScore int32 = 1 << 22
	// ExactScale is the weight of one disc in a finished game. It exceeds
	// EvalLimit so any decided game outranks any heuristic value.
	ExactScale int32 = 1 << 15
	EvalLimit  int32 = ExactScale - 1
	// maxDiscDiff bounds the endgame solver's window.
	maxDiscDiff int32 = 65
)

func terminalScore(diff int) int32 {
	return int32(diff) * ExactScale
}

// Score is a root-level result tagged with its domain. Exact scores are final
// disc differences proven by the endgame solver; heuristic scores come from
// the evaluator or a time-limited search.
type Score struct {
	Value int32
	Exact bool
}

func HeuristicScore(v int32) Score { return Score{Value: v} }

func ExactScore(diff int32) Score { return Score{Value: diff, Exact: true} }

// rank maps both domains onto one order: proven wins above every heuristic,
// proven losses below, proven draws at heuristic zero.
func (s Score) rank() int64 {
	if !s.Exact {
		return int64(s.Value)
	}
	switch {
	case s.Value > 0:
		return int64(MaxScore) + int64(s.Value)
	case s.Value < 0:
		return -int64(MaxScore) + int64(s.Value)
	default:
		return 0
	}
}

// Better reports whether s strictly outranks o.
func (s Score) Better(o Score) bool { return s.rank() > o.rank() }

func (s Score) String() string {
	if s.Exact {
		return fmt.Sprintf("exact %+d", s.Value)
	}
	return fmt.Sprintf("cp %d", s.Value)
}

