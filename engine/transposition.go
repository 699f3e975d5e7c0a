package engine

import (
	"sync/atomic"

	om "othello-engine/othellomg"
)

const (
	// Flags
	AlphaFlag = iota // upper bound: every move failed low
	BetaFlag         // lower bound: a move failed high
	ExactFlag
)

// TTEntry is one probed position.
type TTEntry struct {
	Hash  uint64
	Score int32
	Depth int8
	Flag  int8
	Move  om.Square
}

// TransTable stores search results keyed by Zobrist hash. A slot is only
// overwritten by an entry at least as deep as the one it holds.
type TransTable interface {
	Probe(hash uint64) (TTEntry, bool)
	Store(hash uint64, depth int8, score int32, flag int8, move om.Square)
	Clear()
}

/*
useEntry narrows the window with a stored bound. The caller returns score
when the window closes.
*/
func useEntry(entry TTEntry, depth int8, alpha, beta int32) (int32, int32, bool, int32) {
	if entry.Depth < depth {
		return alpha, beta, false, 0
	}
	switch entry.Flag {
	case ExactFlag:
		return entry.Score, entry.Score, true, entry.Score
	case BetaFlag:
		alpha = Max(alpha, entry.Score)
	case AlphaFlag:
		beta = Min(beta, entry.Score)
	}
	return alpha, beta, alpha >= beta, entry.Score
}

// localTable belongs to a single searcher and is never shared.
type localTable struct {
	entries []TTEntry
	mask    uint64
}

func newLocalTable(bits int) *localTable {
	tt := &localTable{
		entries: make([]TTEntry, 1<<bits),
		mask:    1<<bits - 1,
	}
	tt.Clear()
	return tt
}

func (tt *localTable) Probe(hash uint64) (TTEntry, bool) {
	entry := tt.entries[hash&tt.mask]
	return entry, entry.Hash == hash && entry.Depth >= 0
}

func (tt *localTable) Store(hash uint64, depth int8, score int32, flag int8, move om.Square) {
	entry := &tt.entries[hash&tt.mask]
	if depth < entry.Depth {
		return
	}
	*entry = TTEntry{Hash: hash, Score: score, Depth: depth, Flag: flag, Move: move}
}

func (tt *localTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{Depth: -1, Move: om.NoSquare}
	}
}

// sharedEntry is guarded by its own gate. Low hash bits pick the slot, so
// only the upper half of the key is kept.
type sharedEntry struct {
	gate  atomic.Int32
	key32 uint32
	score int32
	depth int8
	flag  int8
	move  om.Square
}

// sharedTable is used by every worker of the pool at once. A reader or writer
// that finds the slot busy simply skips it.
type sharedTable struct {
	entries []sharedEntry
	mask    uint64
}

func newSharedTable(bits int) *sharedTable {
	tt := &sharedTable{
		entries: make([]sharedEntry, 1<<bits),
		mask:    1<<bits - 1,
	}
	tt.Clear()
	return tt
}

func (tt *sharedTable) Probe(hash uint64) (entry TTEntry, ok bool) {
	slot := &tt.entries[hash&tt.mask]
	if !slot.gate.CompareAndSwap(0, 1) {
		return entry, false
	}
	if slot.key32 == uint32(hash>>32) && slot.depth >= 0 {
		entry = TTEntry{Hash: hash, Score: slot.score, Depth: slot.depth, Flag: slot.flag, Move: slot.move}
		ok = true
	}
	slot.gate.Store(0)
	return entry, ok
}

func (tt *sharedTable) Store(hash uint64, depth int8, score int32, flag int8, move om.Square) {
	slot := &tt.entries[hash&tt.mask]
	if !slot.gate.CompareAndSwap(0, 1) {
		return
	}
	if depth >= slot.depth {
		slot.key32 = uint32(hash >> 32)
		slot.score = score
		slot.depth = depth
		slot.flag = flag
		slot.move = move
	}
	slot.gate.Store(0)
}

// Clear must not run while workers use the table.
func (tt *sharedTable) Clear() {
	for i := range tt.entries {
		slot := &tt.entries[i]
		slot.key32 = 0
		slot.score = 0
		slot.depth = -1
		slot.flag = 0
		slot.move = om.NoSquare
	}
}
