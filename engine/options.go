package engine

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	MaxThreads            = 8
	DefaultTTBits         = 18
	DefaultEndgameEmpties = 12
	DefaultAspiration     = 75
	DefaultMaxDepth       = 8
	MaxSearchDepth        = 60

	// NoTimeLimit disables the deadline; MaxDepth alone bounds the search.
	NoTimeLimit time.Duration = -1
)

// Options configures an Engine for its whole lifetime.
type Options struct {
	// Threads is the worker count; 0 sizes the pool from GOMAXPROCS,
	// capped at MaxThreads.
	Threads int
	// DisableParallel forbids the worker pool. Root moves are then scored
	// one after another, each with an equal slice of the budget.
	DisableParallel bool
	// PrivateTables gives every worker its own transposition table instead
	// of one shared table.
	PrivateTables bool
	// TTBits sets the table size to 2^TTBits slots.
	TTBits           int
	EndgameEmpties   int
	AspirationWindow int32
	PrintCutStats    bool
	Logger           zerolog.Logger
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		TTBits:           DefaultTTBits,
		EndgameEmpties:   DefaultEndgameEmpties,
		AspirationWindow: DefaultAspiration,
		Logger:           log.Logger,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	switch {
	case o.Threads < 0 || o.Threads > 4*MaxThreads:
		return errors.Wrapf(ErrBadOptions, "threads %d out of range [0, %d]", o.Threads, 4*MaxThreads)
	case o.TTBits < 10 || o.TTBits > 26:
		return errors.Wrapf(ErrBadOptions, "tt bits %d out of range [10, 26]", o.TTBits)
	case o.EndgameEmpties < 0 || o.EndgameEmpties > 20:
		return errors.Wrapf(ErrBadOptions, "endgame empties %d out of range [0, 20]", o.EndgameEmpties)
	case o.AspirationWindow <= 0:
		return errors.Wrapf(ErrBadOptions, "aspiration window %d must be positive", o.AspirationWindow)
	}
	return nil
}

// SearchOptions bound a single ChooseMove call. A zero Time still yields a
// legal move from the one-ply baseline.
type SearchOptions struct {
	Time     time.Duration
	MaxDepth int
}

func (so SearchOptions) withDefaults() SearchOptions {
	if so.MaxDepth <= 0 {
		so.MaxDepth = DefaultMaxDepth
	}
	so.MaxDepth = Min(so.MaxDepth, MaxSearchDepth)
	if so.Time < 0 {
		so.Time = NoTimeLimit
	}
	return so
}

// Capabilities is probed once when the engine is built and decides which
// root strategy ChooseMove uses.
type Capabilities struct {
	ParallelismAvailable  bool
	SharedMemoryAvailable bool
	Workers               int
}

// ProbeCapabilities derives the execution capabilities from o and the
// runtime.
func ProbeCapabilities(o Options) Capabilities {
	workers := o.Threads
	if workers <= 0 {
		workers = Clamp(runtime.GOMAXPROCS(0), 1, MaxThreads)
	}
	return Capabilities{
		ParallelismAvailable:  !o.DisableParallel,
		SharedMemoryAvailable: !o.PrivateTables,
		Workers:               workers,
	}
}
