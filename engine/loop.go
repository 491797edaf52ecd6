package engine

import (
	"fmt"

	"github.com/sheikhrachel/go-gol-rle/model"
)

// Mode selects how a generation is computed. All modes give identical grids.
type Mode int

const (
	Serial Mode = iota
	Parallel
	Bounded
)

func (m Mode) String() string {
	switch m {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	case Bounded:
		return "bounded"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) advance() func(current, next *model.Grid) error {
	switch m {
	case Parallel:
		return AdvanceParallel
	case Bounded:
		return AdvanceBounded
	}
	return Advance
}

// Option configures an Engine.
type Option func(*Engine)

// WithMode selects the advance strategy.
func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// WithParallel is shorthand for WithMode(Parallel).
func WithParallel() Option { return WithMode(Parallel) }

// WithBounded is shorthand for WithMode(Bounded).
func WithBounded() Option { return WithMode(Bounded) }

// Engine owns the current and next buffers and is their only writer.
type Engine struct {
	current    *model.Grid
	next       *model.Grid
	mode       Mode
	generation int
}

// New copies initial into both buffers. initial itself is never modified.
func New(initial *model.Grid, opts ...Option) *Engine {
	e := &Engine{
		current: initial.Clone(),
		next:    initial.Clone(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step advances one generation and makes it current. Both buffers are
// created by New with the same shape, so a failure here is a bug and panics.
func (e *Engine) Step() {
	if err := e.mode.advance()(e.current, e.next); err != nil {
		panic(err)
	}
	e.current.CopyFrom(e.next)
	e.generation++
}

// Current returns the authoritative grid. It must be treated as read-only and
// is only stable until the next Step.
func (e *Engine) Current() *model.Grid { return e.current }

// Snapshot returns a copy of the current grid that later Steps never touch.
// With a nil pool a fresh grid is allocated.
func (e *Engine) Snapshot(pool *model.GridPool) *model.Grid {
	if pool == nil {
		snap := model.NewGrid(e.current.Rows(), e.current.Columns())
		snap.CopyFrom(e.current)
		return snap
	}
	return pool.CopyOf(e.current)
}

// Generation returns how many Steps have run.
func (e *Engine) Generation() int { return e.generation }

// Mode returns the advance strategy in use.
func (e *Engine) Mode() Mode { return e.mode }
