// Package engine drives a particle model through discrete solver steps:
// one Frame call per render frame, several solver sub-steps per frame.
package engine

import (
	"context"

	"github.com/fluidlab/damsim/internal/model"
)

// Solver advances the model by one discrete step of size h. It owns all
// numerical integration, neighbor search and constraint handling; the
// engine treats it as opaque and assumes a step always succeeds.
type Solver interface {
	Step(m *model.Model, h float64)
	Reset()
}

// Observer is notified after every solver sub-step. Hosts hang statistics,
// recording and rendering bookkeeping off this hook.
type Observer interface {
	OnSubStep(t float64)
}

// Engine owns the frame loop state: pause flags, sub-step count and the
// clock. It is not safe for concurrent use; the host event loop serializes
// Frame, Reset and interaction callbacks on one goroutine.
type Engine struct {
	model  *model.Model
	solver Solver
	clock  *Clock

	// Paused halts sub-stepping while leaving time intact.
	Paused bool
	// PauseAt forces Paused once simulation time passes it. Zero or
	// negative disables the check. The flag stays set afterwards; it never
	// auto-clears.
	PauseAt float64
	// StepsPerFrame is the number of solver sub-steps per Frame call.
	StepsPerFrame int

	observers []Observer
}

func New(m *model.Model, s Solver, clock *Clock) *Engine {
	return &Engine{
		model:         m,
		solver:        s,
		clock:         clock,
		StepsPerFrame: 1,
	}
}

func (e *Engine) Model() *model.Model { return e.model }
func (e *Engine) Clock() *Clock       { return e.clock }

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Frame runs one render frame's worth of simulation: the auto-pause check,
// then StepsPerFrame solver sub-steps. Each sub-step advances the clock and
// notifies observers before the next one starts.
func (e *Engine) Frame() {
	if e.PauseAt > 0 && e.clock.Time() > e.PauseAt {
		e.Paused = true
	}
	if e.Paused {
		return
	}

	for i := 0; i < e.StepsPerFrame; i++ {
		e.solver.Step(e.model, e.clock.StepSize())
		e.clock.Tick()
		for _, o := range e.observers {
			o.OnSubStep(e.clock.Time())
		}
	}
}

// Reset zeroes simulation time and clears model and solver state. The
// scenario is not rebuilt: particle positions return to the ones sampled by
// the last build.
func (e *Engine) Reset() {
	e.clock.SetTime(0)
	e.model.Reset()
	e.solver.Reset()
}

// Run drives Frame until the simulation clock reaches duration, the engine
// pauses, or ctx is cancelled. Headless hosts (CLI run, server warm-up) use
// it in place of a render loop.
func (e *Engine) Run(ctx context.Context, duration float64) error {
	for e.clock.Time() < duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.Frame()
		if e.Paused {
			return nil
		}
	}
	return nil
}
