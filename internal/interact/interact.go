// Package interact turns pointer events into particle selection and
// velocity impulses on the model.
package interact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/fluidlab/damsim/internal/engine"
	"github.com/fluidlab/damsim/internal/model"
)

// DragGain scales pointer displacement into a velocity impulse. Dividing by
// the step size converts a one-frame positional drag into a velocity on the
// solver's time scale; the factor itself is demo tuning, not physics.
const DragGain = 5.0

// Selector resolves a screen-space rectangle to the indices of the fluid
// particles whose projected positions fall inside it.
type Selector interface {
	SelectInRect(start, end mgl64.Vec2, positions []mgl64.Vec3) []int
}

// Unprojector maps a screen coordinate back to a world-space point.
type Unprojector interface {
	Unproject(x, y float64) mgl64.Vec3
}

// Controller is a two-state machine: Idle (no selection) and Dragging
// (non-empty selection with a valid anchor). Selection events rebuild the
// selected set wholesale; pointer moves while dragging inject velocity.
// The host event loop serializes calls with engine frames, so no locking.
type Controller struct {
	model     *model.Model
	clock     *engine.Clock
	selector  Selector
	unproject Unprojector

	selected []int
	anchor   mgl64.Vec3
}

func NewController(m *model.Model, clock *engine.Clock, sel Selector, unp Unprojector) *Controller {
	return &Controller{
		model:     m,
		clock:     clock,
		selector:  sel,
		unproject: unp,
	}
}

// Selected returns the current selection. Callers must not mutate it.
func (c *Controller) Selected() []int { return c.selected }

// Dragging reports whether pointer moves currently inject velocity.
func (c *Controller) Dragging() bool { return len(c.selected) > 0 }

// OnSelection recomputes the selection from a rubber-band rectangle. An
// empty result drops back to Idle and deactivates pointer tracking. The
// anchor becomes the unprojected rectangle end point.
func (c *Controller) OnSelection(start, end mgl64.Vec2) {
	c.selected = c.selector.SelectInRect(start, end, c.model.Positions())
	c.anchor = c.unproject.Unproject(end.X(), end.Y())
}

// OnPointerMove applies DragGain * displacement / stepSize to every
// selected particle's velocity and moves the anchor to the new point.
// Ignored while Idle.
func (c *Controller) OnPointerMove(x, y float64) {
	if len(c.selected) == 0 {
		return
	}

	p := c.unproject.Unproject(x, y)
	dv := p.Sub(c.anchor).Mul(DragGain / c.clock.StepSize())
	for _, i := range c.selected {
		c.model.AddVelocity(i, dv)
	}
	c.anchor = p
}
