package engine

// Clock tracks simulation time and the fixed solver step size. Time only
// moves forward through Tick; Reset sets it back to zero through SetTime.
type Clock struct {
	time     float64
	stepSize float64
}

func NewClock(stepSize float64) *Clock {
	return &Clock{stepSize: stepSize}
}

func (c *Clock) Time() float64         { return c.time }
func (c *Clock) SetTime(t float64)     { c.time = t }
func (c *Clock) StepSize() float64     { return c.stepSize }
func (c *Clock) SetStepSize(h float64) { c.stepSize = h }

// Tick advances time by one step size.
func (c *Clock) Tick() { c.time += c.stepSize }
