// Package model stores the particle state of a running simulation: mutable
// fluid particles (position + velocity) and the static boundary shell.
package model

import "github.com/go-gl/mathgl/mgl64"

// Model owns the particle arrays. Fluid particles are mutated by the solver
// and the interaction controller; boundary particles are set once at Init
// and never move. Particle indices are stable for the lifetime of the
// model: nothing is created or deleted after Init.
type Model struct {
	positions  []mgl64.Vec3
	velocities []mgl64.Vec3
	boundary   []mgl64.Vec3

	// initial keeps the positions handed to Init so Reset can restore them
	// without resampling the scenario.
	initial []mgl64.Vec3

	radius float64
}

func New() *Model {
	return &Model{radius: 0.025}
}

// Init hands ownership of the sampled particle buffers to the model and
// snapshots the fluid positions for later Reset calls.
func (m *Model) Init(fluid, boundary []mgl64.Vec3) {
	m.positions = fluid
	m.velocities = make([]mgl64.Vec3, len(fluid))
	m.boundary = boundary

	m.initial = make([]mgl64.Vec3, len(fluid))
	copy(m.initial, fluid)
}

// Reset restores the fluid positions captured at Init and zeroes all
// velocities. It never resamples: the scenario geometry survives.
func (m *Model) Reset() {
	copy(m.positions, m.initial)
	for i := range m.velocities {
		m.velocities[i] = mgl64.Vec3{}
	}
}

func (m *Model) Count() int         { return len(m.positions) }
func (m *Model) BoundaryCount() int { return len(m.boundary) }

func (m *Model) Position(i int) mgl64.Vec3     { return m.positions[i] }
func (m *Model) SetPosition(i int, p mgl64.Vec3) { m.positions[i] = p }

func (m *Model) Velocity(i int) mgl64.Vec3       { return m.velocities[i] }
func (m *Model) SetVelocity(i int, v mgl64.Vec3) { m.velocities[i] = v }

// AddVelocity applies a velocity impulse to one fluid particle.
func (m *Model) AddVelocity(i int, dv mgl64.Vec3) {
	m.velocities[i] = m.velocities[i].Add(dv)
}

func (m *Model) BoundaryPosition(i int) mgl64.Vec3 { return m.boundary[i] }

// Positions exposes the backing fluid position slice for bulk readers
// (selection, rendering, neighbor search). Callers must treat it as
// read-only; writes go through SetPosition.
func (m *Model) Positions() []mgl64.Vec3 { return m.positions }

// Velocities exposes the backing velocity slice for bulk readers.
func (m *Model) Velocities() []mgl64.Vec3 { return m.velocities }

// BoundaryPositions exposes the static boundary shell.
func (m *Model) BoundaryPositions() []mgl64.Vec3 { return m.boundary }

func (m *Model) ParticleRadius() float64 { return m.radius }

func (m *Model) SetParticleRadius(r float64) { m.radius = r }

// SupportRadius is the SPH kernel support, four particle radii by
// convention (two diameters).
func (m *Model) SupportRadius() float64 { return 4 * m.radius }

// KineticEnergy sums 0.5*|v|^2 over the fluid (unit mass per particle).
func (m *Model) KineticEnergy() float64 {
	e := 0.0
	for _, v := range m.velocities {
		e += 0.5 * v.Dot(v)
	}
	return e
}

// MaxSpeed returns the largest fluid particle speed.
func (m *Model) MaxSpeed() float64 {
	max := 0.0
	for _, v := range m.velocities {
		if s := v.Len(); s > max {
			max = s
		}
	}
	return max
}
