// Package solver implements the particle-dynamics step consumed by the
// engine: a weakly compressible SPH solve with static boundary particles.
package solver

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/fluidlab/damsim/internal/model"
)

// Params are the fluid material constants.
type Params struct {
	RestDensity float64
	Stiffness   float64
	Viscosity   float64
	Gravity     float64
}

func DefaultParams() Params {
	return Params{
		RestDensity: 1000.0,
		Stiffness:   50000.0,
		Viscosity:   0.02,
		Gravity:     9.81,
	}
}

// SPH advances the model with a density/pressure/viscosity solve followed
// by semi-implicit Euler integration. Boundary particles contribute to
// density and receive a mirrored pressure force, which keeps the fluid
// inside the container without explicit collision geometry.
type SPH struct {
	params Params

	support  float64
	mass     float64
	fluid    *grid
	boundary *grid

	density  []float64
	pressure []float64
	accel    []mgl64.Vec3

	boundaryReady bool
}

func NewSPH(p Params) *SPH {
	return &SPH{params: p}
}

func (s *SPH) Params() Params { return s.params }

// Reset drops all cached per-step state. Particle data lives in the model;
// the solver only rebuilds its scratch buffers and grids on the next step.
func (s *SPH) Reset() {
	s.fluid = nil
	s.boundary = nil
	s.density = nil
	s.pressure = nil
	s.accel = nil
	s.boundaryReady = false
}

func (s *SPH) ensure(m *model.Model) {
	n := m.Count()
	if len(s.density) != n {
		s.density = make([]float64, n)
		s.pressure = make([]float64, n)
		s.accel = make([]mgl64.Vec3, n)
	}
	if s.support != m.SupportRadius() || s.fluid == nil {
		s.support = m.SupportRadius()
		diam := 2 * m.ParticleRadius()
		s.mass = s.params.RestDensity * diam * diam * diam
		s.fluid = newGrid(s.support)
		s.boundary = newGrid(s.support)
		s.boundaryReady = false
	}
	if !s.boundaryReady {
		s.boundary.rebuild(m.BoundaryPositions())
		s.boundaryReady = true
	}
}

// Step advances the model by h. Deterministic: identical model state yields
// identical results.
func (s *SPH) Step(m *model.Model, h float64) {
	s.ensure(m)

	pos := m.Positions()
	vel := m.Velocities()
	bnd := m.BoundaryPositions()
	sup := s.support

	s.fluid.rebuild(pos)

	// Density and pressure from fluid and boundary neighbors.
	for i := range pos {
		rho := 0.0
		s.fluid.forNeighbors(pos[i], func(j int) {
			d := pos[i].Sub(pos[j])
			rho += s.mass * poly6(d.Dot(d), sup)
		})
		s.boundary.forNeighbors(pos[i], func(j int) {
			d := pos[i].Sub(bnd[j])
			rho += s.mass * poly6(d.Dot(d), sup)
		})
		s.density[i] = rho

		p := s.params.Stiffness * (rho - s.params.RestDensity)
		if p < 0 {
			p = 0
		}
		s.pressure[i] = p
	}

	// Pressure and viscosity forces, gravity last.
	for i := range pos {
		acc := mgl64.Vec3{0, -s.params.Gravity, 0}
		rhoI := s.density[i]
		if rhoI <= 0 {
			s.accel[i] = acc
			continue
		}

		s.fluid.forNeighbors(pos[i], func(j int) {
			if j == i {
				return
			}
			d := pos[i].Sub(pos[j])
			r := d.Len()
			if r >= sup || r == 0 {
				return
			}
			rhoJ := s.density[j]
			if rhoJ <= 0 {
				return
			}

			fp := -s.mass * (s.pressure[i] + s.pressure[j]) / (2 * rhoI * rhoJ) * spikyGrad(r, sup)
			acc = acc.Add(d.Mul(fp / r))

			fv := s.params.Viscosity * s.mass * viscLap(r, sup) / (rhoI * rhoJ)
			acc = acc.Add(vel[j].Sub(vel[i]).Mul(fv))
		})

		// Boundary particles are static ghosts: mirrored pressure only.
		s.boundary.forNeighbors(pos[i], func(j int) {
			d := pos[i].Sub(bnd[j])
			r := d.Len()
			if r >= sup || r == 0 {
				return
			}
			fp := -s.mass * (2 * s.pressure[i]) / (2 * rhoI * s.params.RestDensity) * spikyGrad(r, sup)
			acc = acc.Add(d.Mul(fp / r))
		})

		s.accel[i] = acc
	}

	// Semi-implicit Euler.
	for i := range pos {
		v := vel[i].Add(s.accel[i].Mul(h))
		m.SetVelocity(i, v)
		m.SetPosition(i, pos[i].Add(v.Mul(h)))
	}
}
