package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/fluidlab/damsim/internal/model"
)

// Params holds the breaking-dam scenario constants. The fluid block is a
// Width x Height x Depth lattice of particles; the container is sized from
// the same constants so the dam sits flush against the left wall.
type Params struct {
	ParticleRadius  float64
	Width           int
	Height          int
	Depth           int
	ContainerHeight float64
}

// DefaultParams matches the classic demo: a 15x20x15 block of particles
// with radius 0.025 inside a container five block-widths wide.
func DefaultParams() Params {
	return Params{
		ParticleRadius:  0.025,
		Width:           15,
		Height:          20,
		Depth:           15,
		ContainerHeight: 4.0,
	}
}

// Spacing is the lattice spacing shared by fluid and boundary sampling.
// Boundary and fluid particles use one canonical diameter so the packing
// stays consistent at the walls.
func (p Params) Spacing() float64 { return 2 * p.ParticleRadius }

func (p Params) ContainerWidth() float64 {
	return float64(p.Width+1) * p.ParticleRadius * 2.0 * 5.0
}

func (p Params) ContainerDepth() float64 {
	return float64(p.Depth+1) * p.ParticleRadius * 2.0
}

// FluidCount is the number of fluid particles the scenario generates.
func (p Params) FluidCount() int { return p.Width * p.Height * p.Depth }

// BuildBreakingDam samples a block of fluid particles in the lower-left
// corner of the container plus the container's boundary shell, and hands
// both to the model. The model takes ownership of the buffers; callers must
// not reuse them. Building again produces a fresh, independent scenario.
func BuildBreakingDam(p Params, m *model.Model) {
	diam := p.Spacing()
	cw := p.ContainerWidth()
	cd := p.ContainerDepth()

	origin := mgl64.Vec3{-0.5*cw + diam, diam, -0.5*cd + diam}
	fluid := SampleBlock(origin, p.Width, p.Height, p.Depth, diam)
	boundary := BoundaryBox(cw, cd, p.ContainerHeight, diam)

	m.SetParticleRadius(p.ParticleRadius)
	m.Init(fluid, boundary)
}
