package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/fluidlab/damsim/internal/model"
)

func TestBoundaryBoxComposition(t *testing.T) {
	width, depth, height := 4.0, 1.0, 2.0
	diam := 0.5

	got := BoundaryBox(width, depth, height, diam)

	x1, x2 := -width/2, width/2
	y1, y2 := 0.0, height
	z1, z2 := -depth/2, depth/2

	walls := [][2]mgl64.Vec3{
		{{x1, y1, z1}, {x2, y1, z2}},
		{{x1, y2, z1}, {x2, y2, z2}},
		{{x1, y1, z1}, {x1, y2, z2}},
		{{x2, y1, z1}, {x2, y2, z2}},
		{{x1, y1, z1}, {x2, y2, z1}},
		{{x1, y1, z2}, {x2, y2, z2}},
	}

	total := 0
	for wi, w := range walls {
		seg := AppendWall(nil, w[0], w[1], diam)
		if total+len(seg) > len(got) {
			t.Fatalf("wall %d overruns boundary buffer", wi)
		}
		for i, p := range seg {
			if got[total+i] != p {
				t.Fatalf("wall %d particle %d: got %v, want %v", wi, i, got[total+i], p)
			}
		}
		total += len(seg)
	}

	if total != len(got) {
		t.Errorf("six wall ranges cover %d particles, boundary has %d", total, len(got))
	}
}

func TestBoundaryBoxDegenerateExtents(t *testing.T) {
	// A container flattened on every axis still yields one particle per
	// face thanks to the +1 step minimum.
	got := BoundaryBox(0, 0, 0, 0.5)
	if len(got) != 6 {
		t.Errorf("expected 6 particles for a fully degenerate box, got %d", len(got))
	}
}

func TestBuildBreakingDamCounts(t *testing.T) {
	p := DefaultParams()
	m := model.New()

	BuildBreakingDam(p, m)

	if want := 15 * 20 * 15; m.Count() != want {
		t.Errorf("fluid count: got %d, want %d", m.Count(), want)
	}
	if want := len(BoundaryBox(p.ContainerWidth(), p.ContainerDepth(), p.ContainerHeight, p.Spacing())); m.BoundaryCount() != want {
		t.Errorf("boundary count: got %d, want %d", m.BoundaryCount(), want)
	}
	if m.ParticleRadius() != p.ParticleRadius {
		t.Errorf("particle radius: got %v, want %v", m.ParticleRadius(), p.ParticleRadius)
	}
}

func TestBuildBreakingDamBlockPlacement(t *testing.T) {
	p := DefaultParams()
	m := model.New()

	BuildBreakingDam(p, m)

	diam := p.Spacing()
	wantOrigin := mgl64.Vec3{
		-0.5*p.ContainerWidth() + diam,
		diam,
		-0.5*p.ContainerDepth() + diam,
	}
	if m.Position(0) != wantOrigin {
		t.Errorf("first fluid particle: got %v, want %v", m.Position(0), wantOrigin)
	}

	// The dam must sit inside the container on every axis.
	for i := 0; i < m.Count(); i++ {
		pos := m.Position(i)
		if pos.X() < -0.5*p.ContainerWidth() || pos.X() > 0.5*p.ContainerWidth() {
			t.Fatalf("particle %d outside container in x: %v", i, pos)
		}
		if pos.Y() < 0 || pos.Y() > p.ContainerHeight {
			t.Fatalf("particle %d outside container in y: %v", i, pos)
		}
		if pos.Z() < -0.5*p.ContainerDepth() || pos.Z() > 0.5*p.ContainerDepth() {
			t.Fatalf("particle %d outside container in z: %v", i, pos)
		}
	}
}

func TestBuildBreakingDamIndependentRebuild(t *testing.T) {
	p := DefaultParams()
	m := model.New()
	BuildBreakingDam(p, m)

	first := m.Position(0)
	m.SetPosition(0, mgl64.Vec3{99, 99, 99})

	BuildBreakingDam(p, m)
	if m.Position(0) != first {
		t.Errorf("rebuild did not produce a fresh scenario: got %v, want %v", m.Position(0), first)
	}
}
