package interact

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/fluidlab/damsim/internal/engine"
	"github.com/fluidlab/damsim/internal/model"
)

// fakeSelector returns a canned index set regardless of the rectangle.
type fakeSelector struct {
	result []int
	calls  int
}

func (f *fakeSelector) SelectInRect(start, end mgl64.Vec2, positions []mgl64.Vec3) []int {
	f.calls++
	return f.result
}

// fakeUnprojector maps screen (x, y) straight to world (x, y, 0).
type fakeUnprojector struct{}

func (fakeUnprojector) Unproject(x, y float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, 0}
}

func newTestController(selected []int) (*Controller, *model.Model) {
	m := model.New()
	m.Init([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, nil)
	sel := &fakeSelector{result: selected}
	c := NewController(m, engine.NewClock(0.5), sel, fakeUnprojector{})
	return c, m
}

func TestEmptySelectionStaysIdle(t *testing.T) {
	c, m := newTestController(nil)

	c.OnSelection(mgl64.Vec2{0, 0}, mgl64.Vec2{5, 5})

	if c.Dragging() {
		t.Fatal("empty selection must not enter dragging")
	}

	c.OnPointerMove(10, 10)
	for i := 0; i < m.Count(); i++ {
		if m.Velocity(i) != (mgl64.Vec3{}) {
			t.Errorf("idle pointer move changed velocity of particle %d: %v", i, m.Velocity(i))
		}
	}
}

func TestDragImpulse(t *testing.T) {
	c, m := newTestController([]int{0, 2})

	c.OnSelection(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 2})
	if !c.Dragging() {
		t.Fatal("non-empty selection must enter dragging")
	}

	// Anchor is at (1, 2, 0); move by (1, 1) with h = 0.5, so each selected
	// particle gains 5 * (1, 1, 0) / 0.5 = (10, 10, 0).
	c.OnPointerMove(2, 3)

	want := mgl64.Vec3{10, 10, 0}
	for _, i := range []int{0, 2} {
		if m.Velocity(i) != want {
			t.Errorf("particle %d velocity: got %v, want %v", i, m.Velocity(i), want)
		}
	}
	if m.Velocity(1) != (mgl64.Vec3{}) {
		t.Errorf("unselected particle gained velocity %v", m.Velocity(1))
	}
}

func TestAnchorAdvancesPerMove(t *testing.T) {
	c, m := newTestController([]int{1})

	c.OnSelection(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0})
	c.OnPointerMove(1, 0)
	c.OnPointerMove(1, 1)

	// First move contributes (10, 0, 0), second (0, 10, 0): the anchor must
	// track the pointer, not stay at the selection point.
	want := mgl64.Vec3{10, 10, 0}
	if m.Velocity(1) != want {
		t.Errorf("got %v, want %v", m.Velocity(1), want)
	}
}

func TestReselectionReplacesSet(t *testing.T) {
	m := model.New()
	m.Init([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}, nil)
	sel := &fakeSelector{result: []int{0}}
	c := NewController(m, engine.NewClock(0.5), sel, fakeUnprojector{})

	c.OnSelection(mgl64.Vec2{}, mgl64.Vec2{})
	sel.result = []int{1}
	c.OnSelection(mgl64.Vec2{}, mgl64.Vec2{})

	c.OnPointerMove(1, 0)
	if m.Velocity(0) != (mgl64.Vec3{}) {
		t.Errorf("dropped particle still receives impulses: %v", m.Velocity(0))
	}
	if m.Velocity(1) == (mgl64.Vec3{}) {
		t.Error("newly selected particle received no impulse")
	}
	if sel.calls != 2 {
		t.Errorf("selector calls: got %d, want 2", sel.calls)
	}
}

func TestReselectionToEmptyDeactivates(t *testing.T) {
	m := model.New()
	m.Init([]mgl64.Vec3{{0, 0, 0}}, nil)
	sel := &fakeSelector{result: []int{0}}
	c := NewController(m, engine.NewClock(0.5), sel, fakeUnprojector{})

	c.OnSelection(mgl64.Vec2{}, mgl64.Vec2{})
	if !c.Dragging() {
		t.Fatal("expected dragging after first selection")
	}

	sel.result = nil
	c.OnSelection(mgl64.Vec2{}, mgl64.Vec2{})
	if c.Dragging() {
		t.Error("empty reselection must return to idle")
	}

	c.OnPointerMove(3, 3)
	if m.Velocity(0) != (mgl64.Vec3{}) {
		t.Errorf("idle pointer move changed velocity: %v", m.Velocity(0))
	}
}
