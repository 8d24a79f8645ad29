// Package gui is the raylib front end: it renders the particle fluid,
// drives the engine once per frame and feeds mouse events into the
// interaction controller.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/fluidlab/damsim/internal/engine"
	"github.com/fluidlab/damsim/internal/interact"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
	colStatus  = rl.NewColor(255, 255, 255, 255)
	colSelect  = rl.NewColor(200, 40, 40, 255)
	colRubber  = rl.NewColor(255, 255, 255, 120)
)

type App struct {
	eng    *engine.Engine
	ctrl   *interact.Controller
	camera rl.Camera3D
	radius float64

	selecting bool
	selStart  rl.Vector2
	lastMouse rl.Vector2
	quit      bool
}

// NewApp wires the controller against the app's own camera-based selection
// and unprojection. The engine must already hold a built scenario.
func NewApp(eng *engine.Engine) *App {
	a := &App{
		eng: eng,
		camera: rl.NewCamera3D(
			rl.NewVector3(0, 3, 8),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			40.0,
			rl.CameraPerspective,
		),
		radius: eng.Model().ParticleRadius(),
	}
	a.ctrl = interact.NewController(
		eng.Model(),
		eng.Clock(),
		&camSelector{cam: &a.camera},
		&planeUnprojector{cam: &a.camera},
	)
	return a
}

// Run opens the window and blocks in the frame loop until the window
// closes or Q is pressed.
func Run(eng *engine.Engine) {
	rl.InitWindow(screenWidth, screenHeight, "damsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	app := NewApp(eng)
	for !rl.WindowShouldClose() && !app.quit {
		app.Update()
		app.Draw()
	}
}

// Update handles one frame of input and simulation. Events and sub-steps
// run on this goroutine in strict alternation, so the model is never
// mutated concurrently.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.eng.Paused = !a.eng.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.eng.Reset()
	}

	a.handleMouse()
	a.eng.Frame()
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.selecting = true
		a.selStart = mouse
	case rl.IsMouseButtonReleased(rl.MouseLeftButton) && a.selecting:
		a.selecting = false
		a.ctrl.OnSelection(
			mgl64.Vec2{float64(a.selStart.X), float64(a.selStart.Y)},
			mgl64.Vec2{float64(mouse.X), float64(mouse.Y)},
		)
	case !a.selecting && a.ctrl.Dragging():
		if mouse.X != a.lastMouse.X || mouse.Y != a.lastMouse.Y {
			a.ctrl.OnPointerMove(float64(mouse.X), float64(mouse.Y))
		}
	}
	a.lastMouse = mouse
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginMode3D(a.camera)
	a.drawParticles()
	rl.EndMode3D()

	if a.selecting {
		a.drawRubberBand()
	}
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawParticles() {
	m := a.eng.Model()
	h := a.eng.Clock().StepSize()
	// Speed scale for coloring, tied to how far a particle may travel per
	// step relative to the kernel support.
	vmax := 0.4 * 2.0 * m.SupportRadius() / h

	pos := m.Positions()
	vel := m.Velocities()
	for i := range pos {
		v := vel[i].Len() / vmax
		if v > 1 {
			v = 1
		}
		c := rl.ColorFromHSV(198, 1.0, 0.5+0.5*float32(v))
		rl.DrawSphereEx(vec3ToRl(pos[i]), float32(a.radius), 6, 6, c)
	}

	for _, i := range a.ctrl.Selected() {
		rl.DrawSphereEx(vec3ToRl(pos[i]), float32(a.radius*2.5), 6, 6, colSelect)
	}
}

func (a *App) drawRubberBand() {
	mouse := rl.GetMousePosition()
	x := minf(a.selStart.X, mouse.X)
	y := minf(a.selStart.Y, mouse.Y)
	w := absf(mouse.X - a.selStart.X)
	h := absf(mouse.Y - a.selStart.Y)
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), colRubber)
}

func (a *App) drawHUD() {
	status := "RUNNING"
	col := colStatus
	if a.eng.Paused {
		status = "PAUSED"
		col = colTextDim
	}
	rl.DrawText("damsim", 30, 30, 24, colStatus)
	rl.DrawText(status, screenWidth-130, 30, 16, col)
	rl.DrawText(fmt.Sprintf("t = %.3fs", a.eng.Clock().Time()), 30, 64, 16, colText)
	rl.DrawText(fmt.Sprintf("%d fluid / %d boundary", a.eng.Model().Count(), a.eng.Model().BoundaryCount()), 30, 86, 16, colText)
	rl.DrawText("[DRAG] SELECT  [MOVE] PUSH  [SPACE] PAUSE  [R] RESET  [Q] QUIT", 560, screenHeight-40, 14, colTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, screenHeight-40, 14, colTextDim)
}

func vec3ToRl(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func absf(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}
