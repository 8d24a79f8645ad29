package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// camSelector resolves a screen rectangle against the camera's projection
// of the particle positions.
type camSelector struct {
	cam *rl.Camera3D
}

func (s *camSelector) SelectInRect(start, end mgl64.Vec2, positions []mgl64.Vec3) []int {
	minX, maxX := order(start.X(), end.X())
	minY, maxY := order(start.Y(), end.Y())

	var hits []int
	for i, p := range positions {
		sp := rl.GetWorldToScreen(vec3ToRl(p), *s.cam)
		x, y := float64(sp.X), float64(sp.Y)
		if x >= minX && x <= maxX && y >= minY && y <= maxY {
			hits = append(hits, i)
		}
	}
	return hits
}

// planeUnprojector casts the mouse ray into the scene and intersects it
// with the z=0 plane through the container center, which is where drag
// displacements are measured.
type planeUnprojector struct {
	cam *rl.Camera3D
}

func (u *planeUnprojector) Unproject(x, y float64) mgl64.Vec3 {
	ray := rl.GetMouseRay(rl.NewVector2(float32(x), float32(y)), *u.cam)

	if ray.Direction.Z != 0 {
		t := -ray.Position.Z / ray.Direction.Z
		if t > 0 {
			return mgl64.Vec3{
				float64(ray.Position.X + t*ray.Direction.X),
				float64(ray.Position.Y + t*ray.Direction.Y),
				0,
			}
		}
	}
	// Grazing ray: fall back to a point a fixed distance along it.
	const dist = 8.0
	return mgl64.Vec3{
		float64(ray.Position.X + dist*ray.Direction.X),
		float64(ray.Position.Y + dist*ray.Direction.Y),
		float64(ray.Position.Z + dist*ray.Direction.Z),
	}
}

func order(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
