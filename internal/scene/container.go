package scene

import "github.com/go-gl/mathgl/mgl64"

// BoundaryBox samples the six faces of a closed container as single-layer
// particle shells. The container spans [-width/2, width/2] in x,
// [0, height] in y and [-depth/2, depth/2] in z. The call order (floor,
// top, left, right, back, front) fixes the final index layout so scenarios
// stay reproducible.
func BoundaryBox(width, depth, height, diam float64) []mgl64.Vec3 {
	x1, x2 := -width/2, width/2
	y1, y2 := 0.0, height
	z1, z2 := -depth/2, depth/2

	var b []mgl64.Vec3
	b = AppendWall(b, mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y1, z2}, diam)
	b = AppendWall(b, mgl64.Vec3{x1, y2, z1}, mgl64.Vec3{x2, y2, z2}, diam)
	b = AppendWall(b, mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x1, y2, z2}, diam)
	b = AppendWall(b, mgl64.Vec3{x2, y1, z1}, mgl64.Vec3{x2, y2, z2}, diam)
	b = AppendWall(b, mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y2, z1}, diam)
	b = AppendWall(b, mgl64.Vec3{x1, y1, z2}, mgl64.Vec3{x2, y2, z2}, diam)
	return b
}
