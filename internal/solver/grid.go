package solver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type cellKey struct {
	x, y, z int32
}

// grid is a uniform hash grid over particle positions with cell size equal
// to the kernel support radius, so a neighbor query only has to visit the
// 3x3x3 block of cells around a point.
type grid struct {
	cell  float64
	cells map[cellKey][]int
}

func newGrid(cell float64) *grid {
	return &grid{cell: cell, cells: make(map[cellKey][]int)}
}

func (g *grid) keyFor(p mgl64.Vec3) cellKey {
	return cellKey{
		x: int32(math.Floor(p.X() / g.cell)),
		y: int32(math.Floor(p.Y() / g.cell)),
		z: int32(math.Floor(p.Z() / g.cell)),
	}
}

// rebuild reindexes all points. Bucket slices are kept between rebuilds to
// avoid churning allocations every step.
func (g *grid) rebuild(pts []mgl64.Vec3) {
	for k, bucket := range g.cells {
		g.cells[k] = bucket[:0]
	}
	for i, p := range pts {
		k := g.keyFor(p)
		g.cells[k] = append(g.cells[k], i)
	}
}

// forNeighbors visits every indexed point in the 27 cells around p. Callers
// still have to apply the exact distance cutoff.
func (g *grid) forNeighbors(p mgl64.Vec3, fn func(j int)) {
	c := g.keyFor(p)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				bucket := g.cells[cellKey{c.x + dx, c.y + dy, c.z + dz}]
				for _, j := range bucket {
					fn(j)
				}
			}
		}
	}
}
