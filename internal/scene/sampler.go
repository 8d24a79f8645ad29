package scene

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleBlock fills an axis-aligned box with a regular lattice of nx*ny*nz
// particles spaced diam apart, starting at origin. The particle for lattice
// cell (i,j,k) lands at index i*ny*nz + j*nz + k.
func SampleBlock(origin mgl64.Vec3, nx, ny, nz int, diam float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, nx*ny*nz)
	parallelFor(nx, func(i int) {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				out[i*ny*nz+j*nz+k] = origin.Add(mgl64.Vec3{
					float64(i) * diam,
					float64(j) * diam,
					float64(k) * diam,
				})
			}
		}
	})
	return out
}

// AppendWall appends a regular lattice covering the box [minC, maxC] to buf
// and returns the grown slice. Entries already in buf are never touched. A
// wall is usually a thin box with zero extent on one axis; the step-count
// formula keeps a single particle layer there.
func AppendWall(buf []mgl64.Vec3, minC, maxC mgl64.Vec3, diam float64) []mgl64.Vec3 {
	d := maxC.Sub(minC)
	sx := wallSteps(d.X(), diam)
	sy := wallSteps(d.Y(), diam)
	sz := wallSteps(d.Z(), diam)

	start := len(buf)
	buf = append(buf, make([]mgl64.Vec3, sx*sy*sz)...)
	out := buf[start:]
	parallelFor(sx, func(j int) {
		for k := 0; k < sy; k++ {
			for l := 0; l < sz; l++ {
				out[j*sy*sz+k*sz+l] = minC.Add(mgl64.Vec3{
					float64(j) * diam,
					float64(k) * diam,
					float64(l) * diam,
				})
			}
		}
	})
	return buf
}

// wallSteps is the particle count along one wall axis. The +1 guarantees at
// least one layer even for a degenerate extent and covers both bounding
// corners within one spacing unit.
func wallSteps(extent, diam float64) int {
	return int(extent/diam) + 1
}

// parallelFor runs body for every index in [0, n) across GOMAXPROCS workers.
// Each worker owns a contiguous chunk, so bodies writing disjoint output
// slots need no locking.
func parallelFor(n int, body func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			body(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				body(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
