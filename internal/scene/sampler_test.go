package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSampleBlockLayout(t *testing.T) {
	origin := mgl64.Vec3{1, 2, 3}
	nx, ny, nz := 3, 4, 5
	diam := 0.5

	out := SampleBlock(origin, nx, ny, nz, diam)

	if len(out) != nx*ny*nz {
		t.Fatalf("expected %d particles, got %d", nx*ny*nz, len(out))
	}

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				got := out[i*ny*nz+j*nz+k]
				want := origin.Add(mgl64.Vec3{
					float64(i) * diam,
					float64(j) * diam,
					float64(k) * diam,
				})
				if got != want {
					t.Fatalf("particle (%d,%d,%d): got %v, want %v", i, j, k, got, want)
				}
			}
		}
	}
}

func TestSampleBlockNoDuplicates(t *testing.T) {
	out := SampleBlock(mgl64.Vec3{}, 4, 4, 4, 0.25)

	seen := make(map[mgl64.Vec3]bool, len(out))
	for _, p := range out {
		if seen[p] {
			t.Fatalf("duplicate position %v", p)
		}
		seen[p] = true
	}
}

func TestAppendWallCounts(t *testing.T) {
	diam := 0.5
	tests := []struct {
		name       string
		minC, maxC mgl64.Vec3
		want       int
	}{
		{"flat floor", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 1}, 5 * 1 * 3},
		{"side wall", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1.5, 1}, 1 * 4 * 3},
		{"degenerate point", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, 1},
		{"solid box", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, 3 * 3 * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AppendWall(nil, tt.minC, tt.maxC, diam)
			if len(out) != tt.want {
				t.Errorf("expected %d particles, got %d", tt.want, len(out))
			}
		})
	}
}

func TestAppendWallPureAppend(t *testing.T) {
	prior := []mgl64.Vec3{{9, 9, 9}, {8, 8, 8}}
	buf := make([]mgl64.Vec3, len(prior))
	copy(buf, prior)

	out := AppendWall(buf, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 1}, 0.5)

	if len(out) != len(prior)+3*1*3 {
		t.Fatalf("expected %d particles, got %d", len(prior)+9, len(out))
	}
	for i, p := range prior {
		if out[i] != p {
			t.Errorf("prior entry %d changed: got %v, want %v", i, out[i], p)
		}
	}
	if out[len(prior)] != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("first appended entry: got %v, want origin", out[len(prior)])
	}
}

func TestAppendWallCoversCorners(t *testing.T) {
	diam := 0.5
	minC := mgl64.Vec3{-1, 0, -0.75}
	maxC := mgl64.Vec3{1.2, 0, 0.75}

	out := AppendWall(nil, minC, maxC, diam)

	if out[0] != minC {
		t.Errorf("first particle: got %v, want %v", out[0], minC)
	}
	last := out[len(out)-1]
	d := maxC.Sub(last)
	for axis := 0; axis < 3; axis++ {
		if d[axis] < 0 || d[axis] >= diam {
			t.Errorf("last particle axis %d is %v short of max corner, want [0,%v)", axis, d[axis], diam)
		}
	}
}

func TestAppendWallIndexLayout(t *testing.T) {
	diam := 0.5
	minC := mgl64.Vec3{0, 0, 0}
	maxC := mgl64.Vec3{1, 0.5, 1.5}
	sx, sy, sz := 3, 2, 4

	out := AppendWall(nil, minC, maxC, diam)

	if len(out) != sx*sy*sz {
		t.Fatalf("expected %d particles, got %d", sx*sy*sz, len(out))
	}
	for j := 0; j < sx; j++ {
		for k := 0; k < sy; k++ {
			for l := 0; l < sz; l++ {
				got := out[j*sy*sz+k*sz+l]
				want := minC.Add(mgl64.Vec3{
					float64(j) * diam,
					float64(k) * diam,
					float64(l) * diam,
				})
				if got != want {
					t.Fatalf("particle (%d,%d,%d): got %v, want %v", j, k, l, got, want)
				}
			}
		}
	}
}
