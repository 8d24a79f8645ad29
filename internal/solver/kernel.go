package solver

import "math"

// Standard SPH smoothing kernels over support radius h. poly6 weighs
// density contributions, spikyGrad drives pressure forces and viscLap the
// viscosity Laplacian.

func poly6(r2, h float64) float64 {
	h2 := h * h
	if r2 > h2 {
		return 0
	}
	d := h2 - r2
	return 315.0 / (64.0 * math.Pi * math.Pow(h, 9)) * d * d * d
}

func spikyGrad(r, h float64) float64 {
	if r > h || r < 1e-9 {
		return 0
	}
	d := h - r
	return -45.0 / (math.Pi * math.Pow(h, 6)) * d * d
}

func viscLap(r, h float64) float64 {
	if r > h {
		return 0
	}
	return 45.0 / (math.Pi * math.Pow(h, 6)) * (h - r)
}
