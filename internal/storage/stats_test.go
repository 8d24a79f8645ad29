package storage

import (
	"math"
	"testing"
)

func TestComputeStats(t *testing.T) {
	frames := []Frame{
		{Time: 0.1, Kinetic: 1.0, MaxV: 2.0},
		{Time: 0.2, Kinetic: 4.0, MaxV: 3.0},
		{Time: 0.3, Kinetic: 2.0, MaxV: 0.5},
		{Time: 0.4, Kinetic: 1.0, MaxV: 0.2},
	}

	stats := ComputeStats(frames, 1.0)

	if math.Abs(stats.MeanKinetic-2.0) > 1e-12 {
		t.Errorf("mean kinetic: got %v, want 2.0", stats.MeanKinetic)
	}
	if stats.PeakKinetic != 4.0 || stats.PeakTime != 0.2 {
		t.Errorf("peak: got %v at %v, want 4.0 at 0.2", stats.PeakKinetic, stats.PeakTime)
	}
	if stats.FinalMaxV != 0.2 {
		t.Errorf("final max speed: got %v, want 0.2", stats.FinalMaxV)
	}
	if stats.SettleTime != 0.3 {
		t.Errorf("settle time: got %v, want 0.3", stats.SettleTime)
	}
}

func TestComputeStatsNeverSettles(t *testing.T) {
	frames := []Frame{
		{Time: 0.1, Kinetic: 1.0, MaxV: 2.0},
		{Time: 0.2, Kinetic: 1.0, MaxV: 2.0},
	}

	stats := ComputeStats(frames, 1.0)
	if stats.SettleTime >= 0 {
		t.Errorf("settle time: got %v, want negative", stats.SettleTime)
	}
}

func TestComputeStatsSettledFromStart(t *testing.T) {
	frames := []Frame{
		{Time: 0.1, Kinetic: 0.1, MaxV: 0.1},
		{Time: 0.2, Kinetic: 0.05, MaxV: 0.05},
	}

	stats := ComputeStats(frames, 1.0)
	if stats.SettleTime != 0.1 {
		t.Errorf("settle time: got %v, want 0.1", stats.SettleTime)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, 1.0)
	if stats.MeanKinetic != 0 || stats.PeakKinetic != 0 {
		t.Errorf("empty run must produce zero stats: %+v", stats)
	}
	if stats.SettleTime >= 0 {
		t.Errorf("empty run settle time: got %v, want negative", stats.SettleTime)
	}
}
