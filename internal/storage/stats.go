package storage

// RunStats are aggregate statistics over a recorded run's frames.
type RunStats struct {
	MeanKinetic float64
	PeakKinetic float64
	PeakTime    float64
	FinalMaxV   float64
	// SettleTime is the earliest time after which max particle speed stays
	// below the threshold for the rest of the run. Negative if it never
	// settles.
	SettleTime float64
}

// ComputeStats reduces frames to summary statistics. A settled run is one
// whose fluid has come to rest: speeds stay under settleThreshold.
func ComputeStats(frames []Frame, settleThreshold float64) RunStats {
	stats := RunStats{SettleTime: -1}
	if len(frames) == 0 {
		return stats
	}

	total := 0.0
	for _, f := range frames {
		total += f.Kinetic
		if f.Kinetic > stats.PeakKinetic {
			stats.PeakKinetic = f.Kinetic
			stats.PeakTime = f.Time
		}
	}
	stats.MeanKinetic = total / float64(len(frames))
	stats.FinalMaxV = frames[len(frames)-1].MaxV

	// Scan backwards for the last violation; everything after it is settled.
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].MaxV >= settleThreshold {
			if i < len(frames)-1 {
				stats.SettleTime = frames[i+1].Time
			}
			return stats
		}
	}
	stats.SettleTime = frames[0].Time
	return stats
}
