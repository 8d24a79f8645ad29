package storage

import "github.com/fluidlab/damsim/internal/model"

// Recorder is an engine observer that captures one Frame per sub-step.
// Every controls downsampling: 1 records each sub-step, n records every
// n-th.
type Recorder struct {
	model  *model.Model
	every  int
	count  int
	frames []Frame
}

func NewRecorder(m *model.Model, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{model: m, every: every}
}

func (r *Recorder) OnSubStep(t float64) {
	r.count++
	if r.count%r.every != 0 {
		return
	}
	r.frames = append(r.frames, Frame{
		Time:    t,
		Kinetic: r.model.KineticEnergy(),
		MaxV:    r.model.MaxSpeed(),
	})
}

func (r *Recorder) Frames() []Frame { return r.frames }
