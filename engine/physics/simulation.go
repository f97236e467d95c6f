package physics

// TimeStep is the fixed simulation step. The simulation always advances in
// whole steps so behavior is independent of the render frame rate.
const TimeStep float32 = 1.0 / 120.0

// Simulation drives a Cloth with a fixed-step accumulator.
type Simulation struct {
	accumulator float32
	cloth       *Cloth
}

func NewSimulation(cloth *Cloth) *Simulation {
	return &Simulation{cloth: cloth}
}

func (s *Simulation) Cloth() *Cloth {
	return s.cloth
}

// Update consumes the frame time and advances the cloth zero or more fixed
// steps. It reports whether any step ran, meaning the vertex streams were
// rebuilt and need re-uploading.
func (s *Simulation) Update(frameTime float64) bool {
	updated := false

	s.accumulator += float32(frameTime)
	for s.accumulator >= TimeStep {
		s.accumulator -= TimeStep
		s.cloth.Update(TimeStep)
		updated = true
	}

	if updated {
		s.cloth.UpdateNormals()
		s.cloth.FillVertices()
	}
	return updated
}
