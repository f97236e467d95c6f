package physics

// Constraint keeps two particles at their rest distance. Satisfying moves
// each endpoint half of the correction so pinned particles absorb the whole
// error on their side.
type Constraint struct {
	P1           int
	P2           int
	RestDistance float32
}

func NewConstraint(p1, p2 int, restDistance float32) Constraint {
	return Constraint{P1: p1, P2: p2, RestDistance: restDistance}
}

func (c *Constraint) Satisfy(particles []Particle) {
	p1ToP2 := particles[c.P2].Position.Sub(particles[c.P1].Position)
	currentDistance := p1ToP2.Length()
	if currentDistance == 0 {
		return
	}
	correctionHalf := p1ToP2.MulScalar((1.0 - c.RestDistance/currentDistance) * 0.5)
	particles[c.P1].OffsetPos(correctionHalf)
	particles[c.P2].OffsetPos(correctionHalf.Negate())
}
