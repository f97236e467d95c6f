package physics

import (
	"github.com/drapengine/drape/engine/math"
)

// Damping bleeds a fraction of the Verlet velocity every step.
const Damping float32 = 0.01

// Particle is a point mass integrated with Verlet integration. Velocity is
// implicit in the distance between Position and OldPosition.
type Particle struct {
	Position          math.Vec3
	OldPosition       math.Vec3
	Acceleration      math.Vec3
	TexCoords         math.Vec2
	AccumulatedNormal math.Vec3
	IsMovable         bool
}

// AddNormal accumulates a triangle normal; normalizing first weights every
// adjacent triangle equally regardless of its area.
func (p *Particle) AddNormal(normal math.Vec3) {
	p.AccumulatedNormal = p.AccumulatedNormal.Add(normal.Normalized())
}

func (p *Particle) ResetNormal() {
	p.AccumulatedNormal = math.NewVec3Zero()
}

// OffsetPos nudges the particle unless it is pinned.
func (p *Particle) OffsetPos(offset math.Vec3) {
	if p.IsMovable {
		p.Position = p.Position.Add(offset)
	}
}

func (p *Particle) MakeUnmovable() {
	p.IsMovable = false
}

func (p *Particle) AddForce(dir math.Vec3) {
	p.Acceleration = p.Acceleration.Add(dir)
}

// TimeStep advances the particle one Verlet step and clears the accumulated
// acceleration.
func (p *Particle) TimeStep(timestep float32) {
	if !p.IsMovable {
		return
	}
	temp := p.Position
	p.Position = p.Position.
		Add(p.Position.Sub(p.OldPosition).MulScalar(1.0 - Damping)).
		Add(p.Acceleration.MulScalar(timestep))
	p.OldPosition = temp
	p.Acceleration = math.NewVec3Zero()
}
