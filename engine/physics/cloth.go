package physics

import (
	m "math"

	"github.com/drapengine/drape/engine/math"
)

const ConstraintIterations = 30

var (
	// Gravity and WindDirection are scaled by the timestep before they are
	// applied, so the magnitudes here are per second.
	Gravity       = math.NewVec3(0.0, -2.8, 0.0)
	WindDirection = math.NewVec3(10.5, 0.0, 0.2)
)

// Cloth is a rectangular grid of Verlet particles connected by structural,
// shear and bend constraints. The grid spans (0,0,0) to (width,-height,0)
// with the top row pinned at both ends.
type Cloth struct {
	particles   []Particle
	constraints []Constraint

	numParticlesWidth  int
	numParticlesHeight int

	// mesh streams rebuilt by FillVertices, two triangles per grid cell
	positions []math.Vec3
	normals   []math.Vec3
	texCoords []math.Vec2
}

// NewCloth builds the particle grid and its constraint network.
func NewCloth(width, height float32, numParticlesWidth, numParticlesHeight int) *Cloth {
	c := &Cloth{
		particles:          make([]Particle, numParticlesWidth*numParticlesHeight),
		numParticlesWidth:  numParticlesWidth,
		numParticlesHeight: numParticlesHeight,
	}

	for x := 0; x < numParticlesWidth; x++ {
		for y := 0; y < numParticlesHeight; y++ {
			pos := math.NewVec3(
				width*(float32(x)/float32(numParticlesWidth)),
				-height*(float32(y)/float32(numParticlesHeight)),
				0.0,
			)
			c.particles[c.particleIdx(x, y)] = Particle{
				Position:    pos,
				OldPosition: pos,
				IsMovable:   true,
				TexCoords:   math.NewVec2(pos.X/width, -pos.Y/height),
			}
		}
	}

	// structural and shear constraints between immediate neighbors
	for x := 0; x < numParticlesWidth; x++ {
		for y := 0; y < numParticlesHeight; y++ {
			if x < numParticlesWidth-1 {
				c.makeConstraint(c.particleIdx(x, y), c.particleIdx(x+1, y))
			}
			if y < numParticlesHeight-1 {
				c.makeConstraint(c.particleIdx(x, y), c.particleIdx(x, y+1))
			}
			if x < numParticlesWidth-1 && y < numParticlesHeight-1 {
				c.makeConstraint(c.particleIdx(x, y), c.particleIdx(x+1, y+1))
				c.makeConstraint(c.particleIdx(x+1, y), c.particleIdx(x, y+1))
			}
		}
	}

	// bend constraints between secondary neighbors
	for x := 0; x < numParticlesWidth; x++ {
		for y := 0; y < numParticlesHeight; y++ {
			if x < numParticlesWidth-2 {
				c.makeConstraint(c.particleIdx(x, y), c.particleIdx(x+2, y))
			}
			if y < numParticlesHeight-2 {
				c.makeConstraint(c.particleIdx(x, y), c.particleIdx(x, y+2))
			}
			if x < numParticlesWidth-2 && y < numParticlesHeight-2 {
				c.makeConstraint(c.particleIdx(x, y), c.particleIdx(x+2, y+2))
				c.makeConstraint(c.particleIdx(x+2, y), c.particleIdx(x, y+2))
			}
		}
	}

	// pin three particles at each top corner, the left trio nudged inward
	// so the cloth hangs with a fold
	for i := 0; i < 3; i++ {
		c.particles[c.particleIdx(i, 0)].OffsetPos(math.NewVec3(0.5, 0.0, 0.0))
		c.particles[c.particleIdx(i, 0)].MakeUnmovable()
		c.particles[c.particleIdx(i, 0)].OffsetPos(math.NewVec3(-0.5, 0.0, 0.0))
		c.particles[c.particleIdx(numParticlesWidth-1-i, 0)].MakeUnmovable()
	}

	c.UpdateNormals()
	c.FillVertices()
	return c
}

func (c *Cloth) particleIdx(x, y int) int {
	return y*c.numParticlesWidth + x
}

func (c *Cloth) makeConstraint(p1, p2 int) {
	rest := c.particles[p1].Position.Distance(c.particles[p2].Position)
	c.constraints = append(c.constraints, NewConstraint(p1, p2, rest))
}

func (c *Cloth) NumParticlesWidth() int  { return c.numParticlesWidth }
func (c *Cloth) NumParticlesHeight() int { return c.numParticlesHeight }

// Particle returns the particle at grid position (x, y).
func (c *Cloth) Particle(x, y int) *Particle {
	return &c.particles[c.particleIdx(x, y)]
}

// Update advances the cloth one fixed step: forces first, then constraint
// relaxation and Verlet integration.
func (c *Cloth) Update(timestep float32) {
	c.AddForce(Gravity.MulScalar(timestep))
	c.AddWindForce(WindDirection.MulScalar(timestep))
	c.TimeStep(timestep)
}

// AddForce applies a uniform force to every particle.
func (c *Cloth) AddForce(force math.Vec3) {
	for i := range c.particles {
		c.particles[i].AddForce(force)
	}
}

// AddWindForce applies the wind direction per triangle, scaled by how much
// each triangle faces the wind.
func (c *Cloth) AddWindForce(dir math.Vec3) {
	for x := 0; x < c.numParticlesWidth-1; x++ {
		for y := 0; y < c.numParticlesHeight-1; y++ {
			c.addWindForcesForTriangle(
				c.particleIdx(x+1, y), c.particleIdx(x, y), c.particleIdx(x, y+1), dir)
			c.addWindForcesForTriangle(
				c.particleIdx(x+1, y+1), c.particleIdx(x+1, y), c.particleIdx(x, y+1), dir)
		}
	}
}

func (c *Cloth) addWindForcesForTriangle(p1, p2, p3 int, dir math.Vec3) {
	normal := triangleNormal(&c.particles[p1], &c.particles[p2], &c.particles[p3])
	force := normal.MulScalar(normal.Normalized().Dot(dir))
	c.particles[p1].AddForce(force)
	c.particles[p2].AddForce(force)
	c.particles[p3].AddForce(force)
}

// triangleNormal returns the unnormalized cross product so the magnitude
// carries the triangle area into the wind force.
func triangleNormal(p1, p2, p3 *Particle) math.Vec3 {
	v1 := p2.Position.Sub(p1.Position)
	v2 := p3.Position.Sub(p1.Position)
	return v1.Cross(v2)
}

// TimeStep relaxes all constraints and then integrates each particle.
func (c *Cloth) TimeStep(timestep float32) {
	for i := 0; i < ConstraintIterations; i++ {
		for j := range c.constraints {
			c.constraints[j].Satisfy(c.particles)
		}
	}
	for i := range c.particles {
		c.particles[i].TimeStep(timestep)
	}
}

// UpdateNormals recomputes the smoothed per-particle normals from the two
// triangles of every grid cell.
func (c *Cloth) UpdateNormals() {
	for i := range c.particles {
		c.particles[i].ResetNormal()
	}

	for x := 0; x < c.numParticlesWidth-1; x++ {
		for y := 0; y < c.numParticlesHeight-1; y++ {
			normal := triangleNormal(
				&c.particles[c.particleIdx(x+1, y)],
				&c.particles[c.particleIdx(x, y)],
				&c.particles[c.particleIdx(x, y+1)],
			)
			c.particles[c.particleIdx(x+1, y)].AddNormal(normal)
			c.particles[c.particleIdx(x, y)].AddNormal(normal)
			c.particles[c.particleIdx(x, y+1)].AddNormal(normal)

			normal = triangleNormal(
				&c.particles[c.particleIdx(x+1, y+1)],
				&c.particles[c.particleIdx(x+1, y)],
				&c.particles[c.particleIdx(x, y+1)],
			)
			c.particles[c.particleIdx(x+1, y+1)].AddNormal(normal)
			c.particles[c.particleIdx(x+1, y)].AddNormal(normal)
			c.particles[c.particleIdx(x, y+1)].AddNormal(normal)
		}
	}
}

// FillVertices rebuilds the non-indexed triangle streams, two triangles per
// cell in a fixed winding.
func (c *Cloth) FillVertices() {
	c.positions = c.positions[:0]
	c.normals = c.normals[:0]
	c.texCoords = c.texCoords[:0]

	for x := 0; x < c.numParticlesWidth-1; x++ {
		for y := 0; y < c.numParticlesHeight-1; y++ {
			corners := [6]*Particle{
				&c.particles[c.particleIdx(x+1, y)],
				&c.particles[c.particleIdx(x, y)],
				&c.particles[c.particleIdx(x, y+1)],

				&c.particles[c.particleIdx(x+1, y+1)],
				&c.particles[c.particleIdx(x+1, y)],
				&c.particles[c.particleIdx(x, y+1)],
			}
			for _, p := range corners {
				c.positions = append(c.positions, p.Position)
				c.normals = append(c.normals, p.AccumulatedNormal.Normalized())
				c.texCoords = append(c.texCoords, p.TexCoords)
			}
		}
	}
}

// Positions returns the current triangle-list position stream.
func (c *Cloth) Positions() []math.Vec3 { return c.positions }

// Normals returns the current triangle-list normal stream.
func (c *Cloth) Normals() []math.Vec3 { return c.normals }

// TexCoords returns the static triangle-list texture coordinate stream.
func (c *Cloth) TexCoords() []math.Vec2 { return c.texCoords }

// VertexCount reports the number of vertices in the triangle streams.
func (c *Cloth) VertexCount() int { return len(c.positions) }

// Intersects tests the ray against every cloth triangle and returns the grid
// coordinates of the nearest hit triangle's leading particle.
func (c *Cloth) Intersects(ray math.Ray) (x, y int, hit bool) {
	closest := float32(m.MaxFloat32)
	for cx := 0; cx < c.numParticlesWidth-1; cx++ {
		for cy := 0; cy < c.numParticlesHeight-1; cy++ {
			tris := [2][3]int{
				{c.particleIdx(cx+1, cy), c.particleIdx(cx, cy), c.particleIdx(cx, cy+1)},
				{c.particleIdx(cx+1, cy+1), c.particleIdx(cx+1, cy), c.particleIdx(cx, cy+1)},
			}
			for _, tri := range tris {
				dist, ok := ray.IntersectTriangle(
					c.particles[tri[0]].Position,
					c.particles[tri[1]].Position,
					c.particles[tri[2]].Position,
				)
				if ok && dist < closest {
					closest = dist
					x, y, hit = cx, cy, true
				}
			}
		}
	}
	return x, y, hit
}

// MouseForce drags the particle at (x, y) with a screen-space delta. Out of
// range coordinates are ignored so callers can fan the force out to
// neighbors without bounds checks.
func (c *Cloth) MouseForce(x, y int, dx, dy float32) {
	if x < 0 || x >= c.numParticlesWidth || y < 0 || y >= c.numParticlesHeight {
		return
	}
	c.particles[c.particleIdx(x, y)].AddForce(math.NewVec3(dx, dy, 0.0))
}
