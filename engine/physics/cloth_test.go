package physics

import (
	"testing"

	"github.com/drapengine/drape/engine/math"
)

func newTestCloth() *Cloth {
	return NewCloth(10.0, 14.0, 22, 26)
}

func TestClothGridLayout(t *testing.T) {
	cloth := newTestCloth()

	if got := cloth.NumParticlesWidth(); got != 22 {
		t.Errorf("width = %d, want 22", got)
	}
	if got := cloth.NumParticlesHeight(); got != 26 {
		t.Errorf("height = %d, want 26", got)
	}

	// (0,0) is nudged by the pinning pass, so sample an interior column
	first := cloth.Particle(3, 0)
	wantFirstX := 10.0 * 3.0 / 22.0
	if !first.Position.Compare(math.NewVec3(float32(wantFirstX), 0, 0), 1e-4) {
		t.Errorf("particle (3,0) at %+v", first.Position)
	}

	// grid spans (0,0,0) to (width,-height,0) exclusive of the far edge
	last := cloth.Particle(21, 25)
	wantX := 10.0 * 21.0 / 22.0
	wantY := -14.0 * 25.0 / 26.0
	if !last.Position.Compare(math.NewVec3(float32(wantX), float32(wantY), 0), 1e-4) {
		t.Errorf("particle (21,25) at %+v", last.Position)
	}
}

func TestClothTexCoords(t *testing.T) {
	cloth := newTestCloth()

	tc := cloth.Particle(0, 0).TexCoords
	if !tc.Compare(math.NewVec2Zero(), 1e-5) {
		t.Errorf("(0,0) tex coords = %+v, want origin", tc)
	}

	tc = cloth.Particle(11, 13).TexCoords
	if tc.X < 0 || tc.X > 1 || tc.Y < 0 || tc.Y > 1 {
		t.Errorf("tex coords out of range: %+v", tc)
	}
	if tc.Y <= 0 {
		t.Errorf("tex coord Y = %v, want positive for a downward hanging row", tc.Y)
	}
}

func TestClothPinning(t *testing.T) {
	cloth := newTestCloth()

	for i := 0; i < 3; i++ {
		if cloth.Particle(i, 0).IsMovable {
			t.Errorf("top-left particle %d should be pinned", i)
		}
		if cloth.Particle(21-i, 0).IsMovable {
			t.Errorf("top-right particle %d should be pinned", 21-i)
		}
	}
	if !cloth.Particle(3, 0).IsMovable {
		t.Error("particle (3,0) should be free")
	}

	// left trio gets a 0.5 inward nudge before pinning
	want := float32(0.5)
	if got := cloth.Particle(0, 0).Position.X; got != want {
		t.Errorf("pinned left corner X = %v, want %v", got, want)
	}
	// right trio pins in place
	wantRight := 10.0 * 21.0 / 22.0
	if got := cloth.Particle(21, 0).Position.X; kabs32(got-float32(wantRight)) > 1e-4 {
		t.Errorf("pinned right corner X = %v, want %v", got, wantRight)
	}
}

func TestClothVertexStreamSize(t *testing.T) {
	cloth := newTestCloth()

	// two triangles per cell, three vertices each
	want := (22 - 1) * (26 - 1) * 6
	if got := cloth.VertexCount(); got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if len(cloth.Normals()) != want || len(cloth.TexCoords()) != want {
		t.Error("streams must have matching lengths")
	}
}

func TestClothFlatNormals(t *testing.T) {
	cloth := newTestCloth()

	// a flat cloth in the XY plane has all normals along Z
	for i, n := range cloth.Normals() {
		if kabs32(kabs32(n.Z)-1) > 1e-4 {
			t.Fatalf("normal %d = %+v, want aligned with Z axis", i, n)
		}
	}
}

func TestClothFallsUnderGravity(t *testing.T) {
	cloth := newTestCloth()

	before := cloth.Particle(11, 13).Position
	for i := 0; i < 60; i++ {
		cloth.Update(TimeStep)
	}
	after := cloth.Particle(11, 13).Position

	if after == before {
		t.Error("free particle did not move")
	}
	// wind pushes toward +X and +Z
	if after.Z <= before.Z {
		t.Errorf("wind did not push particle forward: before %+v after %+v", before, after)
	}

	// pinned particles must not move at all
	pinned := cloth.Particle(21, 0).Position
	cloth.Update(TimeStep)
	if cloth.Particle(21, 0).Position != pinned {
		t.Error("pinned particle moved")
	}
}

func TestConstraintSatisfyHalfCorrection(t *testing.T) {
	particles := []Particle{
		{Position: math.NewVec3(0, 0, 0), IsMovable: true},
		{Position: math.NewVec3(2, 0, 0), IsMovable: true},
	}
	c := NewConstraint(0, 1, 1.0)
	c.Satisfy(particles)

	// a stretched constraint pulls both ends toward the midpoint equally
	if kabs32(particles[0].Position.X-0.5) > 1e-5 {
		t.Errorf("p1.X = %v, want 0.5", particles[0].Position.X)
	}
	if kabs32(particles[1].Position.X-1.5) > 1e-5 {
		t.Errorf("p2.X = %v, want 1.5", particles[1].Position.X)
	}
}

func TestConstraintSatisfyPinnedEnd(t *testing.T) {
	particles := []Particle{
		{Position: math.NewVec3(0, 0, 0), IsMovable: false},
		{Position: math.NewVec3(2, 0, 0), IsMovable: true},
	}
	c := NewConstraint(0, 1, 1.0)
	c.Satisfy(particles)

	if particles[0].Position.X != 0 {
		t.Error("pinned end moved")
	}
	if kabs32(particles[1].Position.X-1.5) > 1e-5 {
		t.Errorf("free end X = %v, want 1.5", particles[1].Position.X)
	}
}

func TestParticleVerletDamping(t *testing.T) {
	p := Particle{
		Position:    math.NewVec3(1, 0, 0),
		OldPosition: math.NewVec3(0, 0, 0),
		IsMovable:   true,
	}
	p.TimeStep(TimeStep)

	// velocity of 1 carries forward scaled by (1 - damping)
	if kabs32(p.Position.X-1.99) > 1e-5 {
		t.Errorf("position X = %v, want 1.99", p.Position.X)
	}
	if p.OldPosition.X != 1 {
		t.Errorf("old position X = %v, want 1", p.OldPosition.X)
	}
	if p.Acceleration != math.NewVec3Zero() {
		t.Error("acceleration not cleared after step")
	}
}

func TestClothIntersects(t *testing.T) {
	cloth := newTestCloth()

	// shoot straight at the middle of the flat cloth
	target := cloth.Particle(11, 13).Position
	ray := math.Ray{
		Origin:    math.NewVec3(target.X, target.Y, 10),
		Direction: math.NewVec3(0, 0, -1),
	}
	x, y, hit := cloth.Intersects(ray)
	if !hit {
		t.Fatal("expected hit on cloth")
	}
	if x < 9 || x > 12 || y < 11 || y > 14 {
		t.Errorf("hit cell (%d,%d), want near (11,13)", x, y)
	}

	miss := math.Ray{
		Origin:    math.NewVec3(100, 100, 10),
		Direction: math.NewVec3(0, 0, -1),
	}
	if _, _, hit := cloth.Intersects(miss); hit {
		t.Error("expected miss far outside the cloth")
	}
}

func TestClothMouseForce(t *testing.T) {
	cloth := newTestCloth()

	cloth.MouseForce(11, 13, 5, -3)
	acc := cloth.Particle(11, 13).Acceleration
	if !acc.Compare(math.NewVec3(5, -3, 0), 1e-5) {
		t.Errorf("acceleration = %+v", acc)
	}

	// out of range coordinates are ignored
	cloth.MouseForce(-1, -1, 5, 5)
	cloth.MouseForce(22, 26, 5, 5)
}

func TestSimulationFixedStep(t *testing.T) {
	sim := NewSimulation(newTestCloth())

	// less than one step accumulates without running
	if sim.Update(float64(TimeStep) / 4) {
		t.Error("quarter step should not advance the simulation")
	}
	// topping up past the threshold runs exactly one step
	if !sim.Update(float64(TimeStep)) {
		t.Error("accumulated time should advance the simulation")
	}
}

func kabs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
