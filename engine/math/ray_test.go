package math

import (
	"testing"
)

func TestRayIntersectTriangle(t *testing.T) {
	v0 := NewVec3(-1, -1, 0)
	v1 := NewVec3(1, -1, 0)
	v2 := NewVec3(0, 1, 0)

	ray := Ray{Origin: NewVec3(0, 0, 5), Direction: NewVec3(0, 0, -1)}
	dist, hit := ray.IntersectTriangle(v0, v1, v2)
	if !hit {
		t.Fatal("expected hit through triangle center")
	}
	if kabs(dist-5) > tolerance {
		t.Errorf("distance = %v, want 5", dist)
	}

	miss := Ray{Origin: NewVec3(5, 5, 5), Direction: NewVec3(0, 0, -1)}
	if _, hit := miss.IntersectTriangle(v0, v1, v2); hit {
		t.Error("expected miss outside triangle")
	}

	parallel := Ray{Origin: NewVec3(0, 0, 5), Direction: NewVec3(1, 0, 0)}
	if _, hit := parallel.IntersectTriangle(v0, v1, v2); hit {
		t.Error("expected miss for parallel ray")
	}

	behind := Ray{Origin: NewVec3(0, 0, -5), Direction: NewVec3(0, 0, -1)}
	if _, hit := behind.IntersectTriangle(v0, v1, v2); hit {
		t.Error("expected miss for triangle behind origin")
	}
}

func TestNewRayUnprojectCenter(t *testing.T) {
	width, height := float32(800), float32(600)
	position := NewVec3(0, 0, 10)

	proj := NewMat4Perspective(DegToRad(45), width/height, 0.1, 100)
	view := NewMat4LookAt(position, NewVec3Zero(), NewVec3Up())
	viewProj := NewMat4DepthCorrection().Mul(proj).Mul(view)

	ray := NewRay(width, height, NewVec2(width/2, height/2), viewProj.Inverse())

	// the center-of-screen ray points straight down the view axis
	if !ray.Direction.Compare(NewVec3(0, 0, -1), 1e-3) {
		t.Errorf("direction = %+v, want (0,0,-1)", ray.Direction)
	}
	if kabs(ray.Origin.X) > 1e-3 || kabs(ray.Origin.Y) > 1e-3 {
		t.Errorf("origin = %+v, want on the view axis", ray.Origin)
	}
}

func TestRayAt(t *testing.T) {
	ray := Ray{Origin: NewVec3(1, 0, 0), Direction: NewVec3(0, 1, 0)}
	if got := ray.At(3); !got.Compare(NewVec3(1, 3, 0), tolerance) {
		t.Errorf("At(3) = %+v", got)
	}
}
