package math

// NewRay builds a world-space picking ray for the pixel position by
// unprojecting the near and far clip planes through the inverse
// view-projection matrix.
func NewRay(width, height float32, pos Vec2, invViewProj Mat4) Ray {
	ndc := ScreenToClip(width, height, pos)

	near := invViewProj.MulVec4(NewVec4(ndc.X, ndc.Y, -1.0, 1.0))
	far := invViewProj.MulVec4(NewVec4(ndc.X, ndc.Y, 1.0, 1.0))

	nearPoint := near.MulScalar(1.0 / near.W).ToVec3()
	farPoint := far.MulScalar(1.0 / far.W).ToVec3()

	return Ray{
		Origin:    nearPoint,
		Direction: farPoint.Sub(nearPoint).Normalized(),
	}
}

// IntersectTriangle performs a Moeller-Trumbore intersection test against a
// single triangle. It reports the distance along the ray when hit is true.
func (r Ray) IntersectTriangle(v0, v1, v2 Vec3) (distance float32, hit bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, false
	}

	invDet := 1.0 / det
	tv := r.Origin.Sub(v0)
	u := tv.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := tv.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t <= epsilon {
		return 0, false
	}
	return t, true
}

// At returns the point along the ray at the given distance.
func (r Ray) At(distance float32) Vec3 {
	return r.Origin.Add(r.Direction.MulScalar(distance))
}
