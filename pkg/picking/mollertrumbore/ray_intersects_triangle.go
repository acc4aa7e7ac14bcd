package mollertrumbore

import "github.com/go-gl/mathgl/mgl32"

// Epsilon is the determinant magnitude below which a line is treated as parallel to the triangle's plane.
const Epsilon = float32(0.000001)

// Intersect runs https://en.wikipedia.org/wiki/M%C3%B6ller%E2%80%93Trumbore_intersection_algorithm
// for the line origin + t*direction against inTriangle.
//
// Barycentric bounds are closed, so edges and vertices count as hits. t is not
// restricted to be positive; callers that want half-line semantics must check it.
func Intersect(origin, direction mgl32.Vec3, inTriangle [3]mgl32.Vec3) (t, u, v float32, ok bool) {
	vertex0 := inTriangle[0]
	vertex1 := inTriangle[1]
	vertex2 := inTriangle[2]

	var (
		edge1, edge2, h, s, q mgl32.Vec3
		a, f                  float32
	)

	edge1 = vertex1.Sub(vertex0)
	edge2 = vertex2.Sub(vertex0)
	h = direction.Cross(edge2)
	a = edge1.Dot(h)

	if a > -Epsilon && a < Epsilon {
		return 0, 0, 0, false // parallel to the triangle's plane
	}

	f = 1.0 / a
	s = origin.Sub(vertex0)
	u = f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q = s.Cross(edge1)
	v = f * direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)

	return t, u, v, true
}
