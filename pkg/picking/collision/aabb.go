package collision

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// NewAABB returns the box spanned by two opposite corners, in any order.
func NewAABB(p1, p2 mgl32.Vec3) AABB {
	var b AABB
	for i := 0; i < 3; i++ {
		b.Min[i] = min(p1[i], p2[i])
		b.Max[i] = max(p1[i], p2[i])
	}

	return b
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether inner lies fully inside b on all three axes.
func (b AABB) Contains(inner AABB) bool {
	return b.ContainsXY(inner) &&
		b.Min[2] <= inner.Min[2] && inner.Max[2] <= b.Max[2]
}

// ContainsXY reports whether inner's X and Y extents lie fully inside b's.
// Z is ignored: the picking index only partitions the horizontal plane.
func (b AABB) ContainsXY(inner AABB) bool {
	if b.Min[0] > inner.Min[0] || b.Min[1] > inner.Min[1] {
		return false
	}
	if b.Max[0] < inner.Max[0] || b.Max[1] < inner.Max[1] {
		return false
	}

	return true
}

// ExpandZ grows b's Z range to cover other's Z range. X and Y are untouched.
func (b *AABB) ExpandZ(other AABB) {
	b.Min[2] = min(b.Min[2], other.Min[2])
	b.Max[2] = max(b.Max[2], other.Max[2])
}

// Quadrants splits b into four equal boxes through its XY center.
// Every quadrant keeps b's full Z range. The order is
// (+x,+y), (-x,+y), (-x,-y), (+x,-y).
func (b AABB) Quadrants() [4]AABB {
	c := b.Center()

	return [4]AABB{
		{Min: mgl32.Vec3{c[0], c[1], b.Min[2]}, Max: mgl32.Vec3{b.Max[0], b.Max[1], b.Max[2]}},
		{Min: mgl32.Vec3{b.Min[0], c[1], b.Min[2]}, Max: mgl32.Vec3{c[0], b.Max[1], b.Max[2]}},
		{Min: mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}, Max: mgl32.Vec3{c[0], c[1], b.Max[2]}},
		{Min: mgl32.Vec3{c[0], b.Min[1], b.Min[2]}, Max: mgl32.Vec3{b.Max[0], c[1], b.Max[2]}},
	}
}

// AABBFromTriangles returns the smallest box containing every vertex of tris.
// The zero box is returned for no triangles.
func AABBFromTriangles(tris ...Triangle) AABB {
	if len(tris) == 0 {
		return AABB{}
	}

	lo := mgl32.Vec3{mgl32.MaxValue, mgl32.MaxValue, mgl32.MaxValue}
	hi := mgl32.Vec3{-mgl32.MaxValue, -mgl32.MaxValue, -mgl32.MaxValue}
	for _, tri := range tris {
		for _, vertex := range tri {
			for i, f := range vertex {
				if f < lo[i] {
					lo[i] = f
				}
				if f > hi[i] {
					hi[i] = f
				}
			}
		}
	}

	return AABB{Min: lo, Max: hi}
}

// BoxFromTriangles is the bounding box of one terrain quad's two triangles.
func BoxFromTriangles(tri1, tri2 Triangle) AABB {
	return AABBFromTriangles(tri1, tri2)
}
