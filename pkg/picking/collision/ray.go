package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/tile-picker/pkg/picking/mollertrumbore"
)

type RayCastResult struct {
	T     float32
	Hit   bool
	Point mgl32.Vec3
}

// SlabInterval returns the interval of t values for which line is inside box.
//
// An axis the line is parallel to contributes no interval, but rules out any
// intersection if the line's constant coordinate lies outside the box's slab.
// Negative t values are kept since Line is unbounded in both directions.
func SlabInterval(line Line, box AABB) (tMin, tMax float32, ok bool) {
	var haveMin, haveMax bool

	for axis := X; axis <= Z; axis++ {
		if line.Direction[axis] == 0 {
			if !InInterval(line.Origin[axis], box.Min[axis], box.Max[axis]) {
				return 0, 0, false
			}
			continue
		}

		t1, _ := line.WhereAxisEq(axis, box.Min[axis])
		t2, _ := line.WhereAxisEq(axis, box.Max[axis])

		tMin, haveMin = MaxOpt(tMin, haveMin, min(t1, t2), true)
		tMax, haveMax = MinOpt(tMax, haveMax, max(t1, t2), true)
	}

	if !haveMin || !haveMax {
		// zero direction: the line is a single point, and it is inside every slab.
		return 0, 0, true
	}

	return tMin, tMax, tMin <= tMax
}

// LineIntersectsAABB determines whether line passes through box, using the slab method.
func LineIntersectsAABB(line Line, box AABB) bool {
	_, _, ok := SlabInterval(line, box)

	return ok
}

// LineIntersectsTriangle determines whether line passes through tri and where.
func LineIntersectsTriangle(line Line, tri Triangle) (r RayCastResult) {
	t, _, _, ok := mollertrumbore.Intersect(line.Origin, line.Direction, tri)
	if !ok {
		return r
	}

	r.Hit = true
	r.T = t
	r.Point = line.At(t)

	return r
}
