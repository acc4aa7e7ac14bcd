package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

// Kind identifies what a Target represents.
type Kind uint8

const (
	KindGround Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	}

	return "unknown"
}

// Target is something the mouse can point at.
// The set of implementations is closed; Ground is currently the only one.
type Target interface {
	Kind() Kind
	BoundingBox() collision.AABB
	// Intersects returns where line strikes the target's geometry, if it does.
	Intersects(line collision.Line) (Hit, bool)

	target()
}

// Hit is a picked Target and the world-space point where it was struck.
type Hit struct {
	Target Target
	At     mgl32.Vec3
	// T is the line parameter of At.
	T float32
}

// Ground is one terrain quad, split along its diagonal into two triangles.
type Ground struct {
	Box        collision.AABB
	Tri1, Tri2 collision.Triangle
}

// NewGround creates the target for a terrain quad, split as Quad.Triangles does.
func NewGround(q collision.Quad) *Ground {
	tri1, tri2 := q.Triangles()

	return &Ground{
		Box:  collision.BoxFromTriangles(tri1, tri2),
		Tri1: tri1,
		Tri2: tri2,
	}
}

func (g *Ground) Kind() Kind { return KindGround }

func (g *Ground) BoundingBox() collision.AABB { return g.Box }

// Intersects tests both triangles. If the line crosses both (on the shared
// diagonal, or because the quad is not planar) the hit with the smaller t wins.
func (g *Ground) Intersects(line collision.Line) (Hit, bool) {
	r1 := collision.LineIntersectsTriangle(line, g.Tri1)
	r2 := collision.LineIntersectsTriangle(line, g.Tri2)

	r := r1
	if !r1.Hit || (r2.Hit && r2.T < r1.T) {
		r = r2
	}

	if !r.Hit {
		return Hit{}, false
	}

	return Hit{Target: g, At: r.Point, T: r.T}, true
}

func (g *Ground) target() {}
