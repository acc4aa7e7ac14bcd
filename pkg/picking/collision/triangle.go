package collision

import "github.com/go-gl/mathgl/mgl32"

// Triangle is three points in world space. Winding order is not normalized.
type Triangle [3]mgl32.Vec3

// Quad is a terrain cell's four corners in order around its edge.
// Either winding works; only the diagonal used by Triangles depends on the order.
type Quad [4]mgl32.Vec3

// Triangles splits q along its q[1]-q[3] diagonal.
func (q Quad) Triangles() (Triangle, Triangle) {
	return Triangle{q[0], q[1], q[3]}, Triangle{q[1], q[2], q[3]}
}
