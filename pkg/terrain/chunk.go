// Package terrain models the game's height-field ground as a grid of chunks.
package terrain

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

// Chunk is a rectangular block of ground vertices in world space.
type Chunk struct {
	// number of vertices along each axis; a chunk has (xSize-1)*(ySize-1) quads
	xSize, ySize    int
	groundPositions []mgl32.Vec3
}

func (c *Chunk) vi(x, y int) int {
	return y*c.xSize + x
}

// Position returns the ground vertex at grid coordinates (x, y) within the chunk.
func (c *Chunk) Position(x, y int) mgl32.Vec3 {
	return c.groundPositions[c.vi(x, y)]
}

// Size returns the number of vertices along X and Y.
func (c *Chunk) Size() (int, int) {
	return c.xSize, c.ySize
}

// Quads yields every cell of the chunk row by row, with corners ordered
// (x,y), (x+1,y), (x+1,y+1), (x,y+1). With +y as north that is SW, SE, NE, NW,
// so cells are split along their SE-NW diagonal.
func (c *Chunk) Quads() iter.Seq[collision.Quad] {
	return func(yield func(collision.Quad) bool) {
		for y := 0; y < c.ySize-1; y++ {
			for x := 0; x < c.xSize-1; x++ {
				q := collision.Quad{
					c.groundPositions[c.vi(x, y)],
					c.groundPositions[c.vi(x+1, y)],
					c.groundPositions[c.vi(x+1, y+1)],
					c.groundPositions[c.vi(x, y+1)],
				}
				if !yield(q) {
					return
				}
			}
		}
	}
}

// Bounds returns the box around all of the chunk's vertices.
func (c *Chunk) Bounds() collision.AABB {
	b := collision.NewAABB(c.groundPositions[0], c.groundPositions[0])
	for _, p := range c.groundPositions[1:] {
		b = collision.NewAABB(
			mgl32.Vec3{min(b.Min[0], p[0]), min(b.Min[1], p[1]), min(b.Min[2], p[2])},
			mgl32.Vec3{max(b.Max[0], p[0]), max(b.Max[1], p[1]), max(b.Max[2], p[2])},
		)
	}

	return b
}
