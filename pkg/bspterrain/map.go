// Package bspterrain turns the walkable faces of a Source engine BSP map into pickable ground.
package bspterrain

import (
	"iter"

	"github.com/galaco/bsp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/saiko-tech/tile-picker/pkg/picking"
	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

// DefaultMinNormalZ keeps faces tilted at most ~45 degrees from horizontal.
const DefaultMinNormalZ = 0.7

// facesPerChunk is the number of faces handed to the picking tree per chunk.
const facesPerChunk = 64

// Map is the walkable surface of a loaded BSP map.
type Map struct {
	polygons []polygon
	bounds   collision.AABB
}

// LoadMap loads a BSP map from a file, keeping only faces whose plane normal
// has a Z component of at least minNormalZ.
func LoadMap(path string, minNormalZ float32, log *zap.Logger) (*Map, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bspfile, err := bsp.ReadFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read bsp %q", path)
	}

	m := newMap(buildPolygons(bspfile), minNormalZ, log)

	log.Info("loaded bsp map",
		zap.String("path", path),
		zap.Int("faces", len(m.polygons)),
	)

	return m, nil
}

func newMap(polys []polygon, minNormalZ float32, log *zap.Logger) *Map {
	m := &Map{
		polygons: make([]polygon, 0, len(polys)),
	}

	var tris []collision.Triangle

	for i := range polys {
		if !polys[i].walkable(minNormalZ) {
			log.Debug("skipping steep face",
				zap.Int("face", i),
				zap.Float32("normal_z", polys[i].normal.Z()),
			)

			continue
		}

		m.polygons = append(m.polygons, polys[i])

		for _, q := range polys[i].quads() {
			t1, t2 := q.Triangles()
			tris = append(tris, t1, t2)
		}
	}

	m.bounds = collision.AABBFromTriangles(tris...)

	return m
}

// Faces returns the number of walkable faces.
func (m *Map) Faces() int {
	return len(m.polygons)
}

// Bounds returns the box around every walkable face.
func (m *Map) Bounds() collision.AABB {
	return m.bounds
}

// Chunks yields the walkable faces in batches.
func (m *Map) Chunks() iter.Seq[picking.Chunk] {
	return func(yield func(picking.Chunk) bool) {
		for first := 0; first < len(m.polygons); first += facesPerChunk {
			last := min(first+facesPerChunk, len(m.polygons))
			if !yield(faceChunk(m.polygons[first:last])) {
				return
			}
		}
	}
}

type faceChunk []polygon

// Quads yields the fan quads of every face in the chunk.
func (c faceChunk) Quads() iter.Seq[collision.Quad] {
	return func(yield func(collision.Quad) bool) {
		for i := range c {
			for _, q := range c[i].quads() {
				if !yield(q) {
					return
				}
			}
		}
	}
}
