package picking

import (
	"iter"

	"go.uber.org/zap"

	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

// Chunk is a piece of terrain that can be decomposed into quads.
type Chunk interface {
	Quads() iter.Seq[collision.Quad]
}

// World is the whole terrain, as a set of chunks.
type World interface {
	// Bounds covers every quad of every chunk.
	Bounds() collision.AABB
	Chunks() iter.Seq[Chunk]
}

// AddChunk inserts one Ground target per quad of chunk and returns how many were inserted.
// The quads are copied; the tree keeps no reference to chunk.
func (t *Tree) AddChunk(chunk Chunk) int {
	n := 0
	for q := range chunk.Quads() {
		t.Insert(NewGround(q))
		n++
	}

	return n
}

// AddChunksFromWorld inserts the quads of every chunk of world.
func (t *Tree) AddChunksFromWorld(world World) int {
	n := 0
	for chunk := range world.Chunks() {
		n += t.AddChunk(chunk)
	}

	return n
}

// NewTreeForWorld builds a tree over world's bounds and fills it with world's terrain.
// size is the tree's size budget, typically the number of cells along the world's longest side.
//
// The root starts flat at the world's lowest point and every node's Z range
// grows only with the targets inserted beneath it.
func NewTreeForWorld(world World, size uint32, log *zap.Logger) *Tree {
	if log == nil {
		log = zap.NewNop()
	}

	box := world.Bounds()
	box.Max[2] = box.Min[2]

	t := NewTree(size, box)
	t.Build()
	n := t.AddChunksFromWorld(world)

	stats := t.Stats()
	log.Info("built picking tree",
		zap.Uint32("size", size),
		zap.Int("quads", n),
		zap.Int("nodes", stats.Nodes),
		zap.Int("leaves", stats.Leaves),
		zap.Int("max_depth", stats.MaxDepth),
		zap.Int("root_targets", stats.RootTargets),
	)

	return t
}
