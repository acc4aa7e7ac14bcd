package terrain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiko-tech/tile-picker/pkg/picking"
	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

var (
	_ picking.World = (*World)(nil)
	_ picking.Chunk = (*Chunk)(nil)
)

// heightField returns an (n+1)*(n+1) vertex grid with h(x, y) = x + 10*y.
func heightField(n int) [][]float32 {
	heights := make([][]float32, n+1)
	for y := range heights {
		heights[y] = make([]float32, n+1)
		for x := range heights[y] {
			heights[y][x] = float32(x + 10*y)
		}
	}

	return heights
}

func TestNewWorld_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		heights    [][]float32
		chunkCells int
		cellSize   float32
		want       error
	}{
		{name: "empty", heights: nil, chunkCells: 4, cellSize: 1, want: ErrTooSmall},
		{name: "single row", heights: [][]float32{{0, 1, 2}}, chunkCells: 4, cellSize: 1, want: ErrTooSmall},
		{name: "single column", heights: [][]float32{{0}, {1}}, chunkCells: 4, cellSize: 1, want: ErrTooSmall},
		{name: "ragged", heights: [][]float32{{0, 1}, {1}}, chunkCells: 4, cellSize: 1, want: ErrRagged},
		{name: "zero chunk cells", heights: heightField(2), chunkCells: 0, cellSize: 1, want: ErrInvalidSpacing},
		{name: "negative cell size", heights: heightField(2), chunkCells: 2, cellSize: -1, want: ErrInvalidSpacing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := NewWorld(tt.heights, tt.chunkCells, tt.cellSize)
			assert.Nil(t, w)
			assert.Truef(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestWorld_Chunks(t *testing.T) {
	t.Parallel()

	// 5x3 cells, chunks of 2 cells: 2 rows by 3 columns, last row and column are narrower
	heights := make([][]float32, 4)
	for y := range heights {
		heights[y] = make([]float32, 6)
	}

	w, err := NewWorld(heights, 2, 0.5)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), w.Cells())
	assert.Equal(t, collision.NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2.5, 1.5, 0}), w.Bounds())

	var (
		chunks int
		quads  int
	)
	for c := range w.Chunks() {
		chunks++
		for range c.Quads() {
			quads++
		}
	}
	assert.Equal(t, 6, chunks)
	assert.Equal(t, 15, quads)

	xs, ys := w.Chunk(1, 2).Size()
	assert.Equal(t, 2, xs)
	assert.Equal(t, 2, ys)

	// shared edge vertex between chunk (0,0) and (0,1)
	assert.Equal(t, w.Chunk(0, 0).Position(2, 0), w.Chunk(0, 1).Position(0, 0))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, w.Chunk(0, 1).Position(0, 0))
}

func TestChunk_Quads(t *testing.T) {
	t.Parallel()

	w, err := NewWorld(heightField(2), 2, 1)
	require.NoError(t, err)

	var quads []collision.Quad
	for q := range w.Chunk(0, 0).Quads() {
		quads = append(quads, q)
	}

	require.Len(t, quads, 4)
	assert.Equal(t, collision.Quad{{0, 0, 0}, {1, 0, 1}, {1, 1, 11}, {0, 1, 10}}, quads[0])
	assert.Equal(t, collision.Quad{{1, 0, 1}, {2, 0, 2}, {2, 1, 12}, {1, 1, 11}}, quads[1])
	assert.Equal(t, collision.Quad{{0, 1, 10}, {1, 1, 11}, {1, 2, 21}, {0, 2, 20}}, quads[2])
	assert.Equal(t, collision.Quad{{1, 1, 11}, {2, 1, 12}, {2, 2, 22}, {1, 2, 21}}, quads[3])

	// cells split along the SE-NW diagonal
	tri1, tri2 := quads[0].Triangles()
	assert.Equal(t, collision.Triangle{{0, 0, 0}, {1, 0, 1}, {0, 1, 10}}, tri1)
	assert.Equal(t, collision.Triangle{{1, 0, 1}, {1, 1, 11}, {0, 1, 10}}, tri2)

	// stops early when the consumer does
	n := 0
	for range w.Chunk(0, 0).Quads() {
		n++
		break
	}
	assert.Equal(t, 1, n)

	assert.Equal(t, collision.NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 22}), w.Chunk(0, 0).Bounds())
}

func TestWorld_SetHeight(t *testing.T) {
	t.Parallel()

	w, err := NewWorld(heightField(4), 2, 1)
	require.NoError(t, err)

	// (2, 2) is shared by all four chunks
	require.NoError(t, w.SetHeight(2, 2, -5))

	h, err := w.Height(2, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(-5), h)

	assert.Equal(t, float32(-5), w.Chunk(0, 0).Position(2, 2).Z())
	assert.Equal(t, float32(-5), w.Chunk(0, 1).Position(0, 2).Z())
	assert.Equal(t, float32(-5), w.Chunk(1, 0).Position(2, 0).Z())
	assert.Equal(t, float32(-5), w.Chunk(1, 1).Position(0, 0).Z())
	assert.Equal(t, float32(-5), w.Bounds().Min.Z())

	err = w.SetHeight(5, 0, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = w.Height(-1, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestWorld_PickingTree(t *testing.T) {
	t.Parallel()

	w, err := NewWorld(heightField(8), 3, 1)
	require.NoError(t, err)

	tree := picking.NewTreeForWorld(w, w.Cells(), nil)
	assert.Equal(t, 64, tree.Stats().Targets)

	line := collision.MustLine(mgl32.Vec3{2.25, 5.5, 1000}, mgl32.Vec3{2.25, 5.5, -1000})
	hit, ok := tree.NearestHit(line)
	require.True(t, ok)
	assert.InDelta(t, 2.25+10*5.5, hit.At.Z(), 1e-2)
}

const worldYAML = `
chunk_cells: 2
cell_size: 2
heights:
  - [0, 0, 0]
  - [0, 1, 0]
  - [0, 0, 0]
`

func TestLoad(t *testing.T) {
	t.Parallel()

	w, err := Load(strings.NewReader(worldYAML))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), w.Cells())
	assert.Equal(t, collision.NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 1}), w.Bounds())
	assert.Equal(t, mgl32.Vec3{2, 2, 1}, w.Chunk(0, 0).Position(1, 1))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("heights: {not: a list}"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("heights: [[0, 1], [2]]"))
	assert.True(t, errors.Is(err, ErrRagged))

	_, err = LoadFile("testdata/does_not_exist.yaml")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(worldYAML), 0o600))

	w, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), w.Cells())
}
