package terrain

import (
	"io"
	"iter"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saiko-tech/tile-picker/pkg/picking"
	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

var (
	ErrTooSmall       = errors.New("height field needs at least 2x2 vertices")
	ErrRagged         = errors.New("height field rows differ in length")
	ErrInvalidSpacing = errors.New("chunk cells and cell size must be positive")
	ErrOutOfRange     = errors.New("vertex out of range")
)

// World is a height field cut into a row-major grid of chunks.
// Neighbouring chunks share their edge vertices.
type World struct {
	heights    [][]float32
	chunkCells int
	cellSize   float32

	// chunks[row][col]
	chunks [][]*Chunk
}

// NewWorld creates a world from heights[y][x], with chunkCells cells per chunk
// side and cellSize world units per cell.
func NewWorld(heights [][]float32, chunkCells int, cellSize float32) (*World, error) {
	if chunkCells <= 0 || cellSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidSpacing, "chunk cells %d, cell size %v", chunkCells, cellSize)
	}
	if len(heights) < 2 || len(heights[0]) < 2 {
		return nil, ErrTooSmall
	}
	for y, row := range heights {
		if len(row) != len(heights[0]) {
			return nil, errors.Wrapf(ErrRagged, "row %d has %d vertices, want %d", y, len(row), len(heights[0]))
		}
	}

	w := &World{
		heights:    make([][]float32, len(heights)),
		chunkCells: chunkCells,
		cellSize:   cellSize,
	}
	for y, row := range heights {
		w.heights[y] = append([]float32(nil), row...)
	}

	rows := ceilDiv(w.cellsY(), chunkCells)
	cols := ceilDiv(w.cellsX(), chunkCells)
	w.chunks = make([][]*Chunk, rows)
	for row := range w.chunks {
		w.chunks[row] = make([]*Chunk, cols)
		for col := range w.chunks[row] {
			w.chunks[row][col] = w.makeChunk(row, col)
		}
	}

	return w, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (w *World) cellsX() int { return len(w.heights[0]) - 1 }

func (w *World) cellsY() int { return len(w.heights) - 1 }

// chunkRange returns the first and last vertex index covered by chunk i along one axis.
func (w *World) chunkRange(i, cells int) (int, int) {
	first := i * w.chunkCells
	return first, min(first+w.chunkCells, cells)
}

func (w *World) makeChunk(row, col int) *Chunk {
	x0, x1 := w.chunkRange(col, w.cellsX())
	y0, y1 := w.chunkRange(row, w.cellsY())

	c := &Chunk{
		xSize:           x1 - x0 + 1,
		ySize:           y1 - y0 + 1,
		groundPositions: make([]mgl32.Vec3, 0, (x1-x0+1)*(y1-y0+1)),
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.groundPositions = append(c.groundPositions, w.position(x, y))
		}
	}

	return c
}

func (w *World) position(x, y int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x) * w.cellSize, float32(y) * w.cellSize, w.heights[y][x]}
}

// Cells returns the number of cells along the world's longer side.
// It is the natural size budget for a picking tree over the world.
func (w *World) Cells() uint32 {
	return uint32(max(w.cellsX(), w.cellsY()))
}

// Chunk returns the chunk at grid position (row, col).
func (w *World) Chunk(row, col int) *Chunk {
	return w.chunks[row][col]
}

// Bounds returns the box around every vertex of the world.
func (w *World) Bounds() collision.AABB {
	lo, hi := w.heights[0][0], w.heights[0][0]
	for _, row := range w.heights {
		for _, h := range row {
			lo = min(lo, h)
			hi = max(hi, h)
		}
	}

	return collision.NewAABB(
		mgl32.Vec3{0, 0, lo},
		mgl32.Vec3{float32(w.cellsX()) * w.cellSize, float32(w.cellsY()) * w.cellSize, hi},
	)
}

// Chunks yields every chunk, row by row.
func (w *World) Chunks() iter.Seq[picking.Chunk] {
	return func(yield func(picking.Chunk) bool) {
		for _, row := range w.chunks {
			for _, c := range row {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Height returns the height of vertex (x, y).
func (w *World) Height(x, y int) (float32, error) {
	if y < 0 || y >= len(w.heights) || x < 0 || x >= len(w.heights[0]) {
		return 0, errors.Wrapf(ErrOutOfRange, "(%d, %d)", x, y)
	}

	return w.heights[y][x], nil
}

// SetHeight changes the height of vertex (x, y) and regenerates the chunks
// that share it. Picking trees built from the world must be rebuilt afterwards.
func (w *World) SetHeight(x, y int, h float32) error {
	if _, err := w.Height(x, y); err != nil {
		return err
	}

	w.heights[y][x] = h

	for row := range w.chunks {
		y0, y1 := w.chunkRange(row, w.cellsY())
		if y < y0 || y > y1 {
			continue
		}
		for col := range w.chunks[row] {
			x0, x1 := w.chunkRange(col, w.cellsX())
			if x < x0 || x > x1 {
				continue
			}
			w.chunks[row][col] = w.makeChunk(row, col)
		}
	}

	return nil
}

type worldFile struct {
	ChunkCells int         `yaml:"chunk_cells"`
	CellSize   float32     `yaml:"cell_size"`
	Heights    [][]float32 `yaml:"heights"`
}

// Load reads a world from YAML:
//
//	chunk_cells: 16
//	cell_size: 1.0
//	heights:
//	  - [0, 0, 0.5]
//	  - [0, 1, 1.5]
func Load(r io.Reader) (*World, error) {
	wf := worldFile{
		ChunkCells: 16,
		CellSize:   1,
	}

	if err := yaml.NewDecoder(r).Decode(&wf); err != nil {
		return nil, errors.Wrap(err, "failed to decode world")
	}

	return NewWorld(wf.Heights, wf.ChunkCells, wf.CellSize)
}

// LoadFile reads a YAML world from path.
func LoadFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open world %q", path)
	}

	defer f.Close()

	w, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load world %q", path)
	}

	return w, nil
}
