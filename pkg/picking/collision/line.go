package collision

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Axis selects one component of a world-space vector.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}

	return fmt.Sprintf("Axis(%d)", int(a))
}

var (
	// ErrDegenerateLine is returned when a line would have a zero direction vector.
	ErrDegenerateLine = errors.New("degenerate line: direction is zero on all axes")
	// ErrNonFiniteLine is returned when a line's origin or direction has a NaN or infinite component.
	ErrNonFiniteLine = errors.New("line has a non-finite component")
)

// Line is a line in parametric form: P(t) = Origin + t*Direction.
//
// It is unbounded in both directions, so negative t values are valid points on the line.
type Line struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewLine returns the line through from and to, with t=0 at from and t=1 at to.
func NewLine(from, to mgl32.Vec3) (Line, error) {
	return NewRay(from, to.Sub(from))
}

// NewRay returns the line starting at origin with the given direction.
func NewRay(origin, direction mgl32.Vec3) (Line, error) {
	if !finite(origin) || !finite(direction) {
		return Line{}, errors.Wrapf(ErrNonFiniteLine, "origin %v, direction %v", origin, direction)
	}
	if direction[0] == 0 && direction[1] == 0 && direction[2] == 0 {
		return Line{}, errors.Wrapf(ErrDegenerateLine, "origin %v", origin)
	}

	return Line{Origin: origin, Direction: direction}, nil
}

func finite(v mgl32.Vec3) bool {
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}

	return true
}

// MustLine is like NewLine but panics if NewLine fails.
func MustLine(from, to mgl32.Vec3) Line {
	l, err := NewLine(from, to)
	if err != nil {
		panic(err)
	}

	return l
}

// At returns the point on the line at parameter t.
func (l Line) At(t float32) mgl32.Vec3 {
	return l.Origin.Add(l.Direction.Mul(t))
}

// Coord returns the coordinate on axis at parameter t.
func (l Line) Coord(axis Axis, t float32) float32 {
	return l.Direction[axis]*t + l.Origin[axis]
}

// Normalize returns the same line with a unit-length direction.
func (l Line) Normalize() Line {
	return Line{Origin: l.Origin, Direction: l.Direction.Normalize()}
}

// WhereAxisEq returns the t value at which the line's coordinate on axis equals value.
// ok is false if the line is parallel to that axis.
func (l Line) WhereAxisEq(axis Axis, value float32) (t float32, ok bool) {
	if l.Direction[axis] == 0 {
		return 0, false
	}

	return (value - l.Origin[axis]) / l.Direction[axis], true
}

func (l Line) WhereXEq(x float32) (float32, bool) { return l.WhereAxisEq(X, x) }

func (l Line) WhereYEq(y float32) (float32, bool) { return l.WhereAxisEq(Y, y) }

func (l Line) WhereZEq(z float32) (float32, bool) { return l.WhereAxisEq(Z, z) }
