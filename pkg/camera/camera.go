// Package camera implements the isometric, orthographic game camera.
//
// The camera turns cursor positions into world-space picking lines and gives
// the depth ordering used to sort picking candidates.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

const (
	// tilt around the X axis (228 degrees)
	tilt = float32(3.97935069)
	// base rotation around the Z axis (28 degrees), before orbit steps are added
	orbitBase = float32(0.488692191)

	orbitStep = float32(math.Pi / 2)
	orbits    = 4

	nearPlane = float32(1000)
	farPlane  = float32(-1000)
)

var (
	ErrInvalidOrbit      = errors.New("orbit must be in [0, 3]")
	ErrSingularTransform = errors.New("view-projection transform is not invertible")
	ErrInvalidZoom       = errors.New("zoom must be finite and positive")
	ErrInvalidViewport   = errors.New("viewport must be at least 1x1 pixels")
)

// Camera is an orthographic camera with four discrete orbit positions.
type Camera struct {
	zRotation   float32
	orbit       uint8
	translation mgl32.Vec2
	zoom        float32
	modelView   mgl32.Mat4
	projection  mgl32.Mat4
	width       uint16
	height      uint16
}

// New creates a camera for a viewport of width*height pixels.
func New(width, height uint16, zoom float32) (*Camera, error) {
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrInvalidViewport, "got %dx%d", width, height)
	}
	if !validZoom(zoom) {
		return nil, errors.Wrapf(ErrInvalidZoom, "got %v", zoom)
	}

	c := &Camera{
		width:  width,
		height: height,
		zoom:   zoom,
	}

	c.orbitTo(orbits - 1)
	c.rebuildProjection()

	return c, nil
}

func validZoom(zoom float32) bool {
	return zoom > 0 && !math.IsInf(float64(zoom), 1)
}

func (c *Camera) Orbit() uint8 {
	return c.orbit
}

// OrbitTo rotates the camera to one of the four orbit positions.
func (c *Camera) OrbitTo(orbit uint8) error {
	if orbit >= orbits {
		return errors.Wrapf(ErrInvalidOrbit, "got %d", orbit)
	}

	c.orbitTo(orbit)

	return nil
}

func (c *Camera) orbitTo(orbit uint8) {
	c.orbit = orbit
	c.zRotation = orbitBase + float32(orbit)*orbitStep
	c.rebuildModelView()
}

// IncrementOrbit rotates one step, wrapping from 3 to 0.
func (c *Camera) IncrementOrbit() {
	c.orbitTo((c.orbit + 1) % orbits)
}

// DecrementOrbit rotates one step back, wrapping from 0 to 3.
func (c *Camera) DecrementOrbit() {
	c.orbitTo((c.orbit + orbits - 1) % orbits)
}

// Translate pans the camera in view space.
func (c *Camera) Translate(amount mgl32.Vec2) {
	c.translation = c.translation.Add(amount)
	c.rebuildModelView()
}

func (c *Camera) Translation() mgl32.Vec2 {
	return c.translation
}

func (c *Camera) Zoom() float32 {
	return c.zoom
}

// ZoomBy multiplies the zoom. The camera is unchanged if the result would
// not be finite and positive.
func (c *Camera) ZoomBy(multiplier float32) error {
	zoom := c.zoom * multiplier
	if !validZoom(zoom) {
		return errors.Wrapf(ErrInvalidZoom, "%v * %v", c.zoom, multiplier)
	}

	c.zoom = zoom
	c.rebuildProjection()

	return nil
}

// Resize updates the viewport size.
func (c *Camera) Resize(width, height uint16) error {
	if width == 0 || height == 0 {
		return errors.Wrapf(ErrInvalidViewport, "got %dx%d", width, height)
	}
	if width == c.width && height == c.height {
		return nil
	}

	c.width = width
	c.height = height
	c.rebuildProjection()

	return nil
}

func (c *Camera) rebuildModelView() {
	// applied right to left: Z rotation, then tilt, then pan
	c.modelView = mgl32.Translate3D(c.translation.X(), c.translation.Y(), 0).
		Mul4(mgl32.HomogRotate3DX(tilt)).
		Mul4(mgl32.HomogRotate3DZ(c.zRotation))
}

func (c *Camera) rebuildProjection() {
	w := float32(c.width) / c.zoom
	h := float32(c.height) / c.zoom
	c.projection = mgl32.Ortho(-w, w, -h, h, nearPlane, farPlane)
}

func (c *Camera) viewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.modelView)
}

// Unproject converts a cursor position in pixels (origin top left) into the
// world-space line under it, running from the front of the view volume to the back.
func (c *Camera) Unproject(screen mgl32.Vec2) (collision.Line, error) {
	vp := c.viewProjection()
	det := float64(vp.Det())
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return collision.Line{}, ErrSingularTransform
	}

	inv := vp.Inv()

	x := 2*screen.X()/float32(c.width) - 1
	y := 1 - 2*screen.Y()/float32(c.height)

	near := inv.Mul4x1(mgl32.Vec4{x, y, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{x, y, 1, 1})

	line, err := collision.NewLine(near.Vec3().Mul(1/near.W()), far.Vec3().Mul(1/far.W()))
	if err != nil {
		return collision.Line{}, errors.Wrapf(err, "unproject %v", screen)
	}

	return line, nil
}

// DistanceTo returns p's depth after projection. Smaller values are nearer
// the viewer. The value is only meaningful for comparisons.
func (c *Camera) DistanceTo(p mgl32.Vec3) float32 {
	return c.viewProjection().Mul4x1(p.Vec4(1)).Z()
}

// Project returns the cursor position in pixels (origin top left) over which p is drawn.
func (c *Camera) Project(p mgl32.Vec3) mgl32.Vec2 {
	ndc := c.viewProjection().Mul4x1(p.Vec4(1))

	return mgl32.Vec2{
		(ndc.X() + 1) / 2 * float32(c.width),
		(1 - ndc.Y()) / 2 * float32(c.height),
	}
}
