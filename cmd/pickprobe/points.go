package main

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// screenPoints collects repeated -at x,y flags.
type screenPoints []mgl32.Vec2

func (s *screenPoints) String() string {
	parts := make([]string, 0, len(*s))
	for _, p := range *s {
		parts = append(parts, strconv.FormatFloat(float64(p.X()), 'g', -1, 32)+","+strconv.FormatFloat(float64(p.Y()), 'g', -1, 32))
	}

	return strings.Join(parts, " ")
}

func (s *screenPoints) Set(v string) error {
	p, err := parsePoint(v)
	if err != nil {
		return err
	}

	*s = append(*s, p)

	return nil
}

func parsePoint(v string) (mgl32.Vec2, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return mgl32.Vec2{}, errors.Errorf("point %q: want x,y", v)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return mgl32.Vec2{}, errors.Wrapf(err, "point %q", v)
	}

	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return mgl32.Vec2{}, errors.Wrapf(err, "point %q", v)
	}

	return mgl32.Vec2{float32(x), float32(y)}, nil
}
