// Package plane maps a user-defined "math plane" onto pixel space and
// chooses human-friendly grid spacing for it.
//
// The y axis of a plane grows upwards while pixel rows grow downwards, so
// every conversion to pixels goes through ToPixel which inverts y.
package plane

import (
	"fmt"
	"math"
	"strings"
)

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ScalarMap maps value from the interval in to the interval out. Values
// outside of in are mapped outside of out.
func ScalarMap(value float64, in, out [2]float64) (float64, error) {
	if !finite(value, in[0], in[1], out[0], out[1]) {
		return 0, fmt.Errorf(
			"%w: cannot map %v from %v to %v", ErrInvalidArgument, value, in, out)
	}
	if in[0] == in[1] {
		return 0, fmt.Errorf("%w: input interval %v", ErrDegenerateInterval, in)
	}
	return out[0] + (value-in[0])/(in[1]-in[0])*(out[1]-out[0]), nil
}

// Plane is the rectangle of plane coordinates currently shown on a canvas.
type Plane struct {
	XMin, YMin, XMax, YMax float64
}

// PixelPlane returns the identity plane of a width x height canvas.
func PixelPlane(width, height int) Plane {
	return Plane{XMin: 0, YMin: 0, XMax: float64(width), YMax: float64(height)}
}

// FromSlice builds a plane from [xMin, yMin, xMax, yMax].
func FromSlice(vals []float64) (Plane, error) {
	if len(vals) != 4 {
		return Plane{}, fmt.Errorf(
			"%w: plane needs 4 values, got %d", ErrInvalidArgument, len(vals))
	}
	p := Plane{XMin: vals[0], YMin: vals[1], XMax: vals[2], YMax: vals[3]}
	return p, p.Validate()
}

// Validate checks that all bounds are finite and that both intervals are
// non-empty and ordered.
func (p Plane) Validate() error {
	if !finite(p.XMin, p.YMin, p.XMax, p.YMax) {
		return fmt.Errorf("%w: plane %s has non-finite bounds", ErrInvalidArgument, p)
	}
	if p.XMin >= p.XMax {
		return fmt.Errorf("%w: plane %s needs xMin < xMax", ErrInvalidArgument, p)
	}
	if p.YMin >= p.YMax {
		return fmt.Errorf("%w: plane %s needs yMin < yMax", ErrInvalidArgument, p)
	}
	return nil
}

func (p Plane) Width() float64  { return p.XMax - p.XMin }
func (p Plane) Height() float64 { return p.YMax - p.YMin }

// Slice returns the plane as [xMin, yMin, xMax, yMax].
func (p Plane) Slice() []float64 {
	return []float64{p.XMin, p.YMin, p.XMax, p.YMax}
}

// Contains reports whether (x, y) lies inside the plane, bounds included.
func (p Plane) Contains(x, y float64) bool {
	return x >= p.XMin && x <= p.XMax && y >= p.YMin && y <= p.YMax
}

// ToPixel maps (x, y) onto a width x height pixel surface. The result is
// truncated and shifted by half a pixel so that 1px lines land on a single
// pixel row or column.
func (p Plane) ToPixel(x, y float64, width, height int) (float64, float64, error) {
	px, err := ScalarMap(x, [2]float64{p.XMin, p.XMax}, [2]float64{0, float64(width)})
	if err != nil {
		return 0, 0, err
	}
	py, err := ScalarMap(y, [2]float64{p.YMin, p.YMax}, [2]float64{float64(height), 0})
	if err != nil {
		return 0, 0, err
	}
	return math.Trunc(px) + 0.5, math.Trunc(py) + 0.5, nil
}

func (p Plane) String() string {
	vals := p.Slice()
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = FormatValue(v, 2)
	}
	return "[" + strings.Join(s, ",") + "]"
}
