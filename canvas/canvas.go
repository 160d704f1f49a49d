// Package canvas combines a drawing surface with a plane manager and offers
// drawing primitives in plane coordinates.
package canvas

import (
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"

	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
)

// Options control how a new canvas is sized.
type Options struct {
	// FitParent sizes the canvas after its parent container when the
	// surface has one.
	FitParent bool
	// Width and Height are used when FitParent is off.
	Width, Height int
}

func DefaultOptions() Options {
	return Options{FitParent: true, Width: 100, Height: 100}
}

// NewID returns a random canvas identifier.
func NewID() string {
	return "canvas-" + uuid.NewString()
}

// Canvas draws in plane coordinates onto a surface. All coordinates given to
// its drawing methods are mapped through the current plane.
type Canvas struct {
	id      string
	surface surface.Surface
	manager *plane.Manager
}

// New wraps s. An empty id is replaced by a random one.
func New(s surface.Surface, id string, opts Options) (*Canvas, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil surface", plane.ErrMissingPrecondition)
	}
	if id == "" {
		id = NewID()
	}
	c := &Canvas{id: id, surface: s}

	switch {
	case opts.FitParent:
		if ps, ok := s.(surface.ParentSizer); ok {
			w, h, ok := ps.ParentSize()
			if !ok {
				return nil, fmt.Errorf(
					"%w: canvas #%s has no parent to fit", plane.ErrMissingPrecondition, id)
			}
			if err := c.resizeSurface(w, h); err != nil {
				return nil, err
			}
		}
	case opts.Width > 0 && opts.Height > 0:
		if w, h := s.Size(); w != opts.Width || h != opts.Height {
			if err := c.resizeSurface(opts.Width, opts.Height); err != nil {
				return nil, err
			}
		}
	}

	w, h := s.Size()
	m, err := plane.NewManager(id, w, h)
	if err != nil {
		return nil, err
	}
	c.manager = m
	return c, nil
}

func (c *Canvas) ID() string               { return c.id }
func (c *Canvas) Surface() surface.Surface { return c.surface }
func (c *Canvas) Manager() *plane.Manager  { return c.manager }
func (c *Canvas) Plane() plane.Plane       { return c.manager.Plane() }
func (c *Canvas) Size() (int, int)         { return c.surface.Size() }

// SetPlane replaces the plane through the manager, with all its side
// effects.
func (c *Canvas) SetPlane(p plane.Plane) error {
	return c.manager.SetPlane(p)
}

func (c *Canvas) resizeSurface(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", plane.ErrInvalidArgument, w, h)
	}
	r, ok := c.surface.(surface.Resizer)
	if !ok {
		return fmt.Errorf("%w: surface of #%s cannot be resized", plane.ErrMissingPrecondition, c.id)
	}
	return r.Resize(w, h)
}

// SetSize resizes the surface and recomputes the grid steps.
func (c *Canvas) SetSize(w, h int) error {
	if err := c.resizeSurface(w, h); err != nil {
		return err
	}
	if c.manager == nil {
		return nil
	}
	return c.manager.Resize(w, h)
}

// SetSizeToParent resizes the canvas to the size of its parent container.
func (c *Canvas) SetSizeToParent() error {
	return c.SetSizeFromParent(nil)
}

// SetSizeFromParent resizes the canvas to whatever fn derives from the
// parent's size. A nil fn uses the parent's size as is.
func (c *Canvas) SetSizeFromParent(fn func(pw, ph int) (int, int)) error {
	ps, ok := c.surface.(surface.ParentSizer)
	if !ok {
		return fmt.Errorf("%w: canvas #%s has no parent", plane.ErrMissingPrecondition, c.id)
	}
	w, h, ok := ps.ParentSize()
	if !ok {
		return fmt.Errorf("%w: parent of #%s has no size", plane.ErrMissingPrecondition, c.id)
	}
	if fn != nil {
		w, h = fn(w, h)
	}
	return c.SetSize(w, h)
}

func (c *Canvas) Clear() {
	c.surface.Clear()
}

// ToPixel maps plane coordinates onto the surface.
func (c *Canvas) ToPixel(x, y float64) (float64, float64, error) {
	w, h := c.surface.Size()
	return c.manager.Plane().ToPixel(x, y, w, h)
}

// DrawLine strokes a segment between two plane points. A nil colour means
// black and a non-positive width means 1.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, col color.Color, width float64) error {
	px0, py0, err := c.ToPixel(x0, y0)
	if err != nil {
		return err
	}
	px1, py1, err := c.ToPixel(x1, y1)
	if err != nil {
		return err
	}
	if col == nil {
		col = color.Black
	}
	if width <= 0 {
		width = 1
	}
	c.surface.DrawLine(px0, py0, px1, py1, col, width)
	return nil
}

// FillRect fills the plane rectangle spanning (x, y) to (x+w, y+h).
// Negative sizes are allowed.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) error {
	px0, py0, err := c.ToPixel(x, y)
	if err != nil {
		return err
	}
	px1, py1, err := c.ToPixel(x+w, y+h)
	if err != nil {
		return err
	}
	if col == nil {
		col = color.Black
	}
	c.surface.FillRect(
		math.Min(px0, px1), math.Min(py0, py1),
		math.Abs(px1-px0), math.Abs(py1-py0), col)
	return nil
}

// Circ draws an arc around a plane point. The radius is in pixels.
func (c *Canvas) Circ(x, y, radius, start, end float64, col color.Color, ccw, fill bool) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("%w: radius %v", plane.ErrInvalidArgument, radius)
	}
	px, py, err := c.ToPixel(x, y)
	if err != nil {
		return err
	}
	if col == nil {
		col = color.Black
	}
	c.surface.DrawArc(px, py, radius, start, end, col, ccw, fill)
	return nil
}
