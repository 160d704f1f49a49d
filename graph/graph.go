// Package graph plots series of (x, y) samples on a canvas as lines, dots
// or towers.
package graph

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/susji/mathcanvas/canvas"
	"github.com/susji/mathcanvas/plane"
)

type Style int

const (
	StyleLine Style = iota
	StyleDot
	StyleTower
)

func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "lines":
		return StyleLine, nil
	case "dot", "dots":
		return StyleDot, nil
	case "tower", "towers":
		return StyleTower, nil
	}
	return StyleLine, fmt.Errorf("%w: plot style %q", plane.ErrInvalidArgument, s)
}

func (s Style) String() string {
	switch s {
	case StyleDot:
		return "dot"
	case StyleTower:
		return "towers"
	}
	return "line"
}

type Sample struct {
	X, Y float64
}

const DefaultDotRadius = 3

var DefaultColor = color.Color(color.NRGBA{R: 255, A: 255})

// Graph plots one series onto a canvas. Once plotted, the series is drawn
// again whenever the canvas redraws, so it follows plane changes. Replacing
// the series takes it off the canvas until the next Plot.
type Graph struct {
	c         *canvas.Canvas
	values    []Sample
	style     Style
	color     color.Color
	dotRadius float64
	plotted   bool
}

func New(c *canvas.Canvas) *Graph {
	g := &Graph{
		c:         c,
		style:     StyleLine,
		color:     DefaultColor,
		dotRadius: DefaultDotRadius,
	}
	c.Manager().OnRedraw(g.Draw)
	return g
}

func (g *Graph) Canvas() *canvas.Canvas { return g.c }
func (g *Graph) Style() Style           { return g.style }
func (g *Graph) SetStyle(s Style)       { g.style = s }

// Values returns a copy of the current series in insertion order.
func (g *Graph) Values() []Sample {
	return append([]Sample(nil), g.values...)
}

func validate(vals []Sample) error {
	if len(vals) == 0 {
		return fmt.Errorf("%w: no samples", plane.ErrInvalidArgument)
	}
	for i, v := range vals {
		if math.IsNaN(v.X) || math.IsInf(v.X, 0) || math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
			return fmt.Errorf("%w: sample %d (%v, %v) is not finite", plane.ErrInvalidArgument, i, v.X, v.Y)
		}
	}
	return nil
}

// SetValues replaces the series. Invalid input leaves the previous series in
// place.
func (g *Graph) SetValues(vals []Sample) error {
	if err := validate(vals); err != nil {
		return err
	}
	g.values = append([]Sample(nil), vals...)
	g.plotted = false
	return nil
}

// SetColor sets the plot colour. Nil restores the default.
func (g *Graph) SetColor(c color.Color) {
	if c == nil {
		c = DefaultColor
	}
	g.color = c
}

// SetDotRadius sets the pixel radius used by StyleDot.
func (g *Graph) SetDotRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("%w: dot radius %v", plane.ErrInvalidArgument, r)
	}
	g.dotRadius = r
	return nil
}

func sorted(vals []Sample) []Sample {
	s := append([]Sample(nil), vals...)
	sort.SliceStable(s, func(i, j int) bool { return s[i].X < s[j].X })
	return s
}

// Bounds returns the bounding box of vals as a plane.
func Bounds(vals []Sample) (plane.Plane, error) {
	if err := validate(vals); err != nil {
		return plane.Plane{}, err
	}
	b := plane.Plane{XMin: vals[0].X, YMin: vals[0].Y, XMax: vals[0].X, YMax: vals[0].Y}
	for _, v := range vals[1:] {
		b.XMin = math.Min(b.XMin, v.X)
		b.XMax = math.Max(b.XMax, v.X)
		b.YMin = math.Min(b.YMin, v.Y)
		b.YMax = math.Max(b.YMax, v.Y)
	}
	return b, nil
}

// Plot draws the series. With autoFit the plane is first set to the
// bounding box of the samples, which also redraws everything attached to
// the canvas.
func (g *Graph) Plot(autoFit bool) error {
	if len(g.values) == 0 {
		return fmt.Errorf("%w: no values to plot on #%s", plane.ErrMissingPrecondition, g.c.ID())
	}
	if autoFit {
		b, err := Bounds(g.values)
		if err != nil {
			return err
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("cannot fit plane to samples: %w", err)
		}
		m := g.c.Manager()
		wasPlotted := g.plotted
		g.plotted = true
		if err := m.SetPlane(b); err != nil {
			if m.Plane() != b {
				g.plotted = wasPlotted
			}
			return err
		}
		if m.RenderOnChange() {
			return nil
		}
	}
	g.plotted = true
	return g.draw()
}

// Draw redraws the series if it has been plotted before.
func (g *Graph) Draw() error {
	if !g.plotted || len(g.values) == 0 {
		return nil
	}
	return g.draw()
}

func (g *Graph) draw() error {
	vals := sorted(g.values)
	switch g.style {
	case StyleDot:
		for _, v := range vals {
			if err := g.c.Circ(v.X, v.Y, g.dotRadius, 0, 2*math.Pi, g.color, true, true); err != nil {
				return err
			}
		}
	case StyleTower:
		p := g.c.Plane()
		for i, v := range vals {
			prev, next := p.XMin, p.XMax
			if i > 0 {
				prev = vals[i-1].X
			}
			if i < len(vals)-1 {
				next = vals[i+1].X
			}
			start := v.X - (v.X-prev)/2
			end := next - (next-v.X)/2
			if err := g.c.FillRect(start, p.YMin, end-start, v.Y-p.YMin, g.color); err != nil {
				return err
			}
		}
	default:
		for i := 1; i < len(vals); i++ {
			a, b := vals[i-1], vals[i]
			if err := g.c.DrawLine(a.X, a.Y, b.X, b.Y, g.color, 1); err != nil {
				return err
			}
		}
	}
	return nil
}
