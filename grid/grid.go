// Package grid draws axes, grid lines and tick labels for the plane of a
// canvas and keeps them up to date as the plane changes.
package grid

import (
	"fmt"
	"math"

	"github.com/susji/mathcanvas/canvas"
	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
)

const (
	// Pixel distance between the x axis and its labels.
	xLabelMarginPx = 10
	// Pixel distance between the y axis and its labels.
	yLabelMarginPx = 10
)

type Grid struct {
	c    *canvas.Canvas
	opts Options
}

// New attaches a grid to c. The canvas is reset to its default plane, which
// is squared when opts.Square is set, and the grid is drawn.
func New(c *canvas.Canvas, opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{c: c, opts: opts}
	m := c.Manager()

	render := m.RenderOnChange()
	m.SetRenderOnChange(false)
	err := m.SetPxStep(opts.PxStep)
	if err == nil {
		err = m.SetDefaultPlane()
	}
	if err == nil && opts.Square {
		err = m.SquarePlane(true)
	}
	m.SetRenderOnChange(render)
	if err != nil {
		return nil, err
	}

	m.OnRedraw(g.Draw)
	if render {
		if err := g.Draw(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Grid) Canvas() *canvas.Canvas { return g.c }
func (g *Grid) Options() Options       { return g.opts }

// lineValues returns start, start+step, ... below max. The count is capped
// so that a tiny manual step cannot stall drawing.
func lineValues(start, max, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("%w: grid step %v", plane.ErrInvalidArgument, step)
	}
	if n := (max - start) / step; n > plane.MaxGridLines {
		return nil, fmt.Errorf(
			"%w: step %v gives %.0f grid lines", plane.ErrInvalidArgument, step, n)
	}
	var vals []float64
	for n := 0; ; n++ {
		v := start + float64(n)*step
		if v >= max {
			break
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// layout holds everything a drawing needs that can fail to compute.
type layout struct {
	p                plane.Plane
	xs, ys           plane.Step
	xMargin, yMargin float64
	xLabels, yLabels []float64
	xLines, yLines   []float64
}

func (g *Grid) layout() (*layout, error) {
	m := g.c.Manager()
	l := &layout{p: m.Plane()}
	l.xs, l.ys = m.Steps()
	w, h := m.Size()
	p := l.p

	var err error
	l.xMargin, err = plane.ScalarMap(xLabelMarginPx, [2]float64{0, float64(h)}, [2]float64{0, p.Height()})
	if err != nil {
		return nil, err
	}
	l.yMargin, err = plane.ScalarMap(yLabelMarginPx, [2]float64{0, float64(w)}, [2]float64{0, p.Width()})
	if err != nil {
		return nil, err
	}
	xStart := p.XMin - math.Mod(p.XMin, l.xs.Size)
	yStart := p.YMin - math.Mod(p.YMin, l.ys.Size)
	if l.xLabels, err = lineValues(xStart, p.XMax, l.xs.Size); err != nil {
		return nil, err
	}
	if l.yLabels, err = lineValues(yStart, p.YMax, l.ys.Size); err != nil {
		return nil, err
	}
	if l.xLines, err = lineValues(xStart-l.xs.Size, p.XMax, l.xs.Size); err != nil {
		return nil, err
	}
	if l.yLines, err = lineValues(yStart-l.ys.Size, p.YMax, l.ys.Size); err != nil {
		return nil, err
	}
	return l, nil
}

// Draw clears the surface and draws labels, grid lines and axes. Nothing is
// cleared when the grid cannot be laid out for the current plane and steps.
func (g *Grid) Draw() error {
	l, err := g.layout()
	if err != nil {
		return err
	}
	g.c.Clear()
	if err := g.drawLabels(l); err != nil {
		return err
	}
	if err := g.drawLines(l); err != nil {
		return err
	}
	return g.drawAxes()
}

func (g *Grid) labelOptions(align surface.Align, baseline surface.Baseline) canvas.TextOptions {
	return canvas.TextOptions{
		Align:        align,
		Baseline:     baseline,
		Font:         g.opts.Font,
		Color:        g.opts.LabelColor,
		StayInBound:  true,
		InBoundColor: canvas.DefaultInBoundColor,
		Outside:      g.opts.LabelsOutside,
	}
}

func (g *Grid) drawLabels(l *layout) error {
	p, xs, ys := l.p, l.xs, l.ys
	xMargin, yMargin := l.xMargin, l.yMargin

	for _, x := range l.xLabels {
		if math.Abs(x) <= xs.Size/2 {
			continue
		}
		err := g.c.FillText(plane.FormatValue(x, xs.Pow), x, -xMargin,
			g.labelOptions(surface.AlignCenter, surface.BaselineTop))
		if err != nil {
			return err
		}
	}

	for _, y := range l.yLabels {
		if math.Abs(y) <= ys.Size/2 {
			continue
		}
		err := g.c.FillText(plane.FormatValue(y, ys.Pow), -yMargin, y,
			g.labelOptions(surface.AlignRight, surface.BaselineMiddle))
		if err != nil {
			return err
		}
	}

	if p.XMin < 0 && p.XMax > 0 && p.YMin < 0 && p.YMax > 0 {
		return g.c.FillText("0", -yMargin, -xMargin, canvas.TextOptions{
			Align:    surface.AlignRight,
			Baseline: surface.BaselineTop,
			Font:     g.opts.Font,
			Color:    g.opts.LabelColor,
		})
	}
	return nil
}

// subOffsets returns the offsets of minor lines within one major interval.
func subOffsets(s plane.Step, majorShown bool) []float64 {
	first := 1
	if !majorShown {
		first = 0
	}
	var offs []float64
	for k := first; k < s.Subdivisions; k++ {
		offs = append(offs, float64(k)*s.Minor())
	}
	return offs
}

func (g *Grid) drawLines(l *layout) error {
	p, xs, ys := l.p, l.xs, l.ys
	major, minor := g.opts.GridLines, g.opts.SubGridLines

	majorX := major.Displayed && major.X.Displayed
	minorX := minor.Displayed && minor.X.Displayed
	for _, x := range l.xLines {
		if majorX {
			if err := g.c.DrawLine(x, p.YMin, x, p.YMax, major.X.Color, major.X.Width); err != nil {
				return err
			}
		}
		if !minorX {
			continue
		}
		for _, off := range subOffsets(xs, majorX) {
			if err := g.c.DrawLine(x+off, p.YMin, x+off, p.YMax, minor.X.Color, minor.X.Width); err != nil {
				return err
			}
		}
	}

	majorY := major.Displayed && major.Y.Displayed
	minorY := minor.Displayed && minor.Y.Displayed
	for _, y := range l.yLines {
		if majorY {
			if err := g.c.DrawLine(p.XMin, y, p.XMax, y, major.Y.Color, major.Y.Width); err != nil {
				return err
			}
		}
		if !minorY {
			continue
		}
		for _, off := range subOffsets(ys, majorY) {
			if err := g.c.DrawLine(p.XMin, y+off, p.XMax, y+off, minor.Y.Color, minor.Y.Width); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Grid) drawAxes() error {
	if !g.opts.Axis.Displayed {
		return nil
	}
	p := g.c.Plane()
	ax := g.opts.Axis
	if ax.Y.Displayed && p.XMin <= 0 && p.XMax >= 0 {
		if err := g.c.DrawLine(0, p.YMin, 0, p.YMax, ax.Y.Color, ax.Y.Width); err != nil {
			return err
		}
	}
	if ax.X.Displayed && p.YMin <= 0 && p.YMax >= 0 {
		if err := g.c.DrawLine(p.XMin, 0, p.XMax, 0, ax.X.Color, ax.X.Width); err != nil {
			return err
		}
	}
	return nil
}
