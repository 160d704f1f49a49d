package grid

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/mathcanvas/canvas"
	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
	"github.com/susji/mathcanvas/surface/surfacetest"
)

func newGrid(t *testing.T, w, h int, opts Options, p plane.Plane) (*Grid, *surfacetest.Recorder) {
	t.Helper()
	rec := surfacetest.New(w, h)
	c, err := canvas.New(rec, "grid", canvas.Options{Width: w, Height: h})
	require.NoError(t, err)
	g, err := New(c, opts)
	require.NoError(t, err)
	rec.Reset()
	require.NoError(t, c.SetPlane(p))
	return g, rec
}

func unsquared() Options {
	o := DefaultOptions()
	o.Square = false
	return o
}

func firstIndex(ops []surfacetest.Op, k surfacetest.Kind) int {
	for i, o := range ops {
		if o.Kind == k {
			return i
		}
	}
	return -1
}

func lastIndex(ops []surfacetest.Op, k surfacetest.Kind) int {
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == k {
			return i
		}
	}
	return -1
}

func TestDrawOrder(t *testing.T) {
	_, rec := newGrid(t, 200, 200, unsquared(), plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})

	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, surfacetest.KindClear, rec.Ops[0].Kind)
	assert.Equal(t, []string{"-2", "-1", "1", "-2", "-1", "1", "0"}, rec.Texts())
	assert.Less(t, lastIndex(rec.Ops, surfacetest.KindText), firstIndex(rec.Ops, surfacetest.KindLine))

	lines := rec.Filter(surfacetest.KindLine)
	// 5 major lines with 3 minor lines each per direction, then 2 axes.
	require.Len(t, lines, 42)

	def := DefaultOptions()
	first := lines[0]
	assert.Equal(t, -49.5, first.Coords[0])
	assert.Equal(t, first.Coords[0], first.Coords[2])
	assert.Equal(t, def.GridLines.X.Color, first.Color)
	assert.Equal(t, 0.5, first.Width)
	for _, minor := range lines[1:4] {
		assert.Equal(t, def.SubGridLines.X.Color, minor.Color)
		assert.Equal(t, minor.Coords[0], minor.Coords[2])
	}
	// Horizontal lines follow the vertical ones.
	assert.Equal(t, lines[20].Coords[1], lines[20].Coords[3])
	assert.NotEqual(t, lines[20].Coords[0], lines[20].Coords[2])

	yAxis, xAxis := lines[40], lines[41]
	assert.Equal(t, []float64{100.5, 200.5, 100.5, 0.5}, yAxis.Coords)
	assert.Equal(t, []float64{0.5, 100.5, 200.5, 100.5}, xAxis.Coords)
	assert.Equal(t, def.Axis.X.Color, xAxis.Color)
	assert.Equal(t, 1.0, xAxis.Width)
}

func TestLabels(t *testing.T) {
	_, rec := newGrid(t, 200, 200, unsquared(), plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})
	texts := rec.Filter(surfacetest.KindText)
	require.Len(t, texts, 7)

	// "-2" on the x axis sits at the left border and is clamped.
	assert.Equal(t, 10.0, texts[0].Coords[0])
	assert.Equal(t, surface.AlignLeft, texts[0].Style.Align)
	assert.Equal(t, canvas.DefaultInBoundColor, texts[0].Color)

	one := texts[2]
	assert.Equal(t, 150.5, one.Coords[0])
	assert.Equal(t, surface.AlignCenter, one.Style.Align)
	assert.Equal(t, surface.BaselineTop, one.Style.Baseline)
	assert.Equal(t, color.Black, one.Color)
	assert.Equal(t, surface.DefaultFont, one.Style.Font)

	yOne := texts[5]
	assert.Equal(t, surface.AlignRight, yOne.Style.Align)
	assert.Equal(t, surface.BaselineMiddle, yOne.Style.Baseline)

	zero := texts[6]
	assert.Equal(t, surface.AlignRight, zero.Style.Align)
	assert.Equal(t, surface.BaselineTop, zero.Style.Baseline)
}

func TestFractionalLabels(t *testing.T) {
	_, rec := newGrid(t, 500, 300, unsquared(), plane.Plane{XMin: 0, YMin: -0.01, XMax: 51, YMax: 1.01})
	texts := rec.Texts()
	assert.Equal(t, []string{"10", "20", "30", "40", "50", "0.5", "1"}, texts)
}

func TestAxesOutOfRange(t *testing.T) {
	_, rec := newGrid(t, 200, 200, unsquared(), plane.Plane{XMin: 1, YMin: 1, XMax: 5, YMax: 5})
	def := DefaultOptions()
	for _, l := range rec.Filter(surfacetest.KindLine) {
		assert.NotEqual(t, def.Axis.X.Color, l.Color)
	}
	assert.NotContains(t, rec.Texts(), "0")
}

func TestToggles(t *testing.T) {
	table := []struct {
		name  string
		set   map[string]string
		lines int
	}{
		{"defaults", nil, 42},
		{"no_major", map[string]string{"gridlines.displayed": "false"}, 42},
		{"no_major_x", map[string]string{"gridLines.verti.displayed": "false"}, 42},
		{"no_minor", map[string]string{"subgridlines_displayed": "false"}, 12},
		{"no_axis", map[string]string{"axis_displayed": "false"}, 40},
		{"no_y_axis", map[string]string{"axis.y.displayed": "false"}, 41},
		{"nothing", map[string]string{
			"gridlines_displayed": "false", "subgridlines_displayed": "false", "axis_displayed": "false",
		}, 0},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%s", n, test.name), func(t *testing.T) {
			opts := unsquared()
			for k, v := range test.set {
				require.NoError(t, opts.Set(k, v))
			}
			_, rec := newGrid(t, 200, 200, opts, plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})
			assert.Len(t, rec.Filter(surfacetest.KindLine), test.lines)
		})
	}
}

func TestMinorColorsPerDirection(t *testing.T) {
	opts := unsquared()
	require.NoError(t, opts.Set("subGridLines.horiz.lineColor", "red"))
	_, rec := newGrid(t, 200, 200, opts, plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})
	lines := rec.Filter(surfacetest.KindLine)
	red := surface.MustParseColor("red")
	for _, l := range lines[:20] {
		assert.NotEqual(t, red, l.Color)
	}
	for _, l := range lines[21:24] {
		assert.Equal(t, red, l.Color)
	}
}

func TestRedrawOnChange(t *testing.T) {
	g, rec := newGrid(t, 200, 200, unsquared(), plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})
	m := g.Canvas().Manager()

	rec.Reset()
	require.NoError(t, m.Translate(1, 0))
	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, surfacetest.KindClear, rec.Ops[0].Kind)

	rec.Reset()
	m.SetRenderOnChange(false)
	require.NoError(t, m.Translate(1, 0))
	assert.Empty(t, rec.Ops)
	require.NoError(t, g.Draw())
	assert.NotEmpty(t, rec.Ops)
}

func TestTooManyLines(t *testing.T) {
	g, rec := newGrid(t, 200, 200, unsquared(), plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})
	m := g.Canvas().Manager()
	xs, _ := m.Steps()

	rec.Reset()
	err := m.SetXStep(1e-6)
	assert.ErrorIs(t, err, plane.ErrInvalidArgument)
	got, _ := m.Steps()
	assert.Equal(t, xs, got)
	assert.Empty(t, rec.Ops)

	_, err = lineValues(-2, 2, 1e-6)
	assert.ErrorIs(t, err, plane.ErrInvalidArgument)
}

func TestLayoutBeforeClear(t *testing.T) {
	g, rec := newGrid(t, 200, 200, unsquared(), plane.Plane{XMin: -2, YMin: -2, XMax: 2, YMax: 2})
	l, err := g.layout()
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -1, 0, 1}, l.xLabels)
	assert.Equal(t, []float64{-3, -2, -1, 0, 1}, l.xLines)

	rec.Reset()
	require.NoError(t, g.Draw())
	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, surfacetest.KindClear, rec.Ops[0].Kind)
	assert.Len(t, rec.Filter(surfacetest.KindClear), 1)
}

func TestNewSquares(t *testing.T) {
	rec := surfacetest.New(400, 200)
	c, err := canvas.New(rec, "sq", canvas.Options{Width: 400, Height: 200})
	require.NoError(t, err)
	_, err = New(c, DefaultOptions())
	require.NoError(t, err)
	xs, ys := c.Manager().Steps()
	assert.Equal(t, xs, ys)
	assert.Equal(t, surfacetest.KindClear, rec.Ops[0].Kind)

	bad := DefaultOptions()
	bad.PxStep = plane.PxStep{Min: 10, Max: 1}
	_, err = New(c, bad)
	assert.ErrorIs(t, err, plane.ErrInvalidArgument)
}
