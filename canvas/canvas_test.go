package canvas

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
	"github.com/susji/mathcanvas/surface/surfacetest"
)

func fixed(w, h int) Options {
	return Options{Width: w, Height: h}
}

func newCanvas(t *testing.T, w, h int) (*Canvas, *surfacetest.Recorder) {
	t.Helper()
	rec := surfacetest.New(1, 1)
	c, err := New(rec, "test", fixed(w, h))
	require.NoError(t, err)
	return c, rec
}

func TestNew(t *testing.T) {
	rec := surfacetest.New(10, 10)
	c, err := New(rec, "", fixed(300, 200))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID(), "canvas-"))
	w, h := c.Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, plane.Plane{XMin: 0, YMin: 0, XMax: 300, YMax: 200}, c.Plane())
	assert.Equal(t, c.ID(), c.Manager().ID())
}

func TestNewFitParent(t *testing.T) {
	rec := surfacetest.New(10, 10)
	rec.ParentW, rec.ParentH = 640, 480
	c, err := New(rec, "fit", DefaultOptions())
	require.NoError(t, err)
	w, h := c.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	_, err = New(surfacetest.New(10, 10), "orphan", DefaultOptions())
	assert.ErrorIs(t, err, plane.ErrMissingPrecondition)

	_, err = New(nil, "", DefaultOptions())
	assert.ErrorIs(t, err, plane.ErrMissingPrecondition)
}

func TestSetSize(t *testing.T) {
	c, rec := newCanvas(t, 100, 100)
	require.NoError(t, c.SetSize(500, 300))
	mw, mh := c.Manager().Size()
	assert.Equal(t, 500, mw)
	assert.Equal(t, 300, mh)
	assert.Equal(t, 500, rec.W)

	assert.ErrorIs(t, c.SetSize(0, 10), plane.ErrInvalidArgument)
	assert.ErrorIs(t, c.SetSizeToParent(), plane.ErrMissingPrecondition)

	rec.ParentW, rec.ParentH = 800, 600
	require.NoError(t, c.SetSizeFromParent(func(w, h int) (int, int) { return w / 2, h / 2 }))
	assert.Equal(t, 400, rec.W)
	assert.Equal(t, 300, rec.H)
}

func TestDrawLine(t *testing.T) {
	c, rec := newCanvas(t, 100, 100)
	require.NoError(t, c.DrawLine(0, 0, 100, 100, nil, 0))
	require.Len(t, rec.Ops, 1)
	op := rec.Ops[0]
	assert.Equal(t, surfacetest.KindLine, op.Kind)
	assert.Equal(t, []float64{0.5, 100.5, 100.5, 0.5}, op.Coords)
	assert.Equal(t, color.Black, op.Color)
	assert.Equal(t, 1.0, op.Width)
}

func TestFillRect(t *testing.T) {
	c, rec := newCanvas(t, 100, 100)
	red := color.NRGBA{R: 255, A: 255}
	require.NoError(t, c.FillRect(10, 10, 20, 30, red))
	require.NoError(t, c.FillRect(30, 40, -20, -30, red))
	rects := rec.Filter(surfacetest.KindRect)
	require.Len(t, rects, 2)
	for _, r := range rects {
		assert.Equal(t, []float64{10.5, 60.5, 20, 30}, r.Coords)
		assert.Equal(t, red, r.Color)
	}
}

func TestCirc(t *testing.T) {
	c, rec := newCanvas(t, 100, 100)
	require.NoError(t, c.SetPlane(plane.Plane{XMin: -1, YMin: -1, XMax: 1, YMax: 1}))
	require.NoError(t, c.Circ(0, 0, 3, 0, 1, nil, true, true))
	arcs := rec.Filter(surfacetest.KindArc)
	require.Len(t, arcs, 1)
	assert.Equal(t, []float64{50.5, 50.5, 3, 0, 1}, arcs[0].Coords)
	assert.True(t, arcs[0].CCW)
	assert.True(t, arcs[0].Fill)

	assert.ErrorIs(t, c.Circ(0, 0, -3, 0, 1, nil, false, false), plane.ErrInvalidArgument)
}

func TestFillTextStayInBound(t *testing.T) {
	table := []struct {
		name     string
		x, y     float64
		wantX    float64
		wantY    float64
		align    surface.Align
		baseline surface.Baseline
		grey     bool
	}{
		{"inside", 50, 50, 50.5, 50.5, surface.AlignCenter, surface.BaselineMiddle, false},
		{"left", -5, 50, 10, 50.5, surface.AlignLeft, surface.BaselineMiddle, true},
		{"right", 150, 50, 90, 50.5, surface.AlignRight, surface.BaselineMiddle, true},
		{"above", 50, 150, 50.5, 10, surface.AlignCenter, surface.BaselineTop, true},
		{"below", 50, -50, 50.5, 95, surface.AlignCenter, surface.BaselineBottom, true},
		{"bottom_edge", 50, 2, 50.5, 95, surface.AlignCenter, surface.BaselineBottom, false},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%s", n, test.name), func(t *testing.T) {
			c, rec := newCanvas(t, 100, 100)
			err := c.FillText("7", test.x, test.y, TextOptions{
				Align:       surface.AlignCenter,
				Baseline:    surface.BaselineMiddle,
				StayInBound: true,
			})
			require.NoError(t, err)
			texts := rec.Filter(surfacetest.KindText)
			require.Len(t, texts, 1)
			op := texts[0]
			assert.Equal(t, []float64{test.wantX, test.wantY}, op.Coords)
			assert.Equal(t, test.align, op.Style.Align)
			assert.Equal(t, test.baseline, op.Style.Baseline)
			if test.grey {
				assert.Equal(t, DefaultInBoundColor, op.Color)
			} else {
				assert.Equal(t, color.Black, op.Color)
			}
			assert.Equal(t, surface.DefaultFont, op.Style.Font)
		})
	}
}

func TestFillTextOutside(t *testing.T) {
	c, rec := newCanvas(t, 100, 100)
	opts := TextOptions{StayInBound: true, Outside: true, InBoundColor: color.White}

	// Without overlay support the text is clamped instead.
	require.NoError(t, c.FillText("-3", -5, 50, opts))
	require.Len(t, rec.Filter(surfacetest.KindText), 1)
	assert.Empty(t, rec.Filter(surfacetest.KindOverlay))

	rec.Reset()
	rec.OverlayOK = true
	require.NoError(t, c.FillText("-3", -5, 50, opts))
	ov := rec.Filter(surfacetest.KindOverlay)
	require.Len(t, ov, 1)
	assert.Equal(t, []float64{-10, 50.5}, ov[0].Coords)
	assert.Equal(t, surface.AlignRight, ov[0].Style.Align)
	assert.Equal(t, color.White, ov[0].Color)
	assert.Empty(t, rec.Filter(surfacetest.KindText))
}

func TestFillTextUnbounded(t *testing.T) {
	c, rec := newCanvas(t, 100, 100)
	require.NoError(t, c.FillText("far", 500, 500, TextOptions{}))
	texts := rec.Filter(surfacetest.KindText)
	require.Len(t, texts, 1)
	assert.Equal(t, []float64{500.5, -399.5}, texts[0].Coords)
}
