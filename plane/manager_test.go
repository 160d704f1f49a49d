package plane

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, w, h int) (*Manager, *int) {
	t.Helper()
	m, err := NewManager("test", w, h)
	require.NoError(t, err)
	redraws := 0
	m.OnRedraw(func() error {
		redraws++
		return nil
	})
	return m, &redraws
}

func TestNewManager(t *testing.T) {
	m, err := NewManager("c", 500, 300)
	require.NoError(t, err)
	assert.Equal(t, Plane{0, 0, 500, 300}, m.Plane())
	assert.True(t, m.RenderOnChange())
	assert.Equal(t, DefaultPxStep, m.PxStep())
	xs, ys := m.Steps()
	assert.Equal(t, 50.0, xs.Size)
	assert.Equal(t, 50.0, ys.Size)

	_, err = NewManager("c", 0, 300)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetPlaneSteps(t *testing.T) {
	m, redraws := newTestManager(t, 500, 300)
	require.NoError(t, m.SetPlane(Plane{0, -0.01, 51, 1.01}))
	xs, ys := m.Steps()
	assert.Equal(t, Step{Size: 10, Pow: 1, Subdivisions: 4}, xs)
	assert.InDelta(t, 0.5, ys.Size, 1e-12)
	assert.Equal(t, 5, ys.Subdivisions)
	assert.Equal(t, 1, *redraws)
}

func TestSetPlaneInvalidKeepsState(t *testing.T) {
	m, redraws := newTestManager(t, 500, 300)
	require.NoError(t, m.SetPlane(Plane{-1, -1, 1, 1}))
	xs, ys := m.Steps()

	err := m.SetPlane(Plane{1, -1, -1, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, Plane{-1, -1, 1, 1}, m.Plane())
	gx, gy := m.Steps()
	assert.Equal(t, xs, gx)
	assert.Equal(t, ys, gy)
	assert.Equal(t, 1, *redraws)
}

func TestRenderOnChange(t *testing.T) {
	m, redraws := newTestManager(t, 200, 200)
	m.SetRenderOnChange(false)
	require.NoError(t, m.SetPlane(Plane{0, 0, 1, 1}))
	require.NoError(t, m.SetXStep(0.5))
	assert.Equal(t, 0, *redraws)

	m.SetRenderOnChange(true)
	require.NoError(t, m.Translate(1, 1))
	assert.Equal(t, 1, *redraws)
	assert.Equal(t, Plane{-1, -1, 0, 0}, m.Plane())
}

func TestRedrawError(t *testing.T) {
	m, err := NewManager("broken", 100, 100)
	require.NoError(t, err)
	boom := errors.New("boom")
	m.OnRedraw(func() error { return boom })
	err = m.SetPlane(Plane{0, 0, 2, 2})
	assert.ErrorIs(t, err, boom)
	// The plane is stored before the hooks run.
	assert.Equal(t, Plane{0, 0, 2, 2}, m.Plane())
}

func TestNotifier(t *testing.T) {
	m, _ := newTestManager(t, 100, 100)
	var got []Plane
	m.SetNotifier(MultiNotifier{
		NotifierFunc(func(id string, p Plane) error {
			assert.Equal(t, "test", id)
			got = append(got, p)
			return nil
		}),
		NotifierFunc(func(string, Plane) error {
			return errors.New("unreachable journal")
		}),
		NotifierFunc(func(string, Plane) error {
			panic("bad notifier")
		}),
	})
	require.NoError(t, m.SetPlane(Plane{0, 0, 3, 3}))
	require.NoError(t, m.SetPlane(Plane{0, 0, 4, 4}))
	assert.Equal(t, []Plane{{0, 0, 3, 3}, {0, 0, 4, 4}}, got)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.PlaneChanged("x", Plane{0, 0, 1, 1}))
}

func TestSquarePlane(t *testing.T) {
	table := []struct {
		name      string
		give      Plane
		preserveX bool
		want      Plane
	}{
		{"preserve_x", Plane{-10, -1, 10, 3}, true, Plane{-10, -2.5, 10, 7.5}},
		{"preserve_y", Plane{0, -5, 1, 5}, false, Plane{0, -5, 20, 5}},
		{"already_square", Plane{-20, -10, 20, 10}, true, Plane{-20, -10, 20, 10}},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%s", n, test.name), func(t *testing.T) {
			m, redraws := newTestManager(t, 400, 200)
			m.SetRenderOnChange(false)
			require.NoError(t, m.SetPlane(test.give))
			m.SetRenderOnChange(true)

			require.NoError(t, m.SquarePlane(test.preserveX))
			got := m.Plane()
			assert.InDelta(t, test.want.XMin, got.XMin, 1e-9)
			assert.InDelta(t, test.want.YMin, got.YMin, 1e-9)
			assert.InDelta(t, test.want.XMax, got.XMax, 1e-9)
			assert.InDelta(t, test.want.YMax, got.YMax, 1e-9)
			xs, ys := m.Steps()
			assert.Equal(t, xs, ys)
			assert.Equal(t, 1, *redraws)
		})
	}
}

func TestResize(t *testing.T) {
	m, redraws := newTestManager(t, 100, 100)
	require.NoError(t, m.SetPlane(Plane{0, 0, 51, 51}))
	require.NoError(t, m.Resize(500, 500))
	w, h := m.Size()
	assert.Equal(t, 500, w)
	assert.Equal(t, 500, h)
	xs, _ := m.Steps()
	assert.Equal(t, 10.0, xs.Size)
	assert.Equal(t, 2, *redraws)

	assert.ErrorIs(t, m.Resize(-1, 10), ErrInvalidArgument)
}

func TestSetPxStep(t *testing.T) {
	m, _ := newTestManager(t, 500, 500)
	require.NoError(t, m.SetPlane(Plane{0, 0, 51, 51}))
	require.NoError(t, m.SetPxStep(PxStep{Min: 50, Max: 50}))
	xs, _ := m.Steps()
	assert.Equal(t, 5.0, xs.Size)
	assert.ErrorIs(t, m.SetPxStep(PxStep{Min: 10, Max: 5}), ErrInvalidArgument)
	assert.Equal(t, PxStep{Min: 50, Max: 50}, m.PxStep())
}

func TestManualSteps(t *testing.T) {
	m, _ := newTestManager(t, 500, 500)
	require.NoError(t, m.SetXStep(0.25))
	require.NoError(t, m.SetYStep(5))
	xs, ys := m.Steps()
	assert.Equal(t, 0.25, xs.Size)
	assert.Equal(t, 5, ys.Subdivisions)
	assert.ErrorIs(t, m.SetXStep(-1), ErrInvalidArgument)

	require.NoError(t, m.AutoStep())
	xs, _ = m.Steps()
	assert.Equal(t, 50.0, xs.Size)
}

func TestManualStepTooSmall(t *testing.T) {
	m, redraws := newTestManager(t, 200, 200)
	require.NoError(t, m.SetPlane(Plane{-2, -2, 2, 2}))
	xs, ys := m.Steps()

	assert.ErrorIs(t, m.SetXStep(1e-6), ErrInvalidArgument)
	assert.ErrorIs(t, m.SetYStep(1e-6), ErrInvalidArgument)
	gx, gy := m.Steps()
	assert.Equal(t, xs, gx)
	assert.Equal(t, ys, gy)
	assert.Equal(t, 1, *redraws)

	require.NoError(t, m.SetXStep(0.001))
}

func TestDefaultCanvasRoundPlane(t *testing.T) {
	m, _ := newTestManager(t, 600, 400)
	require.NoError(t, m.SetPlane(Plane{-3, -2, 3, 2}))
	xs, ys := m.Steps()
	assert.Equal(t, Step{Size: 1, Pow: 0, Subdivisions: 4}, xs)
	assert.Equal(t, Step{Size: 1, Pow: 0, Subdivisions: 4}, ys)
}
