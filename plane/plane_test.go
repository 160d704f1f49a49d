package plane

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarMap(t *testing.T) {
	table := []struct {
		give    float64
		in, out [2]float64
		want    float64
	}{
		{0, [2]float64{0, 10}, [2]float64{0, 100}, 0},
		{10, [2]float64{0, 10}, [2]float64{0, 100}, 100},
		{5, [2]float64{0, 10}, [2]float64{100, 0}, 50},
		{-1, [2]float64{0, 10}, [2]float64{0, 100}, -10},
		{3, [2]float64{2, 4}, [2]float64{-1, 1}, 0},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%v", n, test.give), func(t *testing.T) {
			got, err := ScalarMap(test.give, test.in, test.out)
			require.NoError(t, err)
			assert.InDelta(t, test.want, got, 1e-12)
		})
	}
}

func TestScalarMapErrors(t *testing.T) {
	_, err := ScalarMap(1, [2]float64{3, 3}, [2]float64{0, 1})
	assert.ErrorIs(t, err, ErrDegenerateInterval)

	_, err = ScalarMap(math.NaN(), [2]float64{0, 1}, [2]float64{0, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ScalarMap(0, [2]float64{0, math.Inf(1)}, [2]float64{0, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToPixel(t *testing.T) {
	p := Plane{XMin: 0, YMin: 0, XMax: 10, YMax: 10}
	table := []struct {
		x, y   float64
		px, py float64
	}{
		{0, 0, 0.5, 100.5},
		{10, 10, 100.5, 0.5},
		{5, 2.5, 50.5, 75.5},
		{2.34, 7.77, 23.5, 22.5},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%v_%v", n, test.x, test.y), func(t *testing.T) {
			px, py, err := p.ToPixel(test.x, test.y, 100, 100)
			require.NoError(t, err)
			assert.Equal(t, test.px, px)
			assert.Equal(t, test.py, py)
		})
	}
}

func TestToPixelInvertsY(t *testing.T) {
	p := Plane{XMin: -5, YMin: -5, XMax: 5, YMax: 5}
	_, low, err := p.ToPixel(0, -4, 200, 200)
	require.NoError(t, err)
	_, high, err := p.ToPixel(0, 4, 200, 200)
	require.NoError(t, err)
	assert.Greater(t, low, high)
}

func TestPlaneValidate(t *testing.T) {
	table := []struct {
		give []float64
		ok   bool
	}{
		{[]float64{0, 0, 1, 1}, true},
		{[]float64{-3, -2, 4, -1}, true},
		{[]float64{1, 0, 0, 1}, false},
		{[]float64{0, 1, 1, 1}, false},
		{[]float64{0, 0, math.NaN(), 1}, false},
		{[]float64{0, 0, 1}, false},
		{[]float64{0, 0, 1, 1, 1}, false},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%v", n, test.give), func(t *testing.T) {
			_, err := FromSlice(test.give)
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestPlaneString(t *testing.T) {
	p := Plane{XMin: 0, YMin: -0.01, XMax: 51, YMax: 1.015}
	assert.Equal(t, "[0,-0.01,51,1.015]", p.String())
}

func TestFormatValue(t *testing.T) {
	table := []struct {
		v    float64
		pow  int
		want string
	}{
		{3, 0, "3"},
		{-20, 1, "-20"},
		{0.5, 0, "0.5"},
		{0.123, 1, "0.12"},
		{1.5000000000000002, 0, "1.5"},
		{-0.0001, 1, "0"},
		{0, 3, "0"},
	}
	for n, test := range table {
		t.Run(fmt.Sprintf("%d_%v", n, test.v), func(t *testing.T) {
			assert.Equal(t, test.want, FormatValue(test.v, test.pow))
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidArgument, ErrDegenerateInterval))
	assert.False(t, errors.Is(ErrMissingPrecondition, ErrInvalidArgument))
}
