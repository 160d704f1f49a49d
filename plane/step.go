package plane

import (
	"fmt"
	"math"
)

// PxStep bounds the preferred pixel distance between two major grid lines.
type PxStep struct {
	Min, Max float64
}

var DefaultPxStep = PxStep{Min: 100, Max: 100}

func (px PxStep) Validate() error {
	if !finite(px.Min, px.Max) || px.Min <= 0 || px.Max <= 0 {
		return fmt.Errorf("%w: pixel steps %v must be positive", ErrInvalidArgument, px)
	}
	if px.Min > px.Max {
		return fmt.Errorf("%w: pixel step min %v > max %v", ErrInvalidArgument, px.Min, px.Max)
	}
	return nil
}

// Step is the chosen spacing of major grid lines along one axis.
type Step struct {
	// Size is the distance between two major grid lines in plane units.
	Size float64
	// Pow is the power-of-ten hint used when rounding labels.
	Pow int
	// Subdivisions is the number of minor intervals per major interval.
	Subdivisions int
}

// Minor returns the distance between two minor grid lines.
func (s Step) Minor() float64 {
	if s.Subdivisions <= 0 {
		return s.Size
	}
	return s.Size / float64(s.Subdivisions)
}

// The step sequence is ..., 0.1, 0.2, 0.5, 1, 2, 5, 10, 20, 50, ...
var stepBases = [3]float64{1, 2, 5}

// Enough to walk over the whole float64 exponent range.
const maxStepIndex = 3 * 330

func floorDiv(i, n int) int {
	q := i / n
	if i%n != 0 && i < 0 {
		q--
	}
	return q
}

func floorMod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// stepAt walks 1, 2, 5, 10, 20, ... for i >= 0.
func stepAt(i int) float64 {
	return stepBases[floorMod(i, 3)] * math.Pow10(floorDiv(i, 3))
}

// reciprocalStepAt walks 1, 0.5, 0.2, 0.1, 0.05, ... for i >= 0 and continues
// the same sequence upwards (2, 5, 10, ...) for negative i.
func reciprocalStepAt(i int) float64 {
	k := floorDiv(i, 3)
	b := stepBases[floorMod(i, 3)]
	if k >= 0 {
		return 1 / (b * math.Pow10(k))
	}
	return math.Pow10(-k) / b
}

// subdivisionsFor returns 5 for steps with a leading digit of 5 and 4 for
// everything else.
func subdivisionsFor(size float64) int {
	lead := size / math.Pow10(int(math.Floor(math.Log10(size)+1e-9)))
	if math.Abs(lead-5) < 1e-6 {
		return 5
	}
	return 4
}

// AutoStep picks a step from the 1-2-5 sequence for an axis showing an
// interval of plane units over length pixels, aiming at major grid lines
// px.Min to px.Max pixels apart.
func AutoStep(interval float64, length int, px PxStep) (Step, error) {
	if !finite(interval) || interval <= 0 {
		return Step{}, fmt.Errorf("%w: interval %v must be positive", ErrInvalidArgument, interval)
	}
	if length <= 0 {
		return Step{}, fmt.Errorf("%w: axis length %d must be positive", ErrInvalidArgument, length)
	}
	if err := px.Validate(); err != nil {
		return Step{}, err
	}
	maxLines := float64(length) / px.Min
	minLines := float64(length) / px.Max

	if interval > minLines {
		// Largest step which still leaves more than maxLines lines.
		i := 0
		for i < maxStepIndex && maxLines*stepAt(i+1) < interval {
			i++
		}
		size := stepAt(i)
		return Step{Size: size, Pow: floorDiv(i, 3), Subdivisions: subdivisionsFor(size)}, nil
	}

	// Exactly minLines lines of size 1.
	if interval == minLines {
		return Step{Size: 1, Pow: 0, Subdivisions: subdivisionsFor(1)}, nil
	}

	// Shrink the step until there are at least minLines lines and then back
	// off by one step.
	i := 0
	step := 1.0
	for i < maxStepIndex && minLines > interval/step {
		step = reciprocalStepAt(i)
		i++
	}
	i -= 2
	size := reciprocalStepAt(i)
	return Step{Size: size, Pow: floorDiv(i, 3), Subdivisions: subdivisionsFor(size)}, nil
}

// MaxGridLines caps the number of grid lines per direction in one drawing.
const MaxGridLines = 10000

// CheckLines fails when an axis showing interval plane units would need more
// than MaxGridLines lines of the given step. Two lines of slack cover the
// partial intervals at both ends.
func CheckLines(interval, size float64) error {
	if n := interval/size + 2; n > MaxGridLines {
		return fmt.Errorf("%w: step %v gives %.0f grid lines", ErrInvalidArgument, size, n)
	}
	return nil
}

// NewStep builds a step of a manually chosen size, deriving the label
// rounding hint and subdivisions the same way AutoStep does.
func NewStep(size float64) (Step, error) {
	if !finite(size) || size <= 0 {
		return Step{}, fmt.Errorf("%w: step %v must be positive", ErrInvalidArgument, size)
	}
	var pow int
	if size >= 1 {
		pow = int(math.Floor(math.Log10(size) + 1e-9))
	} else {
		pow = int(math.Floor(-math.Log10(size) + 1e-9))
	}
	return Step{Size: size, Pow: pow, Subdivisions: subdivisionsFor(size)}, nil
}
