package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/susji/mathcanvas/plane"
)

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ParseSamples converts loosely typed pairs, as decoded from JSON or handed
// over from JavaScript, into samples. Every pair must hold exactly two
// numbers.
func ParseSamples(raw [][]any) ([]Sample, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no samples", plane.ErrInvalidArgument)
	}
	ret := make([]Sample, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf(
				"%w: sample %d has %d values, want 2", plane.ErrInvalidArgument, i, len(pair))
		}
		x, okx := number(pair[0])
		y, oky := number(pair[1])
		if !okx || !oky {
			return nil, fmt.Errorf(
				"%w: sample %d (%v, %v) is not numeric", plane.ErrInvalidArgument, i, pair[0], pair[1])
		}
		ret[i] = Sample{X: x, Y: y}
	}
	if err := validate(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// ParseSample reads a sample written as "x,y".
func ParseSample(s string) (Sample, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Sample{}, fmt.Errorf("%w: sample %q is not x,y", plane.ErrInvalidArgument, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: sample %q: %v", plane.ErrInvalidArgument, s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: sample %q: %v", plane.ErrInvalidArgument, s, err)
	}
	ret := Sample{X: x, Y: y}
	if err := validate([]Sample{ret}); err != nil {
		return Sample{}, err
	}
	return ret, nil
}
