package plane

import (
	"math"
	"strconv"
)

// FormatValue renders a grid label. Whole numbers are printed without a
// fractional part, everything else is rounded to pow+1 decimals.
func FormatValue(v float64, pow int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v == math.Trunc(v) {
		if v == 0 {
			v = 0
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	decimals := pow + 1
	if decimals < 0 {
		decimals = 0
	}
	scale := math.Pow10(decimals)
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
