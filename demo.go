package main

import (
	"math"

	"github.com/susji/mathcanvas/graph"
)

type demo_func func(n int) []graph.Sample

var demos = map[string]demo_func{
	DEMO_SINE:   demo_sine,
	DEMO_SQUARE: demo_square,
}

// demo_sine samples sin(x) over one full period.
func demo_sine(n int) []graph.Sample {
	return demo_sample(n, -math.Pi, math.Pi, math.Sin)
}

// demo_square samples x^2 over [-2, 2].
func demo_square(n int) []graph.Sample {
	return demo_sample(n, -2, 2, func(x float64) float64 { return x * x })
}

func demo_sample(n int, from, to float64, f func(float64) float64) []graph.Sample {
	if n < 2 {
		n = 2
	}
	ret := make([]graph.Sample, n)
	for i := range ret {
		x := from + (to-from)*float64(i)/float64(n-1)
		ret[i] = graph.Sample{X: x, Y: f(x)}
	}
	return ret
}
