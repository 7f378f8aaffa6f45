package main

import "math"

var Defaults = map[string]float64{
	"amplitude": 1,
	"frequency": math.Pi,
	"phase":     math.Pi / 2,
}

// Plot draws one period of a sine wave sampled at 1000 points.
func Plot(amplitude, frequency, phase float64) [][]float64 {
	const n = 1000
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / (n - 1)
		y[i] = amplitude * math.Sin(frequency*x[i]+phase)
	}
	return [][]float64{x, y}
}
