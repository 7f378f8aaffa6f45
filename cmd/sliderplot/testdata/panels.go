package main

// Plot returns two surfaces: a line on the first, a scaled line and a step
// function on the second. k = 0 divides by zero, which leaves the view as it
// was.
func Plot(slope float64, k int) [][][][]float64 {
	x := []float64{1, 2, 3, 4, 5}
	a := make([]float64, len(x))
	b := make([]float64, len(x))
	c := make([]float64, len(x))
	for i, v := range x {
		a[i] = slope * v
		b[i] = 2 * slope * v
		c[i] = float64(int(v) / k)
	}
	return [][][][]float64{
		{{x, a}},
		{{x, b}, {x, c}},
	}
}
