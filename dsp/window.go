package dsp

import "math"

// RaisedCosineWindow returns w(i, n) = 0.5 - 0.5*cos(2*pi*(i+0.5)/n), the
// symmetric raised-cosine window used to taper FFT tiles before transform.
// Two adjacent half-overlapping windows sum to 1 exactly, so overlap-add
// reconstruction needs no inverse window.
func RaisedCosineWindow(i, n int) float64 {
	return 0.5 - 0.5*math.Cos((2*math.Pi*(float64(i)+0.5))/float64(n))
}

// window1D returns the 1D raised-cosine window table of length n.
func window1D(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = RaisedCosineWindow(i, n)
	}
	return w
}
