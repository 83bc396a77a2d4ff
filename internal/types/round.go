package types

import "math"

// Round rounds v to the given number of decimal places, halves away from zero
func Round(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(precision))
	r := math.Round(v*scale) / scale
	if r == 0 {
		// drop the sign of negative zero
		return 0
	}
	return r
}
