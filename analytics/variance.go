package analytics

import "math"

// Variance is the population variance of the sample, 0 for fewer than two
// values.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSquares := 0.0
	for _, v := range values {
		sumSquares += (v - mean) * (v - mean)
	}
	return sumSquares / float64(len(values))
}

// StdDev is the population standard deviation, 0 for fewer than two values.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// levelsOf widens mood levels into a float sample for the variance helpers.
func levelsOf(levels []int) []float64 {
	out := make([]float64, len(levels))
	for i, l := range levels {
		out[i] = float64(l)
	}
	return out
}
