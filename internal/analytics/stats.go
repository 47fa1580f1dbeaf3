package analytics

import "math"

// Round2 rounds a percentage to 2 decimal places. Applied at computation
// time, not display time.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ratio returns a/b*100 with the uniform zero-denominator policy: 0, not
// NaN, not an error.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return Round2(a / b * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev is the sample standard deviation (n-1 denominator), 0 for
// fewer than two values. Matches how the reporting formulas have always
// read spread.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}
