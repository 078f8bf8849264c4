// Package round rounds scores to a fixed number of decimal places.
package round

import (
	"math"
	"strconv"
)

// To rounds x to the given number of decimal places.
// The result is the decimal nearest to the exact binary value of x, with exact
// halves going to the even digit, so 2.675 (stored as 2.67499...) rounds to 2.67
// and 0.125 rounds to 0.12. Non-finite values are returned unchanged.
func To(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	if rounded == 0 {
		// drop the sign of -0
		return 0
	}
	return rounded
}
