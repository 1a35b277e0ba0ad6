// Package pricing computes the quoted total for a reservation. The
// quote is fixed at creation; later rate changes never reprice an
// existing reservation.
package pricing

import (
	"math"
	"time"
)

// Nights returns the number of nights spanned by [start, end], rounding
// partial days up. Equal or inverted bounds count as zero.
func Nights(start, end time.Time) int {
	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Total returns the price for the stay at the cabin's nightly rate.
func Total(start, end time.Time, nightlyRate float64) float64 {
	return float64(Nights(start, end)) * nightlyRate
}
