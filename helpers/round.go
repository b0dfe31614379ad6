package helpers

import "math"

// Round1 rounds to one decimal place using round-half-up
// (ties away from zero for positive input, eg. 4.65 => 4.7).
// string-formatting tricks are locale-dependent, so this stays numeric
func Round1(value float64) float64 {
	return math.Floor(value*10+0.5) / 10
}
