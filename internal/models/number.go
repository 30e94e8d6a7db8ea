// internal/models/number.go
package models

import (
	"math"
	"strconv"
)

// RoundHalfUp rounds to the nearest integer with halves rounded up.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// RoundTenth rounds half-up to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// FormatNumber prints v without trailing zeros: 35, 35.5, 4.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
