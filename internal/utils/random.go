// Package utils holds the game's sources of randomness.
package utils

import "math/rand/v2"

// RandomFloat draws from [0.0, 1.0). Casino and case rolls use it.
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // gameplay odds, not key material
}

// RandomInt draws uniformly from [lo, hi]. An inverted range yields lo.
func RandomInt(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rand.IntN(hi-lo+1) //nolint:gosec // gameplay odds, not key material
}
