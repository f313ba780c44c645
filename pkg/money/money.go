package money

import "math"

// Round2 rounds to the nearest cent. All ledger amounts are stored at
// two decimal places; every derived amount goes through here before it
// is persisted or compared.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
