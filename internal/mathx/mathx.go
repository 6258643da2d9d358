// Package mathx holds the integer coordinate primitives shared by terrain and
// world code. Every tile, chunk and local conversion goes through FloorDiv and
// Mod so negative coordinates behave the same everywhere.
package mathx

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a remainder in [0, m) for positive m.
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
