package ephemeris

import "math"

// Normalize wraps an angle in degrees into [0, 360). It is safe for
// negative inputs, which math.Mod alone is not.
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// AngularDistance returns the shortest separation between two ecliptic
// longitudes, in [0, 180] degrees. It is symmetric in its arguments and
// measures across the 0/360 wrap, so 350 and 10 are 20 degrees apart.
func AngularDistance(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	return math.Min(diff, 360-diff)
}

// signedArc returns the shortest signed arc from a to b in [-180, 180),
// positive when b lies ahead of a in increasing longitude.
func signedArc(a, b float64) float64 {
	return math.Mod(b-a+540, 360) - 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
