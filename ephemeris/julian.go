package ephemeris

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// j2000 is the Julian Day of the J2000.0 epoch, 2000-01-01 12:00 UT.
const j2000 = 2451545.0

// JulianDay converts a civil date to its Julian Day anchored at 12:00 UT.
// Only the calendar date of t is read, in t's own location; the clock
// time is ignored so that every instant of one civil day maps to the
// same JD and the derived quantities stay stable across a day.
func JulianDay(t time.Time) float64 {
	year, month, day := t.Date()
	return satellite.JDay(year, int(month), day, 12, 0, 0)
}

// daysSinceJ2000 returns the (possibly negative, fractional) number of
// days between t's noon-anchored Julian Day and the J2000.0 epoch.
func daysSinceJ2000(t time.Time) float64 {
	return JulianDay(t) - j2000
}
