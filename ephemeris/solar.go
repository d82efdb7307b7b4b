package ephemeris

import (
	"math"
	"time"
)

// SunLongitude returns the Sun's geocentric ecliptic longitude for the
// civil date of t, in [0, 360) degrees. With a precise backend attached
// the value comes from the backend and any backend error is returned
// unchanged; otherwise a closed-form approximation around the J2000.0
// epoch is used, accurate to roughly a hundredth of a degree across
// nearby decades.
func (e *Engine) SunLongitude(t time.Time) (float64, error) {
	if e.backend != nil {
		lon, err := e.backend.Longitude(JulianDay(t), Sun)
		if err != nil {
			return 0, err
		}
		return Normalize(lon), nil
	}
	return fallbackSunLongitude(t), nil
}

// fallbackSunLongitude is the closed-form solar position: mean longitude
// plus the equation of center, ignoring nutation and aberration.
func fallbackSunLongitude(t time.Time) float64 {
	d := daysSinceJ2000(t)
	meanLon := Normalize(280.46646 + 0.9856474*d)
	meanAnom := radians(Normalize(357.52911 + 0.9856003*d))
	center := 1.9146*math.Sin(meanAnom) +
		0.0200*math.Sin(2*meanAnom) +
		0.0003*math.Sin(3*meanAnom)
	return Normalize(meanLon + center)
}
