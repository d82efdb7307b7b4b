// Package lunar derives the Moon's state for a calendar date: ecliptic
// longitude, zodiac sign, phase, and illuminated fraction. Position
// comes from the engine's precise backend when one is attached; without
// it the mean-longitude approximation stands in, which is coarse (a few
// degrees) but good enough to name the phase.
package lunar

import (
	"errors"
	"math"
	"time"

	"github.com/celestialworks/almanac/ephemeris"
)

const j2000 = 2451545.0

// Phase names, one per 45° octant of the Sun–Moon elongation.
var phaseNames = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// FallbackLongitude returns the Moon's mean ecliptic longitude for the
// civil date of t. The mean motion ignores the Moon's large periodic
// terms, so expect errors of several degrees.
func FallbackLongitude(t time.Time) float64 {
	d := ephemeris.JulianDay(t) - j2000
	return ephemeris.Normalize(218.316 + 13.176396*d)
}

// PhaseFromAngle names the phase for a Sun–Moon elongation in degrees,
// measured from the Sun to the Moon in increasing longitude.
func PhaseFromAngle(angle float64) string {
	idx := int(ephemeris.Normalize(angle)/45) % 8
	return phaseNames[idx]
}

// Illumination returns the sunlit fraction of the disc, 0 at new and 1
// at full, for a Sun–Moon elongation in degrees.
func Illumination(angle float64) float64 {
	return (1 - math.Cos(angle*math.Pi/180)) / 2
}

// Snapshot is the Moon's state for one date.
type Snapshot struct {
	Longitude    float64
	Sign         ephemeris.Sign
	PhaseAngle   float64
	Phase        string
	Illumination float64
	Approximate  bool
}

// ForDay assembles the snapshot from the engine's best available data.
// In fallback mode the mean longitude substitutes for the missing
// backend and the snapshot is marked approximate; any other backend
// error is returned as-is.
func ForDay(e *ephemeris.Engine, t time.Time) (Snapshot, error) {
	sun, err := e.SunLongitude(t)
	if err != nil {
		return Snapshot{}, err
	}
	moon, err := e.BodyLongitude(t, ephemeris.Moon)
	approximate := false
	if err != nil {
		if !errors.Is(err, ephemeris.ErrNoBackend) {
			return Snapshot{}, err
		}
		moon = FallbackLongitude(t)
		approximate = true
	}

	angle := ephemeris.Normalize(moon - sun)
	return Snapshot{
		Longitude:    moon,
		Sign:         ephemeris.SignFor(moon),
		PhaseAngle:   angle,
		Phase:        PhaseFromAngle(angle),
		Illumination: Illumination(angle),
		Approximate:  approximate,
	}, nil
}
