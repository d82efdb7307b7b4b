package ephemeris

import "time"

// AllPositions returns the ecliptic longitudes of every tracked body for
// the civil date of t, in the canonical order of Bodies.
//
// With a precise backend attached the set holds all ten bodies; if the
// backend fails for any body the error is returned as-is and no partial
// set is produced, so a single result never mixes calculation tiers.
// Without a backend the set degrades to the Sun alone.
func (e *Engine) AllPositions(t time.Time) (PositionSet, error) {
	if e.backend == nil {
		return PositionSet{{Body: Sun, Longitude: fallbackSunLongitude(t)}}, nil
	}
	jd := JulianDay(t)
	set := make(PositionSet, 0, len(Bodies))
	for _, body := range Bodies {
		lon, err := e.backend.Longitude(jd, body)
		if err != nil {
			return nil, err
		}
		set = append(set, BodyPosition{Body: body, Longitude: Normalize(lon)})
	}
	return set, nil
}

// BodyLongitude returns the ecliptic longitude of a single body for the
// civil date of t. In fallback mode only the Sun is available; requests
// for any other body return ErrNoBackend so callers can substitute their
// own approximation or omit the value.
func (e *Engine) BodyLongitude(t time.Time, b Body) (float64, error) {
	if e.backend != nil {
		lon, err := e.backend.Longitude(JulianDay(t), b)
		if err != nil {
			return 0, err
		}
		return Normalize(lon), nil
	}
	if b == Sun {
		return fallbackSunLongitude(t), nil
	}
	return 0, ErrNoBackend
}
