package ephemeris

import "math"

// AspectDefinition describes a named angular relationship between two
// bodies and the orb, the tolerance window within which a separation
// still counts as forming the aspect.
type AspectDefinition struct {
	Name  string
	Angle float64
	Orb   float64
	Glyph string
}

// MajorAspects is the default aspect set. Definitions are scanned in
// declared order and the first match wins, so where orbs overlap the
// earlier definition takes precedence.
var MajorAspects = []AspectDefinition{
	{Name: "Conjunction", Angle: 0, Orb: 8, Glyph: "☌"},
	{Name: "Sextile", Angle: 60, Orb: 6, Glyph: "⚹"},
	{Name: "Square", Angle: 90, Orb: 7, Glyph: "□"},
	{Name: "Trine", Angle: 120, Orb: 7, Glyph: "△"},
	{Name: "Opposition", Angle: 180, Orb: 8, Glyph: "☍"},
}

// aspectQualities maps the canonical aspect names to their interpretive
// descriptor. Custom aspect names not listed here get an empty quality.
var aspectQualities = map[string]string{
	"Conjunction": "intensifying",
	"Sextile":     "harmonious opportunity",
	"Square":      "challenging tension",
	"Trine":       "flowing harmony",
	"Opposition":  "polarizing awareness",
}

// AspectMatch records one formed aspect between two bodies. Separation
// is the measured angular distance; the target angle and orb live in the
// embedded definition.
type AspectMatch struct {
	BodyA      Body
	BodyB      Body
	Aspect     AspectDefinition
	Separation float64
	Quality    string
}

// AspectsAmong enumerates every unordered pair of positions, in set
// order, and reports the first aspect definition each pair's separation
// falls within. Passing nil or empty defs selects MajorAspects. Sets
// with fewer than two entries produce no matches; a pair matching no
// definition is simply skipped.
func AspectsAmong(positions PositionSet, defs []AspectDefinition) []AspectMatch {
	if len(positions) < 2 {
		return nil
	}
	if len(defs) == 0 {
		defs = MajorAspects
	}
	var matches []AspectMatch
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			sep := AngularDistance(positions[i].Longitude, positions[j].Longitude)
			for _, def := range defs {
				if math.Abs(sep-def.Angle) <= def.Orb {
					matches = append(matches, AspectMatch{
						BodyA:      positions[i].Body,
						BodyB:      positions[j].Body,
						Aspect:     def,
						Separation: sep,
						Quality:    aspectQualities[def.Name],
					})
					break
				}
			}
		}
	}
	return matches
}
