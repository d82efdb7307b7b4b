package report

import (
	"fmt"
	"strings"

	"github.com/celestialworks/almanac/biorhythm"
	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/model"
)

// Risk levels ordered by severity.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskElevated = "elevated"
	RiskHigh     = "high"
)

// Scoring weights. Critical biorhythm crossings outweigh single hard
// aspects: a crossing affects the whole day, an aspect one pairing.
const (
	criticalCyclePoints = 2
	hardAspectPoints    = 1
)

// assessRisk scores the day from critical biorhythm crossings and hard
// aspects. Degraded entries carry no aspects, so their score comes from
// the cycles alone.
func assessRisk(cycles biorhythm.Reading, aspects []ephemeris.AspectMatch) model.RiskSummary {
	var score int
	var factors []string
	add := func(points int, factor string) {
		score += points
		factors = append(factors, factor)
	}

	if cycles.Physical.Critical {
		add(criticalCyclePoints, "physical cycle at a zero crossing")
	}
	if cycles.Emotional.Critical {
		add(criticalCyclePoints, "emotional cycle at a zero crossing")
	}
	if cycles.Intellectual.Critical {
		add(criticalCyclePoints, "intellectual cycle at a zero crossing")
	}

	for _, m := range aspects {
		switch m.Aspect.Name {
		case "Square":
			add(hardAspectPoints, fmt.Sprintf("%s square %s", strings.ToLower(string(m.BodyA)), strings.ToLower(string(m.BodyB))))
		case "Opposition":
			add(hardAspectPoints, fmt.Sprintf("%s opposite %s", strings.ToLower(string(m.BodyA)), strings.ToLower(string(m.BodyB))))
		}
	}

	return model.RiskSummary{
		Level:   riskLevel(score),
		Score:   score,
		Factors: factors,
	}
}

func riskLevel(score int) string {
	switch {
	case score >= 6:
		return RiskHigh
	case score >= 4:
		return RiskElevated
	case score >= 2:
		return RiskModerate
	default:
		return RiskLow
	}
}
