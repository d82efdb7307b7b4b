// Package biorhythm evaluates the three classical biorhythm cycles —
// physical, emotional, intellectual — as sine waves over the days lived
// since birth, and flags the critical days where a cycle crosses zero.
package biorhythm

import (
	"math"
	"time"

	"github.com/celestialworks/almanac/ephemeris"
)

// Cycle periods in days.
const (
	PhysicalCycle     = 23.0
	EmotionalCycle    = 28.0
	IntellectualCycle = 33.0
)

// criticalBand is the amplitude below which a cycle counts as crossing
// zero. At the coarsest cycle (23 days) the day nearest a crossing
// always lands inside it.
const criticalBand = 0.15

// Cycle phase labels.
const (
	PhaseCritical = "critical"
	PhasePeak     = "peak"
	PhaseValley   = "valley"
	PhaseRising   = "rising"
	PhaseFalling  = "falling"
)

// CycleValue returns the amplitude of a cycle of the given period on the
// n-th day of life, in [-1, 1].
func CycleValue(daysAlive int, period float64) float64 {
	return math.Sin(2 * math.Pi * float64(daysAlive) / period)
}

// CyclePhase labels the point of the cycle: critical near a zero
// crossing, peak or valley near the extremes, rising or falling in
// between depending on the slope.
func CyclePhase(daysAlive int, period float64) string {
	value := CycleValue(daysAlive, period)
	switch {
	case math.Abs(value) <= criticalBand:
		return PhaseCritical
	case value >= 0.95:
		return PhasePeak
	case value <= -0.95:
		return PhaseValley
	}
	if math.Cos(2*math.Pi*float64(daysAlive)/period) > 0 {
		return PhaseRising
	}
	return PhaseFalling
}

// IsCritical reports whether the cycle sits in the zero-crossing band.
func IsCritical(daysAlive int, period float64) bool {
	return math.Abs(CycleValue(daysAlive, period)) <= criticalBand
}

// CycleReading is one cycle's state on a given day.
type CycleReading struct {
	Value    float64
	Percent  int
	Phase    string
	Critical bool
}

// Reading is the full biorhythm state for one profile and date.
type Reading struct {
	DaysAlive    int
	Physical     CycleReading
	Emotional    CycleReading
	Intellectual CycleReading
}

// CriticalDay reports whether any of the three cycles is critical.
func (r Reading) CriticalDay() bool {
	return r.Physical.Critical || r.Emotional.Critical || r.Intellectual.Critical
}

// ForDay computes the reading for a birth date and target date. Days
// alive is the whole-day difference of the two civil dates.
func ForDay(birth, target time.Time) Reading {
	days := int(ephemeris.JulianDay(target) - ephemeris.JulianDay(birth))
	return Reading{
		DaysAlive:    days,
		Physical:     readCycle(days, PhysicalCycle),
		Emotional:    readCycle(days, EmotionalCycle),
		Intellectual: readCycle(days, IntellectualCycle),
	}
}

func readCycle(daysAlive int, period float64) CycleReading {
	value := CycleValue(daysAlive, period)
	return CycleReading{
		Value:    value,
		Percent:  int(math.Round(value * 100)),
		Phase:    CyclePhase(daysAlive, period),
		Critical: math.Abs(value) <= criticalBand,
	}
}
