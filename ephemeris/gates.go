package ephemeris

import "math"

// gateWheel maps the 64 wheel segments, counted from 0° Aries, to Human
// Design gate numbers. The sequence is the fixed convention of the gate
// wheel; it is not sorted and must never be reordered.
var gateWheel = [64]int{
	41, 19, 13, 49, 30, 55, 37, 63,
	22, 36, 25, 17, 21, 51, 42, 3,
	27, 24, 2, 23, 8, 20, 16, 35,
	45, 12, 15, 52, 39, 53, 62, 56,
	31, 33, 7, 4, 29, 59, 40, 64,
	47, 6, 46, 18, 48, 57, 32, 50,
	28, 44, 1, 43, 14, 34, 9, 5,
	26, 11, 10, 58, 38, 54, 61, 60,
}

// gateSpanDeg is the width of one gate, 5.625°; lineSpanDeg is one
// sixth of it, 0.9375°.
const (
	gateSpanDeg = 360.0 / 64
	lineSpanDeg = gateSpanDeg / 6
)

// GateLine maps an ecliptic longitude to its Human Design gate and line.
// Each gate spans 5.625° of the wheel and divides into six lines of
// 0.9375°; lines are numbered 1 through 6.
func GateLine(longitude float64) (gate, line int) {
	lon := Normalize(longitude)
	segment := int(lon/gateSpanDeg) % 64
	gate = gateWheel[segment]
	within := math.Mod(lon, gateSpanDeg)
	line = int(within/lineSpanDeg) + 1
	// Float rounding at a gate's upper edge can push the line past 6.
	if line > 6 {
		line = 6
	}
	return gate, line
}

// GateActivation records the gate and line a body's position activates.
type GateActivation struct {
	Body Body
	Gate int
	Line int
}

// GatesFor maps every position in the set to its gate activation,
// preserving set order.
func GatesFor(positions PositionSet) []GateActivation {
	activations := make([]GateActivation, 0, len(positions))
	for _, bp := range positions {
		gate, line := GateLine(bp.Longitude)
		activations = append(activations, GateActivation{Body: bp.Body, Gate: gate, Line: line})
	}
	return activations
}
