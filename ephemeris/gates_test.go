package ephemeris

import "testing"

func TestGateLine_WheelStart(t *testing.T) {
	gate, line := GateLine(0)
	if gate != 41 || line != 1 {
		t.Fatalf("GateLine(0) = gate %d line %d, want gate 41 line 1", gate, line)
	}
}

func TestGateLine_SegmentBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		wantGate int
		wantLine int
	}{
		{name: "first gate last line", lon: 5.624999, wantGate: 41, wantLine: 6},
		{name: "second gate starts", lon: 5.625, wantGate: 19, wantLine: 1},
		{name: "line 2 starts", lon: 0.9375, wantGate: 41, wantLine: 2},
		{name: "just before line 2", lon: 0.9374, wantGate: 41, wantLine: 1},
		{name: "last segment", lon: 359.0, wantGate: 60, wantLine: 5},
		{name: "negative wraps", lon: -1.0, wantGate: 60, wantLine: 5},
		{name: "beyond full turn", lon: 360.5, wantGate: 41, wantLine: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gate, line := GateLine(tc.lon)
			if gate != tc.wantGate || line != tc.wantLine {
				t.Fatalf("GateLine(%v) = gate %d line %d, want gate %d line %d",
					tc.lon, gate, line, tc.wantGate, tc.wantLine)
			}
		})
	}
}

func TestGateLine_FullWheel(t *testing.T) {
	// Walk the midpoint of every line of every segment; each must map
	// back to its segment's gate and its own line number.
	for seg := 0; seg < 64; seg++ {
		for ln := 1; ln <= 6; ln++ {
			lon := float64(seg)*gateSpanDeg + (float64(ln)-0.5)*lineSpanDeg
			gate, line := GateLine(lon)
			if gate != gateWheel[seg] {
				t.Fatalf("segment %d midpoint %v: gate %d, want %d", seg, lon, gate, gateWheel[seg])
			}
			if line != ln {
				t.Fatalf("segment %d line %d midpoint %v: line %d", seg, ln, lon, line)
			}
		}
	}
}

func TestGateWheel_CoversAllGatesOnce(t *testing.T) {
	seen := make(map[int]int, 64)
	for _, g := range gateWheel {
		seen[g]++
	}
	if len(seen) != 64 {
		t.Fatalf("wheel names %d distinct gates, want 64", len(seen))
	}
	for g := 1; g <= 64; g++ {
		if seen[g] != 1 {
			t.Fatalf("gate %d appears %d times in the wheel, want exactly once", g, seen[g])
		}
	}
}

func TestGateLine_LineNeverExceedsSix(t *testing.T) {
	// Sweep fine steps across several segment edges; rounding must never
	// yield line 7 or line 0.
	for lon := 0.0; lon < 360; lon += 0.046875 {
		if _, line := GateLine(lon); line < 1 || line > 6 {
			t.Fatalf("GateLine(%v) line = %d, outside 1..6", lon, line)
		}
	}
}

func TestGatesFor_PreservesOrder(t *testing.T) {
	set := PositionSet{
		{Body: Sun, Longitude: 0},
		{Body: Moon, Longitude: 5.625},
		{Body: Venus, Longitude: 200},
	}

	activations := GatesFor(set)
	if len(activations) != 3 {
		t.Fatalf("got %d activations, want 3", len(activations))
	}
	wantBodies := []Body{Sun, Moon, Venus}
	for i, act := range activations {
		if act.Body != wantBodies[i] {
			t.Fatalf("activation %d body = %q, want %q", i, act.Body, wantBodies[i])
		}
	}
	if activations[0].Gate != 41 || activations[1].Gate != 19 {
		t.Fatalf("activation gates = %d/%d, want 41/19", activations[0].Gate, activations[1].Gate)
	}
}

func TestGatesFor_Empty(t *testing.T) {
	if got := GatesFor(nil); len(got) != 0 {
		t.Fatalf("GatesFor(nil) = %+v, want none", got)
	}
}
