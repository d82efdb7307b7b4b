// Package ephemeris computes geocentric ecliptic longitudes for the Sun
// and the nine classical/modern planets, and derives the symbolic layers
// built on top of them: zodiac signs, inter-planet aspects, Human Design
// gate activations, and solar house focus.
//
// Every function is a pure computation over its inputs. The one piece of
// configuration is the optional precise backend attached when an Engine
// is constructed; without one, the engine falls back to closed-form
// approximations and a reduced body set.
package ephemeris

import "errors"

// Body identifies one of the ten bodies the engine tracks.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
	Pluto   Body = "Pluto"
)

// Bodies lists every tracked body in the engine's canonical order. The
// order is stable: it drives the iteration order of AllPositions and,
// through it, the pair enumeration of AspectsAmong.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// Backend supplies precise ecliptic longitudes by Julian Day. A Backend
// is optional; an Engine constructed without one uses the closed-form
// fallback path for the life of the process.
type Backend interface {
	// Longitude returns the geocentric ecliptic longitude of body at the
	// given Julian Day, in degrees. Implementations may return an error
	// for instants outside their supported range; the engine propagates
	// such errors to the caller unchanged rather than falling back
	// mid-calculation.
	Longitude(jd float64, body Body) (float64, error)
}

// ErrNoBackend is returned when a per-body longitude is requested for a
// body the fallback path cannot approximate. Only the Sun has a cheap
// closed form; the Moon and planets require the precise backend.
var ErrNoBackend = errors.New("no precise ephemeris backend available")

// Engine mode labels, used in logs, metrics, and report output.
const (
	ModePrecise  = "precise"
	ModeFallback = "fallback"
)

// Engine is the position calculator. Construct it once with New; the
// backend choice is immutable afterwards, so concurrent use needs no
// locking.
type Engine struct {
	backend Backend
}

// Option customises Engine construction.
type Option func(*Engine)

// WithBackend attaches a precise ephemeris backend. Passing nil is the
// same as omitting the option.
func WithBackend(b Backend) Option {
	return func(e *Engine) {
		e.backend = b
	}
}

// New constructs an Engine. Without options the engine runs in fallback
// mode: Sun positions from the closed-form formula, no other bodies.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode reports which calculation tier the engine uses: ModePrecise when
// a backend is attached, ModeFallback otherwise.
func (e *Engine) Mode() string {
	if e != nil && e.backend != nil {
		return ModePrecise
	}
	return ModeFallback
}

// BodyPosition pairs a body with its ecliptic longitude in degrees.
type BodyPosition struct {
	Body      Body
	Longitude float64
}

// PositionSet is an ordered collection of body positions. The order is
// the insertion order; it determines the deterministic pair enumeration
// of AspectsAmong and the output order of GatesFor, so a PositionSet is
// a slice rather than a map.
//
// A set with fewer than two entries signals degraded mode: the engine's
// fallback path emits a Sun-only set, and callers should suppress
// aspect and gate output rather than present misleading data.
type PositionSet []BodyPosition

// Longitude looks up the longitude recorded for body. The second return
// is false when the body is not in the set.
func (ps PositionSet) Longitude(b Body) (float64, bool) {
	for _, bp := range ps {
		if bp.Body == b {
			return bp.Longitude, true
		}
	}
	return 0, false
}

// Degraded reports whether the set is too small for pairwise analysis,
// i.e. the shape the fallback path produces.
func (ps PositionSet) Degraded() bool {
	return len(ps) < 2
}
