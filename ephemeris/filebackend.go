// ephemeris/filebackend.go
//
// FileBackend is a precise Backend fed by a precomputed ephemeris table:
// a JSON document of Julian-Day samples, each carrying per-body ecliptic
// longitudes. Queries between samples interpolate linearly along the
// shortest arc, so tables sampled daily stay accurate to well under a
// degree for everything but the Moon, and a few tenths for the Moon at
// 6-hour sampling.

package ephemeris

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrOutOfRange is returned for Julian Days outside the span covered by
// a FileBackend's table.
var ErrOutOfRange = errors.New("julian day outside ephemeris table range")

// FileBackend serves longitudes from an in-memory ephemeris table. It is
// immutable after load and safe for concurrent use.
type FileBackend struct {
	samples []tableSample
}

type tableSample struct {
	jd        float64
	longitude map[Body]float64
}

type ephemerisTableJSON struct {
	Samples []ephemerisSampleJSON `json:"samples"`
}

type ephemerisSampleJSON struct {
	JD        float64            `json:"jd"`
	Positions map[string]float64 `json:"positions"`
}

// LoadTable reads an ephemeris table from r. Samples may appear in any
// order; they are sorted by Julian Day on load. Empty tables, samples
// without positions, and duplicate Julian Days are rejected.
func LoadTable(r io.Reader) (*FileBackend, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ephemeris table: %w", err)
	}
	var doc ephemerisTableJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing ephemeris table: %w", err)
	}
	if len(doc.Samples) == 0 {
		return nil, errors.New("ephemeris table has no samples")
	}

	samples := make([]tableSample, 0, len(doc.Samples))
	for i, s := range doc.Samples {
		if len(s.Positions) == 0 {
			return nil, fmt.Errorf("sample %d (jd %.5f): no positions", i, s.JD)
		}
		longitudes := make(map[Body]float64, len(s.Positions))
		for name, lon := range s.Positions {
			longitudes[Body(name)] = Normalize(lon)
		}
		samples = append(samples, tableSample{jd: s.JD, longitude: longitudes})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].jd < samples[j].jd })
	for i := 1; i < len(samples); i++ {
		if samples[i].jd == samples[i-1].jd {
			return nil, fmt.Errorf("duplicate sample at jd %.5f", samples[i].jd)
		}
	}
	return &FileBackend{samples: samples}, nil
}

// LoadTableFile reads an ephemeris table from the file at path.
func LoadTableFile(path string) (*FileBackend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ephemeris table %q: %w", path, err)
	}
	defer f.Close()
	fb, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("ephemeris table %q: %w", path, err)
	}
	return fb, nil
}

// Range reports the first and last Julian Day the table covers.
func (fb *FileBackend) Range() (first, last float64) {
	return fb.samples[0].jd, fb.samples[len(fb.samples)-1].jd
}

// Longitude implements Backend by interpolating between the two samples
// bracketing jd. Querying outside the table's range is an error wrapping
// ErrOutOfRange rather than an extrapolation.
func (fb *FileBackend) Longitude(jd float64, body Body) (float64, error) {
	idx := sort.Search(len(fb.samples), func(i int) bool { return fb.samples[i].jd >= jd })
	if idx < len(fb.samples) && fb.samples[idx].jd == jd {
		return fb.sampleLongitude(fb.samples[idx], body)
	}
	if idx == 0 || idx == len(fb.samples) {
		first, last := fb.Range()
		return 0, fmt.Errorf("%w: jd %.5f not in [%.5f, %.5f]", ErrOutOfRange, jd, first, last)
	}

	lo, hi := fb.samples[idx-1], fb.samples[idx]
	a, err := fb.sampleLongitude(lo, body)
	if err != nil {
		return 0, err
	}
	b, err := fb.sampleLongitude(hi, body)
	if err != nil {
		return 0, err
	}
	frac := (jd - lo.jd) / (hi.jd - lo.jd)
	// Interpolate along the shortest arc so a 359°→1° step does not
	// sweep backwards through the whole circle.
	return Normalize(a + signedArc(a, b)*frac), nil
}

func (fb *FileBackend) sampleLongitude(s tableSample, body Body) (float64, error) {
	lon, ok := s.longitude[body]
	if !ok {
		return 0, fmt.Errorf("body %q has no entry at jd %.5f", body, s.jd)
	}
	return lon, nil
}
