package ephemeris

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTable = `{
  "samples": [
    {"jd": 2460002.0, "positions": {"Sun": 20, "Moon": 10}},
    {"jd": 2460000.0, "positions": {"Sun": 10, "Moon": 350}},
    {"jd": 2460001.0, "positions": {"Sun": 15, "Moon": 0}}
  ]
}`

func TestLoadTable_SortsSamples(t *testing.T) {
	fb, err := LoadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	first, last := fb.Range()
	if first != 2460000.0 || last != 2460002.0 {
		t.Fatalf("Range() = %v..%v, want 2460000..2460002", first, last)
	}
}

func TestFileBackend_ExactSample(t *testing.T) {
	fb, err := LoadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	lon, err := fb.Longitude(2460001.0, Sun)
	if err != nil {
		t.Fatalf("Longitude: %v", err)
	}
	if lon != 15 {
		t.Fatalf("Longitude at exact sample = %v, want 15", lon)
	}
}

func TestFileBackend_Interpolates(t *testing.T) {
	fb, err := LoadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	lon, err := fb.Longitude(2460000.5, Sun)
	if err != nil {
		t.Fatalf("Longitude: %v", err)
	}
	if math.Abs(lon-12.5) > 1e-9 {
		t.Fatalf("midpoint Sun = %v, want 12.5", lon)
	}
}

func TestFileBackend_InterpolatesAcrossWrap(t *testing.T) {
	// Moon runs 350° → 0° across the first interval; halfway is 355°,
	// not the 175° a naive average would give.
	fb, err := LoadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	lon, err := fb.Longitude(2460000.5, Moon)
	if err != nil {
		t.Fatalf("Longitude: %v", err)
	}
	if math.Abs(lon-355) > 1e-9 {
		t.Fatalf("wrapped midpoint Moon = %v, want 355", lon)
	}
}

func TestFileBackend_OutOfRange(t *testing.T) {
	fb, err := LoadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if _, err := fb.Longitude(2459999.9, Sun); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("below-range err = %v, want ErrOutOfRange", err)
	}
	if _, err := fb.Longitude(2460002.1, Sun); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("above-range err = %v, want ErrOutOfRange", err)
	}
}

func TestFileBackend_MissingBody(t *testing.T) {
	fb, err := LoadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if _, err := fb.Longitude(2460000.5, Pluto); err == nil {
		t.Fatalf("expected error for body absent from table")
	}
}

func TestLoadTable_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{"samples": [`},
		{name: "empty table", doc: `{"samples": []}`},
		{name: "sample without positions", doc: `{"samples": [{"jd": 2460000.0, "positions": {}}]}`},
		{
			name: "duplicate jd",
			doc: `{"samples": [
				{"jd": 2460000.0, "positions": {"Sun": 10}},
				{"jd": 2460000.0, "positions": {"Sun": 11}}
			]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadTable(strings.NewReader(tc.doc)); err == nil {
				t.Fatalf("LoadTable accepted %s", tc.name)
			}
		})
	}
}

func TestLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatalf("writing table: %v", err)
	}

	fb, err := LoadTableFile(path)
	if err != nil {
		t.Fatalf("LoadTableFile: %v", err)
	}
	if _, err := fb.Longitude(2460001.0, Moon); err != nil {
		t.Fatalf("Longitude: %v", err)
	}

	if _, err := LoadTableFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFileBackend_SingleSample(t *testing.T) {
	doc := `{"samples": [{"jd": 2460000.0, "positions": {"Sun": 42}}]}`
	fb, err := LoadTable(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if lon, err := fb.Longitude(2460000.0, Sun); err != nil || lon != 42 {
		t.Fatalf("exact hit = %v, %v, want 42, nil", lon, err)
	}
	if _, err := fb.Longitude(2460000.5, Sun); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("off-sample err = %v, want ErrOutOfRange", err)
	}
}
