package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/model"
)

// backendFunc adapts a function to the ephemeris.Backend interface.
type backendFunc func(jd float64, body ephemeris.Body) (float64, error)

func (f backendFunc) Longitude(jd float64, body ephemeris.Body) (float64, error) {
	return f(jd, body)
}

// testLongitudes is a fixed sky chosen so every aspect kind forms at
// least once: Sun-Moon opposite, Sun-Mercury square, Sun-Venus sextile,
// Sun-Mars trine, and so on through the outer bodies.
var testLongitudes = map[ephemeris.Body]float64{
	ephemeris.Sun:     0,
	ephemeris.Moon:    180,
	ephemeris.Mercury: 90,
	ephemeris.Venus:   60,
	ephemeris.Mars:    120,
	ephemeris.Jupiter: 45,
	ephemeris.Saturn:  200,
	ephemeris.Uranus:  310,
	ephemeris.Neptune: 275,
	ephemeris.Pluto:   295,
}

func fixedBackend(longitudes map[ephemeris.Body]float64) ephemeris.Backend {
	return backendFunc(func(jd float64, body ephemeris.Body) (float64, error) {
		lon, ok := longitudes[body]
		if !ok {
			return 0, errors.New("no such body")
		}
		return lon, nil
	})
}

func testProfile() model.UserProfile {
	return model.UserProfile{
		ID:   "p-1",
		Name: "Test Profile",
		Birth: model.BirthData{
			Date: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestGenerate_PreciseEntry(t *testing.T) {
	engine := ephemeris.New(ephemeris.WithBackend(fixedBackend(testLongitudes)))
	gen := New(engine, nil)
	date := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	entry, err := gen.Generate(context.Background(), testProfile(), date)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if entry.ProfileID != "p-1" || entry.Date != "2026-08-23" || entry.Weekday != "Sunday" {
		t.Fatalf("entry header = %q/%q/%q, want p-1/2026-08-23/Sunday", entry.ProfileID, entry.Date, entry.Weekday)
	}
	if entry.Mode != ephemeris.ModePrecise || entry.Degraded {
		t.Fatalf("entry mode = %q degraded=%v, want precise/false", entry.Mode, entry.Degraded)
	}

	if entry.Sun.Sign != "Aries" || entry.Sun.Element != "Fire" || entry.Sun.Modality != "Cardinal" {
		t.Fatalf("sun summary = %+v, want Aries/Fire/Cardinal", entry.Sun)
	}
	// Natal and transit Sun share a longitude under the fixed backend.
	if entry.Sun.House != 1 || entry.Sun.HouseTheme != "Self & Identity" {
		t.Fatalf("house = %d %q, want 1 Self & Identity", entry.Sun.House, entry.Sun.HouseTheme)
	}

	if entry.Moon.Sign != "Libra" || entry.Moon.Phase != "Full Moon" || entry.Moon.Approximate {
		t.Fatalf("moon summary = %+v, want Libra Full Moon precise", entry.Moon)
	}
	if entry.Moon.Illumination < 0.999 {
		t.Fatalf("full moon illumination = %v, want ~1", entry.Moon.Illumination)
	}

	n := entry.Numerology
	if n.LifePath != 4 || n.PersonalYear != 4 || n.PersonalMonth != 3 || n.PersonalDay != 8 || n.UniversalDay != 5 {
		t.Fatalf("numerology = %+v, want 4/4/3/8/5", n)
	}
	if n.DayMeaning == "" {
		t.Fatalf("day meaning missing for personal day %d", n.PersonalDay)
	}

	if entry.Biorhythm.DaysAlive != 15418 {
		t.Fatalf("days alive = %d, want 15418", entry.Biorhythm.DaysAlive)
	}
	if entry.Biorhythm.Intellectual.Phase != "peak" {
		t.Fatalf("intellectual phase = %q, want peak", entry.Biorhythm.Intellectual.Phase)
	}
	if entry.Biorhythm.CriticalDay {
		t.Fatalf("no cycle is near zero on day 15418, critical flag set")
	}

	if len(entry.Positions) != 10 {
		t.Fatalf("positions len = %d, want 10", len(entry.Positions))
	}
	if entry.Positions[0].Body != "Sun" || entry.Positions[0].Sign != "Aries" {
		t.Fatalf("positions[0] = %+v, want Sun in Aries", entry.Positions[0])
	}

	if len(entry.Aspects) != 17 {
		t.Fatalf("aspects len = %d, want 17", len(entry.Aspects))
	}
	first := entry.Aspects[0]
	if first.BodyA != "Sun" || first.BodyB != "Moon" || first.Aspect != "Opposition" {
		t.Fatalf("aspects[0] = %+v, want Sun opposite Moon", first)
	}
	if first.Glyph != "☍" || first.Separation != 180 || first.Quality != "polarizing awareness" {
		t.Fatalf("aspects[0] detail = %+v", first)
	}

	if len(entry.Gates) != 10 {
		t.Fatalf("gates len = %d, want 10", len(entry.Gates))
	}
	if entry.Gates[0].Body != "Sun" || entry.Gates[0].Gate != 41 || entry.Gates[0].Line != 1 {
		t.Fatalf("gates[0] = %+v, want Sun gate 41 line 1", entry.Gates[0])
	}
	if entry.Gates[1].Body != "Moon" || entry.Gates[1].Gate != 31 {
		t.Fatalf("gates[1] = %+v, want Moon gate 31", entry.Gates[1])
	}

	// Six squares and three oppositions form in the fixed sky; no cycle
	// is critical, so the score is exactly the hard-aspect count.
	if entry.Risk.Score != 9 || entry.Risk.Level != RiskHigh {
		t.Fatalf("risk = %+v, want score 9 level high", entry.Risk)
	}
	if len(entry.Risk.Factors) != 9 {
		t.Fatalf("risk factors len = %d, want 9", len(entry.Risk.Factors))
	}

	w := entry.Wellness
	if w.Exercise == "" || w.Nourishment == "" || w.MorningRitual == "" || w.Meditation == "" || w.EveningRitual == "" {
		t.Fatalf("wellness has empty fields: %+v", w)
	}
	if len(w.JournalingPrompts) != 2 {
		t.Fatalf("journaling prompts len = %d, want 2", len(w.JournalingPrompts))
	}

	if entry.GeneratedAt.IsZero() {
		t.Fatalf("generated_at not set")
	}
}

func TestGenerate_FallbackDegrades(t *testing.T) {
	gen := New(ephemeris.New(), nil)
	date := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	entry, err := gen.Generate(context.Background(), testProfile(), date)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if entry.Mode != ephemeris.ModeFallback || !entry.Degraded {
		t.Fatalf("entry mode = %q degraded=%v, want fallback/true", entry.Mode, entry.Degraded)
	}
	if len(entry.Positions) != 1 {
		t.Fatalf("fallback positions len = %d, want 1", len(entry.Positions))
	}
	if entry.Aspects != nil || entry.Gates != nil {
		t.Fatalf("degraded entry carries aspects/gates: %d/%d", len(entry.Aspects), len(entry.Gates))
	}
	if !entry.Moon.Approximate {
		t.Fatalf("fallback moon not marked approximate")
	}
	if entry.Risk.Level != RiskLow || entry.Risk.Score != 0 {
		t.Fatalf("fallback risk = %+v, want low/0 with quiet cycles", entry.Risk)
	}
	if entry.Wellness.Exercise == "" || entry.Wellness.Meditation == "" {
		t.Fatalf("degraded entry still needs wellness guidance: %+v", entry.Wellness)
	}
}

func TestGenerate_BackendErrorPropagates(t *testing.T) {
	backendErr := errors.New("table gap")
	engine := ephemeris.New(ephemeris.WithBackend(backendFunc(func(jd float64, body ephemeris.Body) (float64, error) {
		return 0, backendErr
	})))
	gen := New(engine, nil)

	_, err := gen.Generate(context.Background(), testProfile(), time.Now())
	if !errors.Is(err, backendErr) {
		t.Fatalf("Generate err = %v, want %v", err, backendErr)
	}
}

type captureRecorder struct {
	mu    sync.Mutex
	modes []string
	errs  []error
}

func (r *captureRecorder) ObserveGeneration(mode string, elapsed time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = append(r.modes, mode)
	r.errs = append(r.errs, err)
}

func TestGenerate_RecordsObservation(t *testing.T) {
	rec := &captureRecorder{}
	gen := New(ephemeris.New(), nil, WithRecorder(rec))

	if _, err := gen.Generate(context.Background(), testProfile(), time.Now()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rec.modes) != 1 || rec.modes[0] != ephemeris.ModeFallback {
		t.Fatalf("recorded modes = %v, want one fallback observation", rec.modes)
	}
	if rec.errs[0] != nil {
		t.Fatalf("recorded err = %v, want nil", rec.errs[0])
	}
}

func TestGenerateRange_OrderedDates(t *testing.T) {
	gen := New(ephemeris.New(), nil)
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	entries, err := gen.GenerateRange(context.Background(), testProfile(), start, 5)
	if err != nil {
		t.Fatalf("GenerateRange: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("entries len = %d, want 5", len(entries))
	}
	for i, e := range entries {
		want := start.AddDate(0, 0, i).Format(model.DateLayout)
		if e.Date != want {
			t.Fatalf("entries[%d].Date = %q, want %q", i, e.Date, want)
		}
		if e.ProfileID != "p-1" {
			t.Fatalf("entries[%d].ProfileID = %q, want p-1", i, e.ProfileID)
		}
	}
}

func TestGenerateRange_SpanValidation(t *testing.T) {
	gen := New(ephemeris.New(), nil)
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	if _, err := gen.GenerateRange(context.Background(), testProfile(), start, 0); err == nil {
		t.Fatalf("zero-day span accepted")
	}
	if _, err := gen.GenerateRange(context.Background(), testProfile(), start, model.MaxCalendarDays+1); err == nil {
		t.Fatalf("over-limit span accepted")
	}
}

func TestGenerateRange_CancelledContext(t *testing.T) {
	gen := New(ephemeris.New(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gen.GenerateRange(ctx, testProfile(), time.Now(), 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("GenerateRange on cancelled ctx err = %v, want context.Canceled", err)
	}
}

func TestGenerate_NoEngine(t *testing.T) {
	gen := New(nil, nil)
	if _, err := gen.Generate(context.Background(), testProfile(), time.Now()); err == nil {
		t.Fatalf("Generate without engine accepted")
	}
}

func TestRenderText(t *testing.T) {
	engine := ephemeris.New(ephemeris.WithBackend(fixedBackend(testLongitudes)))
	gen := New(engine, nil)
	entry, err := gen.Generate(context.Background(), testProfile(), time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	text := RenderText(entry)
	for _, want := range []string{
		"Daily Almanac for 2026-08-23 (Sunday)",
		"Mode: precise",
		"Aries",
		"Full Moon",
		"life path 4",
		"gate 41 line 1",
		"Risk: high (score 9)",
		"journal:",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered text missing %q:\n%s", want, text)
		}
	}
}

func TestRenderText_Degraded(t *testing.T) {
	gen := New(ephemeris.New(), nil)
	entry, err := gen.Generate(context.Background(), testProfile(), time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	text := RenderText(entry)
	if !strings.Contains(text, "aspects and gates omitted") {
		t.Fatalf("degraded banner missing:\n%s", text)
	}
	if strings.Contains(text, "\nAspects\n") || strings.Contains(text, "\nGates\n") {
		t.Fatalf("degraded render lists aspects or gates:\n%s", text)
	}
}
