// Package report assembles the per-day almanac entry for a profile:
// positions, signs, aspects, gates, lunar state, numerology, biorhythm,
// risk, and wellness guidance, in one generation pass.
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/celestialworks/almanac/biorhythm"
	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/internal/logging"
	"github.com/celestialworks/almanac/lunar"
	"github.com/celestialworks/almanac/model"
	"github.com/celestialworks/almanac/numerology"
)

// rangeConcurrency caps parallel day generation in GenerateRange.
const rangeConcurrency = 4

// Recorder receives one observation per generation attempt. The metrics
// collector implements it; the zero Generator drops observations.
type Recorder interface {
	ObserveGeneration(mode string, elapsed time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveGeneration(string, time.Duration, error) {}

// Generator produces daily entries from an engine.
type Generator struct {
	engine *ephemeris.Engine
	log    logging.Logger
	rec    Recorder
}

// Option customises Generator construction.
type Option func(*Generator)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.rec = r
		}
	}
}

// New constructs a Generator bound to an engine. A nil logger is
// replaced with the no-op logger.
func New(engine *ephemeris.Engine, log logging.Logger, opts ...Option) *Generator {
	if log == nil {
		log = logging.Noop()
	}
	g := &Generator{
		engine: engine,
		log:    log,
		rec:    noopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the full entry for one profile and date.
func (g *Generator) Generate(ctx context.Context, profile model.UserProfile, date time.Time) (model.DailyEntry, error) {
	if err := g.ensureReady(); err != nil {
		return model.DailyEntry{}, err
	}

	start := time.Now()
	entry, err := g.build(ctx, profile, date)
	g.rec.ObserveGeneration(g.engine.Mode(), time.Since(start), err)
	if err != nil {
		return model.DailyEntry{}, err
	}
	return entry, nil
}

func (g *Generator) build(ctx context.Context, profile model.UserProfile, date time.Time) (model.DailyEntry, error) {
	positions, err := g.engine.AllPositions(date)
	if err != nil {
		return model.DailyEntry{}, fmt.Errorf("positions for %s: %w", date.Format(model.DateLayout), err)
	}
	sunLon, ok := positions.Longitude(ephemeris.Sun)
	if !ok {
		return model.DailyEntry{}, fmt.Errorf("position set for %s has no sun", date.Format(model.DateLayout))
	}
	sunSign := ephemeris.SignFor(sunLon)

	house, err := g.engine.HouseFocus(date, profile.Birth.Date)
	if err != nil {
		return model.DailyEntry{}, fmt.Errorf("house focus: %w", err)
	}

	moon, err := lunar.ForDay(g.engine, date)
	if err != nil {
		return model.DailyEntry{}, fmt.Errorf("lunar snapshot: %w", err)
	}

	numbers := numerology.ForDay(profile.Birth.Date, date)
	cycles := biorhythm.ForDay(profile.Birth.Date, date)

	degraded := positions.Degraded()
	var aspects []ephemeris.AspectMatch
	var gates []ephemeris.GateActivation
	if !degraded {
		aspects = ephemeris.AspectsAmong(positions, nil)
		gates = ephemeris.GatesFor(positions)
	}

	entry := model.DailyEntry{
		ProfileID: profile.ID,
		Date:      date.Format(model.DateLayout),
		Weekday:   date.Weekday().String(),
		Mode:      g.engine.Mode(),
		Degraded:  degraded,
		Sun: model.SunSummary{
			Longitude:  sunLon,
			Sign:       sunSign.Name,
			Element:    string(sunSign.Element),
			Modality:   string(sunSign.Modality),
			House:      house,
			HouseTheme: ephemeris.HouseThemes[house],
		},
		Moon: model.MoonSummary{
			Longitude:    moon.Longitude,
			Sign:         moon.Sign.Name,
			Phase:        moon.Phase,
			Illumination: moon.Illumination,
			Approximate:  moon.Approximate,
		},
		Numerology: model.NumerologySummary{
			LifePath:      numbers.LifePath,
			PersonalYear:  numbers.PersonalYear,
			PersonalMonth: numbers.PersonalMonth,
			PersonalDay:   numbers.PersonalDay,
			UniversalDay:  numbers.UniversalDay,
			DayMeaning:    numerology.DayMeaning(numbers.PersonalDay),
		},
		Biorhythm: model.BiorhythmSummary{
			DaysAlive:    cycles.DaysAlive,
			Physical:     cycleSummary(cycles.Physical),
			Emotional:    cycleSummary(cycles.Emotional),
			Intellectual: cycleSummary(cycles.Intellectual),
			CriticalDay:  cycles.CriticalDay(),
		},
		Positions:   placements(positions),
		Aspects:     aspectSummaries(aspects),
		Gates:       gateSummaries(gates),
		Wellness:    guidanceFor(sunSign.Element, house, numbers.PersonalDay, moon.Phase, cycles.Emotional.Phase),
		Risk:        assessRisk(cycles, aspects),
		GeneratedAt: time.Now().UTC(),
	}

	g.log.Debug(ctx, "generated daily entry",
		logging.String("profile_id", profile.ID),
		logging.String("date", entry.Date),
		logging.String("mode", entry.Mode),
		logging.Int("aspects", len(entry.Aspects)),
	)
	return entry, nil
}

// GenerateRange builds entries for consecutive days starting at start.
// Days are generated concurrently; the result keeps calendar order.
func (g *Generator) GenerateRange(ctx context.Context, profile model.UserProfile, start time.Time, days int) ([]model.DailyEntry, error) {
	if err := g.ensureReady(); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, fmt.Errorf("day span must be positive, got %d", days)
	}
	if days > model.MaxCalendarDays {
		return nil, fmt.Errorf("day span %d exceeds limit %d", days, model.MaxCalendarDays)
	}

	entries := make([]model.DailyEntry, days)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(rangeConcurrency)
	for i := range entries {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := g.Generate(gctx, profile, start.AddDate(0, 0, i))
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.log.Info(ctx, "generated calendar range",
		logging.String("profile_id", profile.ID),
		logging.String("start", start.Format(model.DateLayout)),
		logging.Int("days", days),
	)
	return entries, nil
}

func (g *Generator) ensureReady() error {
	if g == nil || g.engine == nil {
		return fmt.Errorf("position engine is not configured")
	}
	return nil
}

func cycleSummary(c biorhythm.CycleReading) model.CycleSummary {
	return model.CycleSummary{
		Percent:  c.Percent,
		Phase:    c.Phase,
		Critical: c.Critical,
	}
}

func placements(positions ephemeris.PositionSet) []model.BodyPlacement {
	out := make([]model.BodyPlacement, 0, len(positions))
	for _, bp := range positions {
		out = append(out, model.BodyPlacement{
			Body:      string(bp.Body),
			Longitude: bp.Longitude,
			Sign:      ephemeris.SignFor(bp.Longitude).Name,
		})
	}
	return out
}

func aspectSummaries(matches []ephemeris.AspectMatch) []model.AspectSummary {
	if len(matches) == 0 {
		return nil
	}
	out := make([]model.AspectSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, model.AspectSummary{
			BodyA:      string(m.BodyA),
			BodyB:      string(m.BodyB),
			Aspect:     m.Aspect.Name,
			Glyph:      m.Aspect.Glyph,
			Separation: m.Separation,
			Quality:    m.Quality,
		})
	}
	return out
}

func gateSummaries(gates []ephemeris.GateActivation) []model.GateSummary {
	if len(gates) == 0 {
		return nil
	}
	out := make([]model.GateSummary, 0, len(gates))
	for _, ga := range gates {
		out = append(out, model.GateSummary{
			Body: string(ga.Body),
			Gate: ga.Gate,
			Line: ga.Line,
		})
	}
	return out
}
