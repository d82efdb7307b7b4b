package report

import (
	"fmt"
	"strings"

	"github.com/celestialworks/almanac/model"
)

// RenderText formats an entry as the plain-text block the CLI prints.
// JSON output goes through encoding/json on the entry itself.
func RenderText(e model.DailyEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily Almanac for %s (%s)\n", e.Date, e.Weekday)
	fmt.Fprintf(&b, "Mode: %s\n", e.Mode)
	if e.Degraded {
		b.WriteString("Sun-only data; no precise ephemeris attached, aspects and gates omitted.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Sun   %7.2f° %s (%s, %s)\n", e.Sun.Longitude, e.Sun.Sign, e.Sun.Element, e.Sun.Modality)
	fmt.Fprintf(&b, "      house %d: %s\n", e.Sun.House, e.Sun.HouseTheme)
	moonNote := ""
	if e.Moon.Approximate {
		moonNote = " (approximate)"
	}
	fmt.Fprintf(&b, "Moon  %7.2f° %s, %s, %.0f%% illuminated%s\n",
		e.Moon.Longitude, e.Moon.Sign, e.Moon.Phase, e.Moon.Illumination*100, moonNote)

	b.WriteString("\nNumerology\n")
	fmt.Fprintf(&b, "  life path %d | personal year %d, month %d, day %d | universal day %d\n",
		e.Numerology.LifePath, e.Numerology.PersonalYear, e.Numerology.PersonalMonth,
		e.Numerology.PersonalDay, e.Numerology.UniversalDay)
	if e.Numerology.DayMeaning != "" {
		fmt.Fprintf(&b, "  day %d: %s\n", e.Numerology.PersonalDay, e.Numerology.DayMeaning)
	}

	fmt.Fprintf(&b, "\nBiorhythm (day %d)\n", e.Biorhythm.DaysAlive)
	writeCycle(&b, "physical", e.Biorhythm.Physical)
	writeCycle(&b, "emotional", e.Biorhythm.Emotional)
	writeCycle(&b, "intellectual", e.Biorhythm.Intellectual)
	if e.Biorhythm.CriticalDay {
		b.WriteString("  critical day: plan margins, not sprints\n")
	}

	if len(e.Positions) > 1 {
		b.WriteString("\nPositions\n")
		for _, p := range e.Positions {
			fmt.Fprintf(&b, "  %-9s %7.2f° %s\n", p.Body, p.Longitude, p.Sign)
		}
	}

	if len(e.Aspects) > 0 {
		b.WriteString("\nAspects\n")
		for _, a := range e.Aspects {
			fmt.Fprintf(&b, "  %s %s %s  %s at %.1f°", a.BodyA, a.Glyph, a.BodyB, a.Aspect, a.Separation)
			if a.Quality != "" {
				fmt.Fprintf(&b, " (%s)", a.Quality)
			}
			b.WriteString("\n")
		}
	}

	if len(e.Gates) > 0 {
		b.WriteString("\nGates\n")
		for _, ga := range e.Gates {
			fmt.Fprintf(&b, "  %-9s gate %d line %d\n", ga.Body, ga.Gate, ga.Line)
		}
	}

	fmt.Fprintf(&b, "\nRisk: %s (score %d)\n", e.Risk.Level, e.Risk.Score)
	for _, f := range e.Risk.Factors {
		fmt.Fprintf(&b, "  - %s\n", f)
	}

	b.WriteString("\nWellness\n")
	writeGuidance(&b, "exercise", e.Wellness.Exercise)
	writeGuidance(&b, "nourish", e.Wellness.Nourishment)
	writeGuidance(&b, "morning", e.Wellness.MorningRitual)
	writeGuidance(&b, "meditate", e.Wellness.Meditation)
	writeGuidance(&b, "evening", e.Wellness.EveningRitual)
	if len(e.Wellness.JournalingPrompts) > 0 {
		b.WriteString("  journal:\n")
		for _, p := range e.Wellness.JournalingPrompts {
			fmt.Fprintf(&b, "    - %s\n", p)
		}
	}

	return b.String()
}

func writeCycle(b *strings.Builder, name string, c model.CycleSummary) {
	fmt.Fprintf(b, "  %-13s %+4d%%  %s\n", name, c.Percent, c.Phase)
}

func writeGuidance(b *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "  %-9s %s\n", label+":", text)
}
