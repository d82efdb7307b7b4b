package report

import (
	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/model"
)

// Guidance tables keyed by the day's symbolic layers. Every key space is
// closed: four elements, the twelve reduced/master day numbers, eight
// moon phases, five cycle phases, twelve houses.

var exerciseByElement = map[ephemeris.Element]string{
	ephemeris.ElementFire:  "High-intensity intervals or a fast run; burn the surplus before it turns restless.",
	ephemeris.ElementEarth: "Strength work or a long hike; slow loading, full range, firm ground underfoot.",
	ephemeris.ElementAir:   "Cycling, dance, or a brisk walk with a friend; movement that keeps ideas circulating.",
	ephemeris.ElementWater: "Swimming, yin yoga, or stretching near water; let the movement stay fluid.",
}

var nourishmentByElement = map[ephemeris.Element]string{
	ephemeris.ElementFire:  "Cooling foods balance the heat: fresh fruit, leafy greens, plenty of water.",
	ephemeris.ElementEarth: "Root vegetables and whole grains; warm, slow-cooked meals eaten without a screen.",
	ephemeris.ElementAir:   "Light, varied plates; eat seated and chew slowly, the element forgets to land.",
	ephemeris.ElementWater: "Soups, teas, and mineral-rich foods; watch salt and late-night sugar.",
}

var morningRitualByDay = map[int]string{
	1:  "Write the single intention that makes today a beginning, then take its first step before noon.",
	2:  "Reach out to one person before the day gets loud; today rewards partnership over push.",
	3:  "Three minutes of free writing or humming; prime the expressive channel early.",
	4:  "Lay out the day as a short ordered list and resist rearranging it.",
	5:  "Change one small routine on purpose: take a different route, reorder the morning.",
	6:  "Tend something at home before leaving it: a plant, a person, an unmade bed.",
	7:  "Keep the first hour quiet; no feeds, no inbox, one page of reading instead.",
	8:  "Review the numbers that matter to you, money or metrics, while attention is sharpest.",
	9:  "Finish one lingering thing first; today is for closing loops, not opening them.",
	11: "Note the first intuition that arrives before breakfast; do not argue with it yet.",
	22: "Sketch the largest version of what you are building, then do today's small brick.",
	33: "Begin by helping someone else start their day well; the return is disproportionate.",
}

var meditationByMoonPhase = map[string]string{
	"New Moon":        "Seed meditation: sit with what wants to begin, name it once, release it.",
	"Waxing Crescent": "Breath counting in fours; steady fuel for an intention already planted.",
	"First Quarter":   "Walking meditation; decisions move better than they sit at this phase.",
	"Waxing Gibbous":  "Body scan for tension; refine and adjust rather than begin anew.",
	"Full Moon":       "Open awareness for ten minutes; let whatever surfaces be seen in full light.",
	"Waning Gibbous":  "Gratitude recall: three concrete moments from the past week, held slowly.",
	"Last Quarter":    "Forgiveness breath, out longer than in; release what the cycle is done with.",
	"Waning Crescent": "Rest meditation, lying down is allowed; the work now is recovery.",
}

var eveningRitualByCyclePhase = map[string]string{
	"critical": "Early night, screens off an hour before; crossing days ask for gentleness.",
	"peak":     "Celebrate something small out loud, then bank the energy with a full night's sleep.",
	"valley":   "Warm bath or shower, low light, no self-assessment after dark.",
	"rising":   "Prepare tomorrow's start tonight; momentum compounds while the wave climbs.",
	"falling":  "Close the day with a short written handoff to tomorrow, then stop working.",
}

var journalPromptByHouse = map[int]string{
	1:  "Where did I act like myself today, and where did I perform someone else?",
	2:  "What did I treat as valuable today, by how I actually spent time and money?",
	3:  "Which conversation today deserves a second, slower pass?",
	4:  "What does home need from me this week that I keep postponing?",
	5:  "What did I make or play at today purely for its own sake?",
	6:  "Which small daily habit is quietly working, and which is quietly costing?",
	7:  "What did a close relationship reflect back at me today?",
	8:  "What am I holding that is ready to be transformed or let go?",
	9:  "What belief did today stretch, even slightly?",
	10: "What did I build today that my future self will stand on?",
	11: "Who is in my corner for the long run, and do they know it?",
	12: "What surfaced today from below the waterline, in dream, slip, or mood?",
}

func guidanceFor(element ephemeris.Element, house, personalDay int, moonPhase, emotionalPhase string) model.WellnessGuidance {
	prompts := make([]string, 0, 2)
	if p, ok := journalPromptByHouse[house]; ok {
		prompts = append(prompts, p)
	}
	if meaning, ok := morningRitualByDay[personalDay]; ok && meaning != "" {
		prompts = append(prompts, "How did today express "+dayPromptPhrase(personalDay)+"?")
	}

	return model.WellnessGuidance{
		Exercise:          exerciseByElement[element],
		Nourishment:       nourishmentByElement[element],
		MorningRitual:     morningRitualByDay[personalDay],
		Meditation:        meditationByMoonPhase[moonPhase],
		EveningRitual:     eveningRitualByCyclePhase[emotionalPhase],
		JournalingPrompts: prompts,
	}
}

func dayPromptPhrase(personalDay int) string {
	switch personalDay {
	case 1:
		return "a beginning"
	case 2:
		return "a partnership"
	case 3:
		return "something expressed"
	case 4:
		return "steady work"
	case 5:
		return "a welcome change"
	case 6:
		return "care given or received"
	case 7:
		return "time alone well spent"
	case 8:
		return "ambition in motion"
	case 9:
		return "a completion"
	case 11:
		return "an intuition followed"
	case 22:
		return "a lasting foundation"
	case 33:
		return "service to someone else"
	default:
		return "its number"
	}
}
