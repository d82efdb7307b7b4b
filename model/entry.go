package model

import "time"

// DailyEntry is one generated almanac day for one profile. Aspects and
// Gates are omitted when the entry was generated in degraded mode, where
// only the Sun's position is trustworthy.
type DailyEntry struct {
	ProfileID   string            `json:"profile_id"`
	Date        string            `json:"date"`
	Weekday     string            `json:"weekday"`
	Mode        string            `json:"mode"`
	Degraded    bool              `json:"degraded"`
	Sun         SunSummary        `json:"sun"`
	Moon        MoonSummary       `json:"moon"`
	Numerology  NumerologySummary `json:"numerology"`
	Biorhythm   BiorhythmSummary  `json:"biorhythm"`
	Positions   []BodyPlacement   `json:"positions"`
	Aspects     []AspectSummary   `json:"aspects,omitempty"`
	Gates       []GateSummary     `json:"gates,omitempty"`
	Wellness    WellnessGuidance  `json:"wellness"`
	Risk        RiskSummary       `json:"risk"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// SunSummary is the solar layer of an entry.
type SunSummary struct {
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	Element    string  `json:"element"`
	Modality   string  `json:"modality"`
	House      int     `json:"house"`
	HouseTheme string  `json:"house_theme"`
}

// MoonSummary is the lunar layer of an entry. Approximate flags values
// derived from the mean-longitude fallback rather than the backend.
type MoonSummary struct {
	Longitude    float64 `json:"longitude"`
	Sign         string  `json:"sign"`
	Phase        string  `json:"phase"`
	Illumination float64 `json:"illumination"`
	Approximate  bool    `json:"approximate,omitempty"`
}

// NumerologySummary carries the day's numbers.
type NumerologySummary struct {
	LifePath      int    `json:"life_path"`
	PersonalYear  int    `json:"personal_year"`
	PersonalMonth int    `json:"personal_month"`
	PersonalDay   int    `json:"personal_day"`
	UniversalDay  int    `json:"universal_day"`
	DayMeaning    string `json:"day_meaning,omitempty"`
}

// CycleSummary is one biorhythm cycle's state.
type CycleSummary struct {
	Percent  int    `json:"percent"`
	Phase    string `json:"phase"`
	Critical bool   `json:"critical,omitempty"`
}

// BiorhythmSummary carries the three cycles and the overall flag.
type BiorhythmSummary struct {
	DaysAlive    int          `json:"days_alive"`
	Physical     CycleSummary `json:"physical"`
	Emotional    CycleSummary `json:"emotional"`
	Intellectual CycleSummary `json:"intellectual"`
	CriticalDay  bool         `json:"critical_day"`
}

// BodyPlacement is one body's position and sign.
type BodyPlacement struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	Sign      string  `json:"sign"`
}

// AspectSummary is one formed aspect between two bodies.
type AspectSummary struct {
	BodyA      string  `json:"body_a"`
	BodyB      string  `json:"body_b"`
	Aspect     string  `json:"aspect"`
	Glyph      string  `json:"glyph"`
	Separation float64 `json:"separation"`
	Quality    string  `json:"quality,omitempty"`
}

// GateSummary is one Human Design gate activation.
type GateSummary struct {
	Body string `json:"body"`
	Gate int    `json:"gate"`
	Line int    `json:"line"`
}

// WellnessGuidance is the day's practice suggestions.
type WellnessGuidance struct {
	Exercise          string   `json:"exercise"`
	Nourishment       string   `json:"nourishment"`
	MorningRitual     string   `json:"morning_ritual"`
	Meditation        string   `json:"meditation"`
	EveningRitual     string   `json:"evening_ritual"`
	JournalingPrompts []string `json:"journaling_prompts"`
}

// RiskSummary is the day's risk assessment.
type RiskSummary struct {
	Level   string   `json:"level"`
	Score   int      `json:"score"`
	Factors []string `json:"factors,omitempty"`
}
