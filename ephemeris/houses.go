package ephemeris

import "time"

// HouseThemes names the life theme of each solar house, indexed 1..12.
var HouseThemes = map[int]string{
	1:  "Self & Identity",
	2:  "Resources & Values",
	3:  "Communication & Learning",
	4:  "Home & Roots",
	5:  "Creativity & Joy",
	6:  "Health & Service",
	7:  "Partnerships",
	8:  "Transformation & Depth",
	9:  "Expansion & Beliefs",
	10: "Career & Calling",
	11: "Community & Vision",
	12: "Spirituality & Release",
}

// HouseFocus returns the solar house, 1 through 12, that target falls in
// relative to the natal Sun of birth. The house is the 30° sector of the
// forward arc from the natal solar longitude to the transiting one, so
// house 1 begins on the birthday and the houses advance through the
// personal year.
func (e *Engine) HouseFocus(target, birth time.Time) (int, error) {
	natal, err := e.SunLongitude(birth)
	if err != nil {
		return 0, err
	}
	transit, err := e.SunLongitude(target)
	if err != nil {
		return 0, err
	}
	house := int(Normalize(transit-natal)/30) + 1
	// A forward arc a hair under 360° can round into a 13th sector.
	if house > 12 {
		house = 12
	}
	return house, nil
}
