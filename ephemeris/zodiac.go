package ephemeris

// Element is the classical element of a zodiac sign.
type Element string

const (
	ElementFire  Element = "Fire"
	ElementEarth Element = "Earth"
	ElementAir   Element = "Air"
	ElementWater Element = "Water"
)

// Modality is the quality of a zodiac sign.
type Modality string

const (
	ModalityCardinal Modality = "Cardinal"
	ModalityFixed    Modality = "Fixed"
	ModalityMutable  Modality = "Mutable"
)

// Sign is one of the twelve 30-degree segments of the ecliptic.
type Sign struct {
	Name     string
	Element  Element
	Modality Modality
}

// Signs lists the twelve signs in ecliptic order starting at 0° Aries.
var Signs = [12]Sign{
	{Name: "Aries", Element: ElementFire, Modality: ModalityCardinal},
	{Name: "Taurus", Element: ElementEarth, Modality: ModalityFixed},
	{Name: "Gemini", Element: ElementAir, Modality: ModalityMutable},
	{Name: "Cancer", Element: ElementWater, Modality: ModalityCardinal},
	{Name: "Leo", Element: ElementFire, Modality: ModalityFixed},
	{Name: "Virgo", Element: ElementEarth, Modality: ModalityMutable},
	{Name: "Libra", Element: ElementAir, Modality: ModalityCardinal},
	{Name: "Scorpio", Element: ElementWater, Modality: ModalityFixed},
	{Name: "Sagittarius", Element: ElementFire, Modality: ModalityMutable},
	{Name: "Capricorn", Element: ElementEarth, Modality: ModalityCardinal},
	{Name: "Aquarius", Element: ElementAir, Modality: ModalityFixed},
	{Name: "Pisces", Element: ElementWater, Modality: ModalityMutable},
}

// SignFor maps an ecliptic longitude in degrees to its zodiac sign. The
// longitude is normalized first, so any real value is valid input.
func SignFor(longitude float64) Sign {
	idx := int(Normalize(longitude) / 30)
	// Normalize returns values strictly below 360, but float rounding at
	// the top edge can still land exactly on it.
	if idx > 11 {
		idx = 11
	}
	return Signs[idx]
}
