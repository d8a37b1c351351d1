package astro

// Static zodiac configuration. These tables are canonical and never mutated
// at runtime; behavior that consumes them lives in the sibling files.

// SignNames lists the 12 zodiac signs, index 0 = Aries.
var SignNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Modality classifies a sign as movable (chara), fixed (sthira), or dual
// (dvisvabhava). The Chara dasha counting direction depends on it.
type Modality int

const (
	Movable Modality = iota
	Fixed
	Dual
)

// SignModality returns the modality of a sign index (0..11).
// The pattern repeats movable, fixed, dual starting at Aries.
func SignModality(sign int) Modality {
	switch sign % 3 {
	case 0:
		return Movable
	case 1:
		return Fixed
	default:
		return Dual
	}
}

// SignRulers maps each sign index to its ruling planet.
var SignRulers = [12]Body{
	Mars,    // Aries
	Venus,   // Taurus
	Mercury, // Gemini
	Moon,    // Cancer
	Sun,     // Leo
	Mercury, // Virgo
	Venus,   // Libra
	Mars,    // Scorpio
	Jupiter, // Sagittarius
	Saturn,  // Capricorn
	Saturn,  // Aquarius
	Jupiter, // Pisces
}

// NakshatraNames lists the 27 lunar mansions, index 0 = Ashwini.
var NakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira",
	"Ardra", "Punarvasu", "Pushya", "Ashlesha", "Magha",
	"Purva Phalguni", "Uttara Phalguni", "Hasta", "Chitra", "Swati",
	"Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// nakshatraLordCycle is the nine-planet rulership cycle that repeats three
// times across the 27 nakshatras, starting with Ketu at Ashwini. The same
// order drives the Vimshottari mahadasha sequence.
var nakshatraLordCycle = [9]Body{
	Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury,
}

// NakshatraLord returns the ruling planet of a nakshatra index (0..26).
func NakshatraLord(nakshatra int) Body {
	return nakshatraLordCycle[nakshatra%9]
}

// DashaOrder returns the fixed nine-ruler cycle used by the Vimshottari
// system, beginning at the given ruler. The slice always has length 9.
func DashaOrder(first Body) []Body {
	start := 0
	for i, b := range nakshatraLordCycle {
		if b == first {
			start = i
			break
		}
	}
	out := make([]Body, 9)
	for i := range out {
		out[i] = nakshatraLordCycle[(start+i)%9]
	}
	return out
}
