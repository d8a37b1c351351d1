package panchang

// Static luni-solar name tables. Index conventions follow the classical
// almanac: tithi 1..30, yoga 1..27, karana 1..60.

// tithiNames are the 15 lunar-day names of one paksha. The waxing half
// (1..15) and waning half (16..30) reuse the same names, except that the
// 15th of each half has its own: Purnima closes the waxing half (15) and
// Amavasya the waning half (30).
var tithiNames = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
}

// TithiName returns the name for a tithi index 1..30.
func TithiName(tithi int) string {
	if tithi == 30 {
		return "Amavasya"
	}
	return tithiNames[(tithi-1)%15]
}

// Paksha returns the lunar fortnight: "Shukla" (waxing, 1..15) or
// "Krishna" (waning, 16..30).
func Paksha(tithi int) string {
	if tithi <= 15 {
		return "Shukla"
	}
	return "Krishna"
}

// inauspiciousTithis are the rikta and dark tithis penalized by the
// auspiciousness score (Chaturthi, Ashtami, Navami, Chaturdashi, Amavasya).
var inauspiciousTithis = map[int]bool{4: true, 8: true, 9: true, 14: true, 30: true}

// yogaNames lists the 27 luni-solar yogas, index 1 = Vishkambha.
var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana",
	"Atiganda", "Sukarma", "Dhriti", "Shula", "Ganda",
	"Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra",
	"Siddhi", "Vyatipata", "Variyan", "Parigha", "Shiva",
	"Siddha", "Sadhya", "Shubha", "Shukla", "Brahma",
	"Indra", "Vaidhriti",
}

// YogaName returns the name for a yoga index 1..27.
func YogaName(yoga int) string { return yogaNames[yoga-1] }

// inauspiciousYogas per the classical malefic list.
var inauspiciousYogas = map[int]bool{
	1: true, 6: true, 9: true, 10: true, 13: true,
	15: true, 17: true, 19: true, 27: true,
}

// Karana names. Of the 60 half-tithis, four are fixed and non-repeating:
// index 1 (Kimstughna) and indices 58..60 (Shakuni, Chatushpada, Naga).
// The 56 indices between them cycle through the seven movable names.
// This fixed-then-repeating split is exact; it is not a uniform 60-cycle.
var movableKaranas = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
}

var fixedKaranas = map[int]string{
	1:  "Kimstughna",
	58: "Shakuni",
	59: "Chatushpada",
	60: "Naga",
}

// KaranaName returns the name for a karana index 1..60.
func KaranaName(karana int) string {
	if name, ok := fixedKaranas[karana]; ok {
		return name
	}
	return movableKaranas[(karana-2)%7]
}

// karanaAuspicious reports the nature of a karana. Vishti (Bhadra) and the
// three closing fixed karanas are inauspicious; Kimstughna and the rest of
// the movable set are auspicious.
func karanaAuspicious(karana int) bool {
	switch KaranaName(karana) {
	case "Vishti", "Shakuni", "Chatushpada", "Naga":
		return false
	}
	return true
}
