package astro

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.99, 359.99},
		{360, 0},
		{361, 1},
		{720.5, 0.5},
		{-1, 359},
		{-360, 0},
		{-725, 355},
		{-1e-14, 0}, // adding 360 rounds to 360 exactly; must clamp to 0
		{-1e-300, 0},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// The half-open contract: no input may ever produce 360.
	for _, in := range []float64{-1e-14, -1e-9, 360 - 1e-13, -360 - 1e-14} {
		if got := Normalize(in); got >= 360 {
			t.Errorf("Normalize(%v) = %v, breaches [0, 360)", in, got)
		}
	}
}

func TestSignIndex(t *testing.T) {
	tests := []struct {
		lon  float64
		want int
		name string
	}{
		{0, 0, "Aries"},
		{29.999, 0, "Aries"},
		{30, 1, "Taurus"},
		{123.45, 4, "Leo"},
		{359.999, 11, "Pisces"},
	}
	for _, tt := range tests {
		got := SignIndex(tt.lon)
		if got != tt.want {
			t.Errorf("SignIndex(%v) = %d, want %d", tt.lon, got, tt.want)
		}
		if SignNames[got] != tt.name {
			t.Errorf("SignNames[%d] = %q, want %q", got, SignNames[got], tt.name)
		}
	}

	// Every longitude within one 30-degree band maps to the same sign.
	for deg := 0.0; deg < 30; deg += 0.5 {
		if got := SignIndex(60 + deg); got != 2 {
			t.Fatalf("SignIndex(%v) = %d, want 2", 60+deg, got)
		}
	}
}

func TestDegreeInSign(t *testing.T) {
	if got := DegreeInSign(123.45); math.Abs(got-3.45) > 1e-9 {
		t.Errorf("DegreeInSign(123.45) = %v, want 3.45", got)
	}
	if got := DegreeInSign(30); got != 0 {
		t.Errorf("DegreeInSign(30) = %v, want 0", got)
	}
}

func TestNakshatraAndPada(t *testing.T) {
	tests := []struct {
		lon       float64
		nakshatra int
		pada      int
	}{
		{0, 0, 1},
		{3.32, 0, 1},
		{3.34, 0, 2},            // second quarter of Ashwini
		{13.34, 1, 1},           // Bharani starts at 13°20'
		{100.0, 7, 3},           // Pushya
		{359.99, 26, 4},         // last quarter of Revati
		{93.3334, 7, 1},         // Pushya boundary
		{133.3334 + 360, 10, 1}, // normalization applies first
	}
	for _, tt := range tests {
		if got := NakshatraIndex(tt.lon); got != tt.nakshatra {
			t.Errorf("NakshatraIndex(%v) = %d, want %d", tt.lon, got, tt.nakshatra)
		}
		if got := Pada(tt.lon); got != tt.pada {
			t.Errorf("Pada(%v) = %d, want %d", tt.lon, got, tt.pada)
		}
	}

	// Exact quarter boundaries belong to the quarter they open. Floating
	// remainders drift here (100/PadaArc lands a hair under 30), so every
	// quarter boundary that is exact in binary, the multiples of 10
	// degrees, is pinned explicitly.
	for k := 0; k < 36; k++ {
		lon := float64(10 * k)
		q := 3 * k
		if got := NakshatraIndex(lon); got != q/4 {
			t.Errorf("NakshatraIndex(%v) = %d, want %d", lon, got, q/4)
		}
		if got := Pada(lon); got != q%4+1 {
			t.Errorf("Pada(%v) = %d, want %d", lon, got, q%4+1)
		}
	}
}

func TestNakshatraProgress(t *testing.T) {
	// Midpoint of Pushya: nakshatra 7 spans [93°20', 106°40').
	mid := 7*NakshatraArc + NakshatraArc/2
	if got := NakshatraProgress(mid); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("NakshatraProgress(%v) = %v, want 0.5", mid, got)
	}
	if got := NakshatraProgress(0); got != 0 {
		t.Errorf("NakshatraProgress(0) = %v, want 0", got)
	}
}

func TestHouse(t *testing.T) {
	asc := 95.0

	tests := []struct {
		lon  float64
		want int
	}{
		{95, 1},
		{96, 1},
		{124.999, 1},
		{125, 2},
		{275, 7},
		{94.999, 12},
		{65, 12},
	}
	for _, tt := range tests {
		if got := House(tt.lon, asc); got != tt.want {
			t.Errorf("House(%v, %v) = %d, want %d", tt.lon, asc, got, tt.want)
		}
	}

	// The ascendant longitude itself is always house 1, and a hair less
	// wraps to house 12, for any ascendant.
	for _, a := range []float64{0, 17.3, 180, 359.5} {
		if got := House(a, a); got != 1 {
			t.Errorf("House(asc, asc) = %d for asc %v, want 1", got, a)
		}
		if got := House(a-1e-6+360, a); got != 12 {
			t.Errorf("House(asc-ε, asc) = %d for asc %v, want 12", got, a)
		}
	}
}

func TestNewPlacement(t *testing.T) {
	pos := Position{Body: Jupiter, Longitude: 123.45, Speed: -0.05}
	p := NewPlacement(pos, 95.0)

	if p.Body != Jupiter {
		t.Errorf("Body = %v", p.Body)
	}
	if p.Sign != 4 || p.SignName != "Leo" {
		t.Errorf("Sign = %d (%s), want 4 (Leo)", p.Sign, p.SignName)
	}
	if math.Abs(p.Degree-3.45) > 1e-9 {
		t.Errorf("Degree = %v, want 3.45", p.Degree)
	}
	if p.Nakshatra != 9 || p.NakshatraName != "Magha" {
		t.Errorf("Nakshatra = %d (%s), want 9 (Magha)", p.Nakshatra, p.NakshatraName)
	}
	if p.House != 1 {
		t.Errorf("House = %d, want 1", p.House)
	}
	if !p.Retrograde {
		t.Error("negative speed should mark retrograde")
	}
}

func TestSignModality(t *testing.T) {
	tests := []struct {
		sign int
		want Modality
	}{
		{0, Movable}, // Aries
		{1, Fixed},   // Taurus
		{2, Dual},    // Gemini
		{9, Movable}, // Capricorn
		{10, Fixed},  // Aquarius
		{11, Dual},   // Pisces
	}
	for _, tt := range tests {
		if got := SignModality(tt.sign); got != tt.want {
			t.Errorf("SignModality(%d) = %v, want %v", tt.sign, got, tt.want)
		}
	}
}

func TestNakshatraLordCycle(t *testing.T) {
	// The nine-lord cycle repeats exactly three times over 27 nakshatras.
	for n := 0; n < 27; n++ {
		if NakshatraLord(n) != NakshatraLord(n%9) {
			t.Errorf("lord of nakshatra %d should match nakshatra %d", n, n%9)
		}
	}
	if NakshatraLord(0) != Ketu {
		t.Errorf("Ashwini's lord = %v, want Ketu", NakshatraLord(0))
	}
	if NakshatraLord(3) != Moon {
		t.Errorf("Rohini's lord = %v, want Moon", NakshatraLord(3))
	}
}

func TestDashaOrder(t *testing.T) {
	order := DashaOrder(Saturn)
	if len(order) != 9 {
		t.Fatalf("len = %d, want 9", len(order))
	}
	if order[0] != Saturn {
		t.Errorf("first = %v, want Saturn", order[0])
	}
	if order[1] != Mercury || order[8] != Jupiter {
		t.Errorf("unexpected cycle: %v", order)
	}

	// All nine rulers appear exactly once.
	seen := map[Body]bool{}
	for _, b := range order {
		if seen[b] {
			t.Fatalf("duplicate ruler %v", b)
		}
		seen[b] = true
	}
}
