package astro

import (
	"sort"

	"github.com/vedanga/jyotish/pkg/errors"
)

// KarakaRole is one of the fixed significator roles, in rank order.
type KarakaRole struct {
	Name      string `json:"name"`
	Signifies string `json:"signifies"`
}

// karakaRoles is the eight-role Jaimini scheme in rank order. The
// seven-planet scheme omits Pitrikaraka; the father's signification folds
// into the Sun by tradition rather than by rank.
var karakaRoles = [8]KarakaRole{
	{Name: "Atmakaraka", Signifies: "soul"},
	{Name: "Amatyakaraka", Signifies: "career"},
	{Name: "Bhratrikaraka", Signifies: "siblings"},
	{Name: "Matrikaraka", Signifies: "mother"},
	{Name: "Pitrikaraka", Signifies: "father"},
	{Name: "Putrakaraka", Signifies: "children"},
	{Name: "Gnatikaraka", Signifies: "relatives"},
	{Name: "Darakaraka", Signifies: "spouse"},
}

// Karaka binds one role to the planet that earned it by rank.
type Karaka struct {
	Role      KarakaRole `json:"role"`
	Rank      int        `json:"rank"` // 1 = Atmakaraka
	Body      Body       `json:"body"`
	Longitude float64    `json:"longitude"`
}

// KarakaAssignment is a complete significator ranking for one chart.
// It is recomputed fresh per chart and never mutated.
type KarakaAssignment struct {
	Karakas      []Karaka `json:"karakas"`
	IncludesRahu bool     `json:"includes_rahu"`
}

// Atmakaraka returns the top-ranked significator.
func (a KarakaAssignment) Atmakaraka() Karaka { return a.Karakas[0] }

// RankKarakas orders the chara planets by descending longitude and maps
// them onto the fixed role list.
//
// By default the seven classical planets participate (seven roles, with
// Pitrikaraka omitted). With includeRahu true, Rahu joins for the
// eight-karaka scheme and all eight roles are assigned.
//
// Longitude ties are broken by a fixed precedence: Sun, Moon, Mars,
// Mercury, Jupiter, Venus, Saturn, Rahu. A ranking is therefore always
// deterministic for a given position set.
//
// Returns INVALID_INPUT if a required planet's position is missing.
func RankKarakas(positions []Position, includeRahu bool) (KarakaAssignment, error) {
	required := CharaPlanets
	if includeRahu {
		required = append(append([]Body{}, CharaPlanets...), Rahu)
	}

	byBody := make(map[Body]Position, len(positions))
	for _, p := range positions {
		byBody[p.Body] = p
	}

	ranked := make([]Position, 0, len(required))
	for _, b := range required {
		p, ok := byBody[b]
		if !ok {
			return KarakaAssignment{}, errors.New(errors.ErrCodeInvalidInput,
				"karaka ranking requires a position for %s", b)
		}
		ranked = append(ranked, p)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		li, lj := Normalize(ranked[i].Longitude), Normalize(ranked[j].Longitude)
		if li != lj {
			return li > lj
		}
		return ranked[i].Body < ranked[j].Body
	})

	roles := rolesFor(len(ranked))
	out := KarakaAssignment{
		Karakas:      make([]Karaka, len(ranked)),
		IncludesRahu: includeRahu,
	}
	for i, p := range ranked {
		out.Karakas[i] = Karaka{
			Role:      roles[i],
			Rank:      i + 1,
			Body:      p.Body,
			Longitude: Normalize(p.Longitude),
		}
	}
	return out, nil
}

// rolesFor selects the role list for the planet count: all eight roles for
// the Rahu-inclusive scheme, or seven with Pitrikaraka dropped.
func rolesFor(n int) []KarakaRole {
	if n >= len(karakaRoles) {
		return karakaRoles[:]
	}
	out := make([]KarakaRole, 0, n)
	for i, r := range karakaRoles {
		if i == 4 { // Pitrikaraka
			continue
		}
		out = append(out, r)
	}
	return out
}
