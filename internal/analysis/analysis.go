// Package analysis holds the read-only views over a collection: part
// comparison, stat ranking, combo suggestion and grouped listings.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// StatDiff is one row of a comparison. A and B are the raw values (StatNull
// when the part lacks the key); Delta treats anything non-numeric as 0.
type StatDiff struct {
	Stat  string
	A, B  domain.StatValue
	Delta float64
}

type Comparison struct {
	A, B domain.Part
	Rows []StatDiff
}

func findPart(parts []domain.Part, name string) (domain.Part, bool) {
	for _, p := range parts {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.Part{}, false
}

// Compare looks up a and b case-insensitively (first copy wins) and diffs
// them over the union of their stat keys, sorted by key. Keys that are
// numeric on neither side carry no difference and are left out.
func Compare(parts []domain.Part, a, b string) (Comparison, error) {
	pa, okA := findPart(parts, a)
	pb, okB := findPart(parts, b)
	if !okA || !okB {
		missing := a
		if okA {
			missing = b
		}
		return Comparison{}, fmt.Errorf("%w: %q not in collection", domain.ErrNotFound, missing)
	}

	keys := make(map[string]struct{}, len(pa.Stats)+len(pb.Stats))
	for k := range pa.Stats {
		keys[k] = struct{}{}
	}
	for k := range pb.Stats {
		keys[k] = struct{}{}
	}

	out := Comparison{A: pa, B: pb, Rows: []StatDiff{}}
	for k := range keys {
		va, vb := pa.Stats[k], pb.Stats[k]
		fa, numA := va.Float()
		fb, numB := vb.Float()
		if !numA && !numB {
			continue
		}
		out.Rows = append(out.Rows, StatDiff{Stat: k, A: va, B: vb, Delta: fa - fb})
	}
	sort.Slice(out.Rows, func(i, j int) bool {
		return out.Rows[i].Stat < out.Rows[j].Stat
	})
	return out, nil
}

type Ranked struct {
	Name  string
	Value float64
}

// Rank returns every record with a numeric value for stat, highest first.
// Equal values keep collection order.
func Rank(parts []domain.Part, stat string) []Ranked {
	out := make([]Ranked, 0, len(parts))
	for _, p := range parts {
		if v, ok := p.Stats[stat].Float(); ok {
			out = append(out, Ranked{Name: p.Name, Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

var comboStats = map[string]string{
	"attack":  "attack",
	"defense": "defense",
	"stamina": "stamina",
	"balance": "attack",
}

// ComboTypes lists the accepted combo names.
var ComboTypes = []string{"attack", "defense", "stamina", "balance"}

// ComboStat maps a combo type to the stat it maximizes.
func ComboStat(combo string) (string, error) {
	stat, ok := comboStats[strings.ToLower(strings.TrimSpace(combo))]
	if !ok {
		return "", fmt.Errorf("%w: %q (use %s)", domain.ErrUnknownCombo, combo, strings.Join(ComboTypes, ", "))
	}
	return stat, nil
}

type Combo struct {
	Type    string
	Stat    string
	Blade   domain.Part
	Ratchet domain.Part
	Bit     domain.Part
	// Totals sums the numeric stats of the three picks, by key.
	Totals map[string]float64
}

// best returns the first record holding the maximum of stat; a missing or
// non-numeric stat counts as 0.
func best(parts []domain.Part, stat string) domain.Part {
	top := parts[0]
	topVal := top.Stats.Num(stat)
	for _, p := range parts[1:] {
		if v := p.Stats.Num(stat); v > topVal {
			top, topVal = p, v
		}
	}
	return top
}

// SuggestCombo picks, per category, the part with the highest value of the
// combo's stat.
func SuggestCombo(blades, ratchets, bits []domain.Part, combo string) (Combo, error) {
	stat, err := ComboStat(combo)
	if err != nil {
		return Combo{}, err
	}
	for _, c := range []struct {
		cat   domain.Category
		parts []domain.Part
	}{{domain.Blades, blades}, {domain.Ratchets, ratchets}, {domain.Bits, bits}} {
		if len(c.parts) == 0 {
			return Combo{}, fmt.Errorf("%w: no %s in collection", domain.ErrEmptyCategory, c.cat)
		}
	}

	out := Combo{
		Type:    strings.ToLower(strings.TrimSpace(combo)),
		Stat:    stat,
		Blade:   best(blades, stat),
		Ratchet: best(ratchets, stat),
		Bit:     best(bits, stat),
		Totals:  map[string]float64{},
	}
	for _, p := range []domain.Part{out.Blade, out.Ratchet, out.Bit} {
		for k, v := range p.Stats {
			if f, ok := v.Float(); ok {
				out.Totals[k] += f
			}
		}
	}
	return out, nil
}

// Group is one distinct owned name with its copy count. Stats come from the
// first copy.
type Group struct {
	Name  string
	Count int
	Stats domain.Stats
}

// GroupCounts groups records by exact name, sorted by name.
func GroupCounts(parts []domain.Part) []Group {
	byName := make(map[string]int, len(parts))
	var out []Group
	for _, p := range parts {
		if i, ok := byName[p.Name]; ok {
			out[i].Count++
			continue
		}
		byName[p.Name] = len(out)
		out = append(out, Group{Name: p.Name, Count: 1, Stats: p.Stats})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
