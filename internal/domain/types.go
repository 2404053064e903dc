package domain

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Category is one of the three part kinds. The value doubles as the JSON key
// used by both the reference database and the collection file.
type Category string

const (
	Blades   Category = "blades"
	Ratchets Category = "ratchets"
	Bits     Category = "bits"
)

// Categories lists every category in file order.
var Categories = []Category{Blades, Ratchets, Bits}

var categoryAliases = map[string]Category{
	"blades":   Blades,
	"blade":    Blades,
	"b":        Blades,
	"ratchets": Ratchets,
	"ratchet":  Ratchets,
	"r":        Ratchets,
	"bits":     Bits,
	"bit":      Bits,
	"t":        Bits,
}

// ParseCategory accepts the plural key, the singular form, or the one-letter
// quick-entry code (b, r, t).
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (use blades, ratchets or bits)", ErrInvalidCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	return c == Blades || c == Ratchets || c == Bits
}

// Singular returns "blade", "ratchet" or "bit".
func (c Category) Singular() string {
	return strings.TrimSuffix(string(c), "s")
}

// PartRef is a (category, name) pair as typed by the user, e.g. "b:Dran Sword".
type PartRef struct {
	Category Category
	Name     string
}

// ParsePartRef parses the quick-entry syntax <type>:<name>.
func ParsePartRef(s string) (PartRef, error) {
	abbr, name, ok := strings.Cut(s, ":")
	if !ok {
		return PartRef{}, fmt.Errorf("malformed part %q (expected type:name, e.g. b:Dran Sword)", s)
	}
	cat, err := ParseCategory(abbr)
	if err != nil {
		return PartRef{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return PartRef{}, fmt.Errorf("malformed part %q: empty name", s)
	}
	return PartRef{Category: cat, Name: name}, nil
}

type StatKind int

const (
	StatNull StatKind = iota
	StatNumber
	StatText
	StatOther
)

// StatValue is one entry of a stat mapping. Reference data is mostly numeric
// but also carries strings (type, image_url), nulls, and the occasional
// arbitrary JSON value, which is kept verbatim.
type StatValue struct {
	Kind StatKind
	Num  float64
	Text string
	raw  []byte
}

func Number(v float64) StatValue { return StatValue{Kind: StatNumber, Num: v} }
func Text(s string) StatValue    { return StatValue{Kind: StatText, Text: s} }

// Float returns the numeric value, or false for anything that is not a number.
func (v StatValue) Float() (float64, bool) {
	if v.Kind != StatNumber {
		return 0, false
	}
	return v.Num, true
}

func (v StatValue) String() string {
	switch v.Kind {
	case StatNumber:
		if v.raw != nil {
			return string(v.raw)
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case StatText:
		return v.Text
	case StatOther:
		return string(v.raw)
	default:
		return "null"
	}
}

func (v *StatValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = StatValue{Kind: StatNull}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = StatValue{Kind: StatText, Text: s}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("stat value %s: %w", b, err)
		}
		*v = StatValue{Kind: StatNumber, Num: f, raw: append([]byte(nil), b...)}
	default:
		*v = StatValue{Kind: StatOther, raw: append([]byte(nil), b...)}
	}
	return nil
}

func (v StatValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case StatNumber:
		if v.raw != nil {
			return v.raw, nil
		}
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	case StatText:
		return json.Marshal(v.Text)
	case StatOther:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

// Stats maps a stat name to its value.
type Stats map[string]StatValue

// Clone returns an independent copy so that collection records never alias
// reference database entries.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Num returns the numeric value of key, treating a missing or non-numeric
// value as 0.
func (s Stats) Num(key string) float64 {
	f, _ := s[key].Float()
	return f
}

// Keys returns the stat names in sorted order.
func (s Stats) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Part is one owned physical part. Duplicates are distinct records.
type Part struct {
	Name  string `json:"name"`
	Stats Stats  `json:"stats"`
}

func (p Part) MarshalJSON() ([]byte, error) {
	type raw Part
	r := raw(p)
	if r.Stats == nil {
		r.Stats = Stats{}
	}
	return json.Marshal(r)
}

// Beyblade is one deck slot: a blade/ratchet/bit triple, any of which may be
// unset.
type Beyblade struct {
	Blade   *string `json:"blade"`
	Ratchet *string `json:"ratchet"`
	Bit     *string `json:"bit"`
}

func (b Beyblade) Empty() bool {
	return b.Blade == nil && b.Ratchet == nil && b.Bit == nil
}

// Role returns the part name held for the given category.
func (b Beyblade) Role(c Category) *string {
	switch c {
	case Blades:
		return b.Blade
	case Ratchets:
		return b.Ratchet
	case Bits:
		return b.Bit
	}
	return nil
}

// SlotIDs are the three fixed deck slot keys.
var SlotIDs = []string{"beyblade1", "beyblade2", "beyblade3"}

// ParseSlot normalizes a slot identifier. "2" and "beyblade2" are equivalent.
func ParseSlot(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, id := range SlotIDs {
		if s == id || s == strconv.Itoa(i+1) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (use beyblade1, beyblade2, beyblade3)", ErrInvalidSlot, s)
}

// Deck holds exactly three slots.
type Deck struct {
	Slots [3]Beyblade
	// ignored lists keys of the stored object that are not slots.
	ignored []string
}

// IgnoredKeys returns the non-slot keys skipped when the deck was decoded.
func (d Deck) IgnoredKeys() []string {
	return d.ignored
}

func (d Deck) MarshalJSON() ([]byte, error) {
	// Field order follows SlotIDs.
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range SlotIDs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(id)
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(d.Slots[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Deck) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out Deck
	for k, raw := range m {
		// Older files wrote the slot keys with a leading space.
		i, err := ParseSlot(k)
		if err != nil {
			out.ignored = append(out.ignored, k)
			continue
		}
		if err := json.Unmarshal(raw, &out.Slots[i]); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	sort.Strings(out.ignored)
	*d = out
	return nil
}

// Collection is the persisted root aggregate.
type Collection struct {
	Blades   []Part          `json:"blades"`
	Ratchets []Part          `json:"ratchets"`
	Bits     []Part          `json:"bits"`
	Decks    map[string]Deck `json:"decks"`
}

// NewCollection returns an empty collection with all containers allocated.
func NewCollection() *Collection {
	return &Collection{
		Blades:   []Part{},
		Ratchets: []Part{},
		Bits:     []Part{},
		Decks:    map[string]Deck{},
	}
}

// Parts returns a pointer to the category's sequence so callers can append or
// splice in place.
func (c *Collection) Parts(cat Category) *[]Part {
	switch cat {
	case Blades:
		return &c.Blades
	case Ratchets:
		return &c.Ratchets
	case Bits:
		return &c.Bits
	}
	return nil
}

// Normalize replaces nil containers left by a partial document.
func (c *Collection) Normalize() {
	for _, cat := range Categories {
		p := c.Parts(cat)
		if *p == nil {
			*p = []Part{}
		}
	}
	if c.Decks == nil {
		c.Decks = map[string]Deck{}
	}
}

// TotalParts counts records across all categories.
func (c *Collection) TotalParts() int {
	return len(c.Blades) + len(c.Ratchets) + len(c.Bits)
}
