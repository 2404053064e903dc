package partsdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

const testDB = `{
  "blades": {
    "Dran Sword": {"attack": 7, "defense": 3, "stamina": 2, "type": "Attack", "image_url": "https://img/dran.png"},
    "Hells Scythe": {"attack": 4, "defense": 4, "stamina": 4, "type": "Balance", "image_url": null},
    "Wizard Arrow": {"attack": 3, "defense": 3, "stamina": 6, "type": "Stamina"}
  },
  "ratchets": {
    "3-60": {"attack": 3, "defense": 4, "stamina": 3},
    "4-60": {"attack": 3, "defense": 5, "stamina": 3}
  },
  "bits": {
    "Needle (N)": {"attack": 1, "defense": 6, "stamina": 4, "type": "Defense"},
    "Metal Needle (MN)": {"attack": 2, "defense": 7, "stamina": 4, "type": "Defense"},
    "MN Fake": {"attack": 0, "defense": 0, "stamina": 0},
    "Flat (F)": {"attack": 8, "defense": 1, "stamina": 1, "type": "Attack"}
  },
  "comment": "ignored"
}`

func mustParse(t *testing.T) *Database {
	t.Helper()
	db, err := Parse([]byte(testDB))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return db
}

func TestParse_KeepsSourceOrder(t *testing.T) {
	db := mustParse(t)
	got := db.Names(domain.Bits)
	want := []string{"Needle (N)", "Metal Needle (MN)", "MN Fake", "Flat (F)"}
	if len(got) != len(want) {
		t.Fatalf("expected %d bits, got %#v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected[%d]=%q, got %q", i, want[i], got[i])
		}
	}
	if db.Len(domain.Blades) != 3 || db.Len(domain.Ratchets) != 2 {
		t.Fatalf("unexpected sizes: blades=%d ratchets=%d", db.Len(domain.Blades), db.Len(domain.Ratchets))
	}
	if url := db.ImageURL(domain.Blades, "dran sword"); url != "https://img/dran.png" {
		t.Fatalf("unexpected image url %q", url)
	}
	if url := db.ImageURL(domain.Blades, "Hells Scythe"); url != "" {
		t.Fatalf("null image url must read as empty, got %q", url)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	db, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if db == nil {
		t.Fatalf("expected usable empty database")
	}
	for _, c := range domain.Categories {
		if db.Len(c) != 0 {
			t.Fatalf("expected empty %s", c)
		}
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(`{"blades": {"Dran Sword": `), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	db, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for malformed database")
	}
	if db == nil || db.Len(domain.Blades) != 0 {
		t.Fatalf("expected usable empty database")
	}
}

func TestResolve(t *testing.T) {
	db := mustParse(t)

	tests := []struct {
		name  string
		cat   domain.Category
		query string
		want  string
		rule  Rule
	}{
		{"exact ignores case", domain.Blades, "dRAN sWORD", "Dran Sword", MatchExact},
		{"abbreviation beats prefix", domain.Bits, "MN", "Metal Needle (MN)", MatchAbbreviation},
		{"lowercase abbreviation", domain.Bits, "mn", "Metal Needle (MN)", MatchAbbreviation},
		{"single letter code", domain.Bits, "F", "Flat (F)", MatchAbbreviation},
		{"prefix", domain.Blades, "wiz", "Wizard Arrow", MatchPrefix},
		{"first prefix in source order", domain.Ratchets, "3", "3-60", MatchPrefix},
		{"fuzzy", domain.Blades, "Hels Scyth", "Hells Scythe", MatchFuzzy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, rule, ok := db.Resolve(tc.cat, tc.query)
			if !ok {
				t.Fatalf("expected a match for %q", tc.query)
			}
			if e.Name != tc.want || rule != tc.rule {
				t.Fatalf("got %q via %s, want %q via %s", e.Name, rule, tc.want, tc.rule)
			}
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	db := mustParse(t)
	for _, q := range []string{"Unicorn Striker", "", "   "} {
		if e, rule, ok := db.Resolve(domain.Blades, q); ok || rule != NoMatch {
			t.Fatalf("expected no match for %q, got %q via %s", q, e.Name, rule)
		}
	}
}
