package analysis

import (
	"errors"
	"testing"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

func part(name string, kv ...any) domain.Part {
	s := domain.Stats{}
	for i := 0; i+1 < len(kv); i += 2 {
		k := kv[i].(string)
		switch v := kv[i+1].(type) {
		case int:
			s[k] = domain.Number(float64(v))
		case string:
			s[k] = domain.Text(v)
		}
	}
	return domain.Part{Name: name, Stats: s}
}

func TestCompare(t *testing.T) {
	parts := []domain.Part{
		part("Dran Sword", "attack", 7, "defense", 3, "type", "Attack"),
		part("Hells Scythe", "attack", 4, "defense", 4, "weight", 35),
	}

	cmp, err := Compare(parts, "dran sword", "HELLS SCYTHE")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	want := []struct {
		stat  string
		delta float64
	}{{"attack", 3}, {"defense", -1}, {"weight", -35}}
	if len(cmp.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), cmp.Rows)
	}
	for i, w := range want {
		if cmp.Rows[i].Stat != w.stat || cmp.Rows[i].Delta != w.delta {
			t.Fatalf("row %d: got %+v, want %s %v", i, cmp.Rows[i], w.stat, w.delta)
		}
	}
	if cmp.Rows[2].A.Kind != domain.StatNull {
		t.Fatalf("missing stat must be reported as null, got %v", cmp.Rows[2].A)
	}
}

func TestCompare_NoStatsIsEmpty(t *testing.T) {
	parts := []domain.Part{part("Homebrew A"), part("Homebrew B")}
	cmp, err := Compare(parts, "Homebrew A", "Homebrew B")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(cmp.Rows) != 0 {
		t.Fatalf("expected empty comparison, got %+v", cmp.Rows)
	}
}

func TestCompare_Missing(t *testing.T) {
	parts := []domain.Part{part("Dran Sword", "attack", 7)}
	if _, err := Compare(parts, "Dran Sword", "Wizard Arrow"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRank_StableDescending(t *testing.T) {
	parts := []domain.Part{
		part("A", "attack", 3),
		part("B", "attack", 7),
		part("C"),
		part("D", "attack", 3),
		part("E", "attack", "high"),
		part("F", "attack", 9),
	}
	got := Rank(parts, "attack")
	want := []string{"F", "B", "A", "D"}
	if len(got) != len(want) {
		t.Fatalf("expected %d ranked parts, got %+v", len(want), got)
	}
	for i, n := range want {
		if got[i].Name != n {
			t.Fatalf("rank %d: got %s, want %s", i+1, got[i].Name, n)
		}
	}
}

func TestSuggestCombo(t *testing.T) {
	blades := []domain.Part{part("Dran Sword", "attack", 7, "stamina", 2), part("Wizard Arrow", "attack", 3, "stamina", 6), part("Copy", "attack", 7)}
	ratchets := []domain.Part{part("3-60", "attack", 3, "stamina", 3), part("Homebrew")}
	bits := []domain.Part{part("Flat (F)", "attack", 8, "stamina", 1, "type", "Attack"), part("Ball (B)", "attack", 1, "stamina", 7)}

	attack, err := SuggestCombo(blades, ratchets, bits, "attack")
	if err != nil {
		t.Fatalf("SuggestCombo: %v", err)
	}
	if attack.Blade.Name != "Dran Sword" || attack.Ratchet.Name != "3-60" || attack.Bit.Name != "Flat (F)" {
		t.Fatalf("unexpected attack combo %+v", attack)
	}
	if attack.Totals["attack"] != 18 || attack.Totals["stamina"] != 6 {
		t.Fatalf("unexpected totals %v", attack.Totals)
	}
	if _, ok := attack.Totals["type"]; ok {
		t.Fatalf("text stats must not be summed")
	}

	balance, err := SuggestCombo(blades, ratchets, bits, "Balance")
	if err != nil {
		t.Fatalf("SuggestCombo: %v", err)
	}
	if balance.Stat != "attack" || balance.Blade.Name != attack.Blade.Name || balance.Ratchet.Name != attack.Ratchet.Name || balance.Bit.Name != attack.Bit.Name {
		t.Fatalf("balance must pick like attack, got %+v", balance)
	}

	stamina, _ := SuggestCombo(blades, ratchets, bits, "stamina")
	if stamina.Blade.Name != "Wizard Arrow" || stamina.Bit.Name != "Ball (B)" {
		t.Fatalf("unexpected stamina combo %+v", stamina)
	}
}

func TestSuggestCombo_Errors(t *testing.T) {
	one := []domain.Part{part("X", "attack", 1)}
	if _, err := SuggestCombo(one, one, one, "speed"); !errors.Is(err, domain.ErrUnknownCombo) {
		t.Fatalf("expected ErrUnknownCombo, got %v", err)
	}
	if _, err := SuggestCombo(one, nil, one, "attack"); !errors.Is(err, domain.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
}

func TestGroupCounts(t *testing.T) {
	parts := []domain.Part{part("Wizard Arrow"), part("Dran Sword", "attack", 7), part("Wizard Arrow"), part("Dran Sword")}
	got := GroupCounts(parts)
	if len(got) != 2 || got[0].Name != "Dran Sword" || got[0].Count != 2 || got[1].Count != 2 {
		t.Fatalf("unexpected groups %+v", got)
	}
	if got[0].Stats.Num("attack") != 7 {
		t.Fatalf("group stats must come from the first copy")
	}
}
