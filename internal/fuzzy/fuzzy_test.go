package fuzzy

import "testing"

func TestRatio(t *testing.T) {
	if got := Ratio("abcd", "abcd"); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := Ratio("abcd", "wxyz"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	// 2*3 / 8
	if got := Ratio("abcd", "abce"); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestCloseMatch(t *testing.T) {
	names := []string{"Dran Sword", "Hells Scythe", "Wizard Arrow", "Knight Shield"}

	got, ok := CloseMatch("Dran Swrod", names, DefaultCutoff)
	if !ok || got != "Dran Sword" {
		t.Fatalf("expected Dran Sword, got %q ok=%v", got, ok)
	}

	if _, ok := CloseMatch("Xyzzy", names, DefaultCutoff); ok {
		t.Fatalf("expected no match for a dissimilar name")
	}
	if _, ok := CloseMatch("Dran Sword", nil, DefaultCutoff); ok {
		t.Fatalf("expected no match without candidates")
	}
}

func TestCloseMatch_IsCaseSensitive(t *testing.T) {
	// Every letter differs in case, so nothing lines up.
	if _, ok := CloseMatch("DRAN", []string{"dran"}, DefaultCutoff); ok {
		t.Fatalf("expected case-sensitive comparison")
	}
}

func TestCloseMatch_TieIsOrderIndependent(t *testing.T) {
	a, _ := CloseMatch("ab", []string{"ax", "ay"}, 0.5)
	b, _ := CloseMatch("ab", []string{"ay", "ax"}, 0.5)
	if a != b || a != "ay" {
		t.Fatalf("expected ay both times, got %q and %q", a, b)
	}
}
