package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattabott/beyblade-x-collection/internal/analysis"
	"github.com/mattabott/beyblade-x-collection/internal/collection"
	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/partsdb"
)

const (
	imageKey = "image_url"
	// Longest ranking bar; stat values are user data and may be huge.
	maxBar = 50
)

var titleCase = cases.Title(language.English)

// Label turns a stat key into a column label: "burst_resistance" -> "Burst Resistance".
func Label(stat string) string {
	return titleCase.String(strings.ReplaceAll(stat, "_", " "))
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatStats(s domain.Stats) string {
	var parts []string
	for _, k := range s.Keys() {
		if k == imageKey {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", Label(k), s[k]))
	}
	return strings.Join(parts, " | ")
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("=", n))
}

// PrintParts lists owned parts of one category grouped by name.
func PrintParts(w io.Writer, cat domain.Category, parts []domain.Part, db *partsdb.Database) {
	if len(parts) == 0 {
		fmt.Fprintf(w, "No %s in collection.\n", cat)
		return
	}
	fmt.Fprintf(w, "%s in collection (%d parts):\n", strings.ToUpper(string(cat)), len(parts))
	rule(w, 80)
	for _, g := range analysis.GroupCounts(parts) {
		count := ""
		if g.Count > 1 {
			count = fmt.Sprintf("x%d", g.Count)
		}
		stats := formatStats(g.Stats)
		if stats == "" {
			stats = "no stats"
		}
		fmt.Fprintf(w, "  - %-25s %-4s %s\n", g.Name, count, stats)
		if url := db.ImageURL(cat, g.Name); url != "" {
			fmt.Fprintf(w, "      %s\n", url)
		}
	}
	rule(w, 80)
}

func PrintComparison(w io.Writer, cmp analysis.Comparison) {
	fmt.Fprintf(w, "%s vs %s\n", cmp.A.Name, cmp.B.Name)
	rule(w, 70)
	if len(cmp.Rows) == 0 {
		fmt.Fprintln(w, "No comparable stats.")
		rule(w, 70)
		return
	}
	fmt.Fprintf(w, "%-20s | %-15s | %-15s | Diff\n", "Stat", cmp.A.Name, cmp.B.Name)
	for _, r := range cmp.Rows {
		mark := "="
		switch {
		case r.Delta > 0:
			mark = "<"
		case r.Delta < 0:
			mark = ">"
		}
		sign := ""
		if r.Delta >= 0 {
			sign = "+"
		}
		fmt.Fprintf(w, "%-20s | %-15s | %-15s | %s%s %s\n", Label(r.Stat), r.A, r.B, sign, formatNum(r.Delta), mark)
	}
	rule(w, 70)
}

func PrintRanking(w io.Writer, cat domain.Category, stat string, ranked []analysis.Ranked) {
	if len(ranked) == 0 {
		fmt.Fprintf(w, "No %s with stat %q.\n", cat, stat)
		return
	}
	fmt.Fprintf(w, "%s by %s\n", strings.ToUpper(string(cat)), Label(stat))
	rule(w, 50)
	for i, r := range ranked {
		bar := ""
		if r.Value > 0 {
			bar = strings.Repeat("#", int(math.Min(r.Value, maxBar)))
		}
		fmt.Fprintf(w, "%2d. %-25s %3s %s\n", i+1, r.Name, formatNum(r.Value), bar)
	}
	rule(w, 50)
}

func PrintCombo(w io.Writer, c analysis.Combo) {
	fmt.Fprintf(w, "Suggested %s combo (by %s)\n", c.Type, Label(c.Stat))
	rule(w, 60)
	fmt.Fprintf(w, "Blade:   %s\n", c.Blade.Name)
	fmt.Fprintf(w, "Ratchet: %s\n", c.Ratchet.Name)
	fmt.Fprintf(w, "Bit:     %s\n", c.Bit.Name)
	rule(w, 60)
	totals := make(domain.Stats, len(c.Totals))
	for k, v := range c.Totals {
		totals[k] = domain.Number(v)
	}
	fmt.Fprintln(w, "Total stats:")
	for _, k := range totals.Keys() {
		fmt.Fprintf(w, "  %-20s: %s\n", Label(k), formatNum(c.Totals[k]))
	}
	rule(w, 60)
}

func orEmpty(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func PrintDeck(w io.Writer, name string, d domain.Deck) {
	fmt.Fprintf(w, "Deck: %s\n", name)
	rule(w, 70)
	for i, bey := range d.Slots {
		if bey.Empty() {
			fmt.Fprintf(w, "%s: [empty]\n", domain.SlotIDs[i])
			continue
		}
		fmt.Fprintf(w, "%s:\n", domain.SlotIDs[i])
		fmt.Fprintf(w, "  Blade:   %s\n", orEmpty(bey.Blade))
		fmt.Fprintf(w, "  Ratchet: %s\n", orEmpty(bey.Ratchet))
		fmt.Fprintf(w, "  Bit:     %s\n", orEmpty(bey.Bit))
	}
	rule(w, 70)
}

func PrintDecks(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No decks.")
		return
	}
	fmt.Fprintln(w, "Decks:")
	for _, n := range names {
		fmt.Fprintf(w, "  - %s\n", n)
	}
}

// PrintDatabase lists reference entries in source order with their type.
func PrintDatabase(w io.Writer, cat domain.Category, db *partsdb.Database) {
	names := db.Names(cat)
	fmt.Fprintf(w, "%s in database (%d):\n", strings.ToUpper(string(cat)), len(names))
	for _, n := range names {
		e, _ := db.Get(cat, n)
		typ := ""
		if v, ok := e.Stats["type"]; ok && v.Kind == domain.StatText {
			typ = " (" + v.Text + ")"
		}
		fmt.Fprintf(w, "  - %s%s\n", n, typ)
	}
}

func PrintAdded(w io.Writer, cat domain.Category, res collection.AddResult) {
	if res.Rule == partsdb.NoMatch {
		fmt.Fprintf(w, "Added %s %q without stats (not in database).\n", cat.Singular(), res.Part.Name)
	} else {
		fmt.Fprintf(w, "Added %s %q.\n", cat.Singular(), res.Part.Name)
	}
	if res.Copies > 1 {
		fmt.Fprintf(w, "You now own %d copies.\n", res.Copies)
	}
}

// PrintBatch reports each item and the totals of a batch operation.
func PrintBatch(w io.Writer, verb string, res collection.BatchResult) {
	for _, it := range res.Items {
		if it.Err != nil {
			fmt.Fprintf(w, "  FAIL %s:%s: %v\n", it.Ref.Category.Singular(), it.Ref.Name, it.Err)
			continue
		}
		fmt.Fprintf(w, "  ok   %s %s (owned: %d)\n", it.Ref.Category.Singular(), it.Name, it.Copies)
	}
	fmt.Fprintf(w, "%s %d/%d parts.\n", verb, res.OK, len(res.Items))
}

func PrintBackupSummary(w io.Writer, sum collection.BackupSummary) {
	fmt.Fprintf(w, "Backup %s (%s):\n", sum.Path, humanize.Bytes(uint64(sum.Size)))
	for _, cat := range domain.Categories {
		fmt.Fprintf(w, "  %-9s %d\n", cat, sum.Counts[cat])
	}
	fmt.Fprintf(w, "  %-9s %d\n", "decks", sum.Decks)
}
