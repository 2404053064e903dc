// Package fuzzy picks the closest spelling of a name among candidates using
// difflib's sequence-similarity ratio.
package fuzzy

import (
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity accepted for a close match.
const DefaultCutoff = 0.6

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Ratio returns the similarity of a and b in [0, 1].
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// CloseMatch returns the candidate most similar to word whose ratio is at
// least cutoff. On equal ratios the lexically greater candidate wins, which
// keeps the result independent of candidate order.
func CloseMatch(word string, candidates []string, cutoff float64) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	m := difflib.NewMatcher(nil, runes(word))

	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		m.SetSeq1(runes(c))
		// Cheap upper bounds first.
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		score := m.Ratio()
		if score < cutoff {
			continue
		}
		if score > bestScore || (score == bestScore && c > best) {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0
}
