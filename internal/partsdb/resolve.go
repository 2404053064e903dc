package partsdb

import (
	"strings"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/fuzzy"
)

// Rule tells which step of Resolve produced a match.
type Rule int

const (
	NoMatch Rule = iota
	MatchExact
	MatchAbbreviation
	MatchPrefix
	MatchFuzzy
)

func (r Rule) String() string {
	switch r {
	case MatchExact:
		return "exact"
	case MatchAbbreviation:
		return "abbreviation"
	case MatchPrefix:
		return "prefix"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

func lowerKey(s string) string {
	return strings.ToLower(s)
}

// Resolve maps a user-typed name to a reference entry. Rules are tried in
// order and the first hit wins:
//
//  1. case-insensitive exact name
//  2. "(QUERY)" inside a name, query upper- or lower-cased (bit short codes)
//  3. first name, in source order, starting with the query (case-insensitive)
//  4. closest name by similarity ratio, if at least fuzzy.DefaultCutoff
//
// A blank query never matches.
func (db *Database) Resolve(cat domain.Category, query string) (Entry, Rule, bool) {
	if strings.TrimSpace(query) == "" {
		return Entry{}, NoMatch, false
	}

	if e, ok := db.Lookup(cat, query); ok {
		return e, MatchExact, true
	}

	names := db.order[cat]
	upperTag := "(" + strings.ToUpper(query) + ")"
	lowerTag := "(" + strings.ToLower(query) + ")"
	for _, name := range names {
		if strings.Contains(name, upperTag) || strings.Contains(name, lowerTag) {
			return Entry{Name: name, Stats: db.entries[cat][name]}, MatchAbbreviation, true
		}
	}

	q := lowerKey(query)
	for _, name := range names {
		if strings.HasPrefix(lowerKey(name), q) {
			return Entry{Name: name, Stats: db.entries[cat][name]}, MatchPrefix, true
		}
	}

	if name, ok := fuzzy.CloseMatch(query, names, fuzzy.DefaultCutoff); ok {
		return Entry{Name: name, Stats: db.entries[cat][name]}, MatchFuzzy, true
	}
	return Entry{}, NoMatch, false
}
