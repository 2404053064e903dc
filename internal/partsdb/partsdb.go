// Package partsdb loads the read-only reference database of part stats and
// resolves free-text part names against it.
package partsdb

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// Entry is a reference database record under its canonical name.
type Entry struct {
	Name  string
	Stats domain.Stats
}

// Database is immutable once built. Names keep the order of the source file,
// which the prefix rule of Resolve depends on.
type Database struct {
	order   map[domain.Category][]string
	entries map[domain.Category]map[string]domain.Stats
	lower   map[domain.Category]map[string]Entry
}

// Empty returns a database with all three categories present and no entries.
func Empty() *Database {
	db := &Database{
		order:   make(map[domain.Category][]string, len(domain.Categories)),
		entries: make(map[domain.Category]map[string]domain.Stats, len(domain.Categories)),
		lower:   make(map[domain.Category]map[string]Entry, len(domain.Categories)),
	}
	for _, c := range domain.Categories {
		db.entries[c] = map[string]domain.Stats{}
		db.lower[c] = map[string]Entry{}
	}
	return db
}

func (db *Database) add(cat domain.Category, name string, stats domain.Stats) {
	if stats == nil {
		stats = domain.Stats{}
	}
	if _, dup := db.entries[cat][name]; !dup {
		db.order[cat] = append(db.order[cat], name)
	}
	db.entries[cat][name] = stats
	// Names differing only in case collapse to the last one in the index.
	db.lower[cat][lowerKey(name)] = Entry{Name: name, Stats: stats}
}

// Load reads the reference database from path. A missing or malformed file
// is not fatal: the returned database is always usable (empty on failure) and
// the error only describes what went wrong.
func Load(path string) (*Database, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), fmt.Errorf("parts database %q: %w", path, domain.ErrNotFound)
		}
		return Empty(), fmt.Errorf("read parts database %q: %w", path, err)
	}
	db, err := Parse(b)
	if err != nil {
		return Empty(), fmt.Errorf("parse parts database %q: %w", path, err)
	}
	return db, nil
}

// Parse decodes a document of the form {"blades": {name: stats}, ...}.
// Unknown top-level keys are skipped.
func Parse(b []byte) (*Database, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	db := Empty()
	for dec.More() {
		key, err := nextKey(dec)
		if err != nil {
			return nil, err
		}
		cat := domain.Category(key)
		if !cat.Valid() {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("%s: %w", cat, err)
		}
		for dec.More() {
			name, err := nextKey(dec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", cat, err)
			}
			var stats domain.Stats
			if err := dec.Decode(&stats); err != nil {
				return nil, fmt.Errorf("%s[%q]: %w", cat, name, err)
			}
			db.add(cat, name, stats)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("%s: %w", cat, err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return db, nil
}

func nextKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// Names returns canonical names in source order.
func (db *Database) Names(cat domain.Category) []string {
	return append([]string(nil), db.order[cat]...)
}

func (db *Database) Len(cat domain.Category) int {
	return len(db.order[cat])
}

// Get looks up a canonical name exactly as stored.
func (db *Database) Get(cat domain.Category, name string) (Entry, bool) {
	stats, ok := db.entries[cat][name]
	if !ok {
		return Entry{}, false
	}
	return Entry{Name: name, Stats: stats}, true
}

// Lookup is the case-insensitive exact lookup.
func (db *Database) Lookup(cat domain.Category, name string) (Entry, bool) {
	e, ok := db.lower[cat][lowerKey(name)]
	return e, ok
}

// ImageURL returns the image_url stat of a part, if the database has one.
func (db *Database) ImageURL(cat domain.Category, name string) string {
	e, ok := db.Lookup(cat, name)
	if !ok {
		e, ok = db.Get(cat, name)
	}
	if !ok {
		return ""
	}
	v := e.Stats["image_url"]
	if v.Kind != domain.StatText {
		return ""
	}
	return v.Text
}
