// Package collection owns the user's parts and decks: the in-memory store,
// its name index, and the policy that writes it back to disk.
package collection

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/partsdb"
)

// DefaultSaveInterval is the minimum time between two non-forced saves.
const DefaultSaveInterval = 5 * time.Second

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type Options struct {
	// Path of the collection JSON file. The backup lives at Path + ".backup".
	Path         string
	Database     *partsdb.Database
	SaveInterval time.Duration
	Logger       *logrus.Logger
	Clock        Clock
}

// Manager is the single owner of a collection. It is not safe for concurrent
// use; every method runs to completion before returning.
type Manager struct {
	path     string
	db       *partsdb.Database
	coll     *domain.Collection
	index    *Index
	dirty    bool
	lastSave time.Time
	interval time.Duration
	clock    Clock
	log      *logrus.Logger

	// loadErr is set when the file existed but could not be read or decoded.
	loadErr error
	// allowEmpty lifts the empty-over-non-empty guard, see AllowEmptySave.
	allowEmpty bool
}

// Open loads the collection at opts.Path. A missing file starts an empty
// collection; an unreadable or corrupt one does too, with a warning, and the
// save guard then keeps the bad file from being overwritten by nothing.
func Open(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Database == nil {
		opts.Database = partsdb.Empty()
	}
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = DefaultSaveInterval
	}

	m := &Manager{
		path:     opts.Path,
		db:       opts.Database,
		interval: opts.SaveInterval,
		clock:    opts.Clock,
		log:      opts.Logger,
	}

	coll, err := readCollection(m.path)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"file": m.path,
		}).Warnf("Cannot read collection, starting empty: %v", err)
		coll = domain.NewCollection()
		m.loadErr = err
	}
	for _, name := range sortedKeys(coll.Decks) {
		if keys := coll.Decks[name].IgnoredKeys(); len(keys) > 0 {
			m.log.WithFields(logrus.Fields{
				"file": m.path,
				"deck": name,
				"keys": keys,
			}).Warn("Ignoring unknown deck keys, they will be dropped on the next save")
		}
	}
	m.coll = coll
	m.index = BuildIndex(m.coll)
	m.lastSave = m.clock.Now()
	return m
}

func sortedKeys(decks map[string]domain.Deck) []string {
	names := make([]string, 0, len(decks))
	for n := range decks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AllowEmptySave lets later saves write an empty collection over a non-empty
// file, so the last owned part can be removed. It is refused when the file
// could not be loaded, since the empty state would then not be the user's.
func (m *Manager) AllowEmptySave() error {
	if m.loadErr != nil {
		return fmt.Errorf("%w: collection was not loaded: %v", domain.ErrStorageUnsafe, m.loadErr)
	}
	m.allowEmpty = true
	return nil
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Database() *partsdb.Database {
	return m.db
}

// Dirty reports whether there are unsaved mutations.
func (m *Manager) Dirty() bool {
	return m.dirty
}

func (m *Manager) markDirty() {
	m.dirty = true
}

// Parts returns a copy of the category's records in collection order.
func (m *Manager) Parts(cat domain.Category) []domain.Part {
	if !cat.Valid() {
		return nil
	}
	return append([]domain.Part(nil), *m.coll.Parts(cat)...)
}

// Count returns the number of owned copies of name (case-insensitive).
func (m *Manager) Count(cat domain.Category, name string) int {
	if !cat.Valid() {
		return 0
	}
	return m.index.Count(cat, name)
}

// TotalParts counts records across all categories.
func (m *Manager) TotalParts() int {
	return m.coll.TotalParts()
}

// Close force-saves pending changes, bypassing the save interval.
func (m *Manager) Close() error {
	if !m.dirty {
		return nil
	}
	return m.Save(true)
}
