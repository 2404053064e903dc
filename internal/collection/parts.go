package collection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/fuzzy"
	"github.com/mattabott/beyblade-x-collection/internal/partsdb"
)

// AddResult describes a successful AddPart.
type AddResult struct {
	Part domain.Part
	// Rule is partsdb.NoMatch when the name was kept as typed, without stats.
	Rule   partsdb.Rule
	Copies int
}

// AddPart resolves name against the reference database and appends a record.
// Unresolved names are kept as typed with empty stats. With allowDuplicates
// false the add is refused when the resolved name is already owned.
func (m *Manager) AddPart(cat domain.Category, name string, allowDuplicates bool) (AddResult, error) {
	if !cat.Valid() {
		return AddResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, cat)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return AddResult{}, fmt.Errorf("%w: empty %s name", domain.ErrNotFound, cat.Singular())
	}

	part := domain.Part{Name: name, Stats: domain.Stats{}}
	entry, rule, ok := m.db.Resolve(cat, name)
	if ok {
		part = domain.Part{Name: entry.Name, Stats: entry.Stats.Clone()}
	}

	if !allowDuplicates && m.index.Has(cat, part.Name) {
		return AddResult{}, fmt.Errorf("%w: %s", domain.ErrDuplicateRejected, part.Name)
	}

	parts := m.coll.Parts(cat)
	position := len(*parts)
	*parts = append(*parts, part)
	m.index.Insert(cat, position, part.Name)
	m.markDirty()

	fields := logrus.Fields{"category": cat, "query": name, "name": part.Name}
	switch {
	case !ok:
		m.log.WithFields(fields).Warn("Part not in database, added without stats")
	case !strings.EqualFold(part.Name, name):
		m.log.WithFields(fields).Infof("Resolved by %s match", rule)
	}

	return AddResult{Part: part, Rule: rule, Copies: m.index.Count(cat, part.Name)}, nil
}

// RemovePart removes the most recently added copy of name. A name that is
// not owned falls back to the closest owned name.
func (m *Manager) RemovePart(cat domain.Category, name string) (domain.Part, error) {
	if !cat.Valid() {
		return domain.Part{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, cat)
	}
	name = strings.TrimSpace(name)

	if !m.index.Has(cat, name) {
		match, ok := fuzzy.CloseMatch(name, m.ownedNames(cat), fuzzy.DefaultCutoff)
		if !ok {
			return domain.Part{}, fmt.Errorf("%w: %s %q not in collection", domain.ErrNotFound, cat.Singular(), name)
		}
		m.log.WithFields(logrus.Fields{
			"category": cat,
			"query":    name,
			"name":     match,
		}).Info("Removing closest owned part")
		name = match
	}

	positions := m.index.Positions(cat, name)
	last := positions[len(positions)-1]

	parts := m.coll.Parts(cat)
	removed := (*parts)[last]
	*parts = slices.Delete(*parts, last, last+1)
	m.index.Remove(cat, last, removed.Name)
	m.markDirty()
	return removed, nil
}

func (m *Manager) ownedNames(cat domain.Category) []string {
	parts := *m.coll.Parts(cat)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p.Name)
	}
	return out
}

// BatchItem is the outcome of one entry of a batch.
type BatchItem struct {
	Ref    domain.PartRef
	Name   string
	Copies int
	Err    error
}

type BatchResult struct {
	Items []BatchItem
	OK    int
}

// BatchAdd adds every ref (duplicates allowed) and force-saves once. The
// returned error is the save error; per-item failures are in the result.
func (m *Manager) BatchAdd(refs []domain.PartRef) (BatchResult, error) {
	var res BatchResult
	for _, ref := range refs {
		item := BatchItem{Ref: ref, Name: ref.Name}
		added, err := m.AddPart(ref.Category, ref.Name, true)
		if err != nil {
			item.Err = err
		} else {
			item.Name = added.Part.Name
			item.Copies = added.Copies
			res.OK++
		}
		res.Items = append(res.Items, item)
	}
	return res, m.Save(true)
}

// BatchRemove removes one copy per ref and force-saves once.
func (m *Manager) BatchRemove(refs []domain.PartRef) (BatchResult, error) {
	var res BatchResult
	for _, ref := range refs {
		item := BatchItem{Ref: ref, Name: ref.Name}
		removed, err := m.RemovePart(ref.Category, ref.Name)
		if err != nil {
			item.Err = err
		} else {
			item.Name = removed.Name
			item.Copies = m.index.Count(ref.Category, removed.Name)
			res.OK++
		}
		res.Items = append(res.Items, item)
	}
	return res, m.Save(true)
}

// FixMissingStats re-resolves every record without stats, replacing its
// stats and canonicalizing its name. It saves only when something changed.
func (m *Manager) FixMissingStats() (int, error) {
	fixed := 0
	for _, cat := range domain.Categories {
		parts := *m.coll.Parts(cat)
		for i := range parts {
			if len(parts[i].Stats) > 0 {
				continue
			}
			entry, _, ok := m.db.Resolve(cat, parts[i].Name)
			if !ok || len(entry.Stats) == 0 {
				continue
			}
			parts[i].Name = entry.Name
			parts[i].Stats = entry.Stats.Clone()
			fixed++
		}
	}
	if fixed == 0 {
		return 0, nil
	}
	// Renames may move records between index keys.
	m.index = BuildIndex(m.coll)
	m.markDirty()
	return fixed, m.Save(true)
}
