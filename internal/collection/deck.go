package collection

import (
	"fmt"
	"strings"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// CreateDeck adds an empty three-slot deck and force-saves.
func (m *Manager) CreateDeck(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty deck name", domain.ErrNotFound)
	}
	if _, ok := m.coll.Decks[name]; ok {
		return fmt.Errorf("deck %q: %w", name, domain.ErrAlreadyExists)
	}
	m.coll.Decks[name] = domain.Deck{}
	m.markDirty()
	return m.Save(true)
}

// AddToDeck fills one slot with a blade/ratchet/bit triple. Every part must be
// owned, and none may repeat the same role of another slot in this deck.
func (m *Manager) AddToDeck(deckName, slot, blade, ratchet, bit string) error {
	deck, ok := m.coll.Decks[deckName]
	if !ok {
		return fmt.Errorf("%w: deck %q", domain.ErrNotFound, deckName)
	}
	idx, err := domain.ParseSlot(slot)
	if err != nil {
		return err
	}

	wanted := []struct {
		cat  domain.Category
		name string
	}{
		{domain.Blades, strings.TrimSpace(blade)},
		{domain.Ratchets, strings.TrimSpace(ratchet)},
		{domain.Bits, strings.TrimSpace(bit)},
	}
	var owned [3]string
	for i, w := range wanted {
		name, ok := m.ownedName(w.cat, w.name)
		if !ok {
			return fmt.Errorf("%w: %s %q not in collection", domain.ErrNotFound, w.cat.Singular(), w.name)
		}
		owned[i] = name
	}

	for j, other := range deck.Slots {
		if j == idx {
			continue
		}
		for i, w := range wanted {
			used := other.Role(w.cat)
			if used != nil && strings.EqualFold(*used, owned[i]) {
				return fmt.Errorf("%w: %s %q is in %s", domain.ErrSlotConflict, w.cat.Singular(), owned[i], domain.SlotIDs[j])
			}
		}
	}

	deck.Slots[idx] = domain.Beyblade{Blade: &owned[0], Ratchet: &owned[1], Bit: &owned[2]}
	m.coll.Decks[deckName] = deck
	m.markDirty()
	return m.Save(true)
}

// ownedName returns the collection's spelling of name.
func (m *Manager) ownedName(cat domain.Category, name string) (string, bool) {
	positions := m.index.Positions(cat, name)
	if len(positions) == 0 {
		return "", false
	}
	return (*m.coll.Parts(cat))[positions[0]].Name, true
}

// Deck returns a copy of the named deck.
func (m *Manager) Deck(name string) (domain.Deck, error) {
	d, ok := m.coll.Decks[name]
	if !ok {
		return domain.Deck{}, fmt.Errorf("%w: deck %q", domain.ErrNotFound, name)
	}
	return d, nil
}

// DeckNames returns every deck name, sorted.
func (m *Manager) DeckNames() []string {
	return sortedKeys(m.coll.Decks)
}

// DeleteDeck removes a deck and force-saves.
func (m *Manager) DeleteDeck(name string) error {
	if _, ok := m.coll.Decks[name]; !ok {
		return fmt.Errorf("%w: deck %q", domain.ErrNotFound, name)
	}
	delete(m.coll.Decks, name)
	m.markDirty()
	return m.Save(true)
}
