package collection

import (
	"slices"
	"strings"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// Index maps a lowercased part name to the positions it occupies in its
// category's sequence. It is maintained incrementally and must always equal a
// fresh BuildIndex of the same collection.
type Index struct {
	pos map[domain.Category]map[string][]int
}

func newIndex() *Index {
	ix := &Index{pos: make(map[domain.Category]map[string][]int, len(domain.Categories))}
	for _, c := range domain.Categories {
		ix.pos[c] = map[string][]int{}
	}
	return ix
}

// BuildIndex scans each category once.
func BuildIndex(c *domain.Collection) *Index {
	ix := newIndex()
	for _, cat := range domain.Categories {
		for i, p := range *c.Parts(cat) {
			ix.Insert(cat, i, p.Name)
		}
	}
	return ix
}

func key(name string) string {
	return strings.ToLower(name)
}

// Insert records that name now lives at position.
func (ix *Index) Insert(cat domain.Category, position int, name string) {
	k := key(name)
	ix.pos[cat][k] = append(ix.pos[cat][k], position)
}

// Remove drops position from name's list and shifts every later position in
// the category down by one, mirroring a splice of the underlying slice.
func (ix *Index) Remove(cat domain.Category, position int, name string) {
	k := key(name)
	list := ix.pos[cat][k]
	// The removed copy is normally the trailing entry; search from the end.
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == position {
			list = slices.Delete(list, i, i+1)
			break
		}
	}
	if len(list) == 0 {
		delete(ix.pos[cat], k)
	} else {
		ix.pos[cat][k] = list
	}

	for _, positions := range ix.pos[cat] {
		for i, p := range positions {
			if p > position {
				positions[i] = p - 1
			}
		}
	}
}

// Positions returns the positions of name in ascending insertion order.
func (ix *Index) Positions(cat domain.Category, name string) []int {
	return ix.pos[cat][key(name)]
}

func (ix *Index) Has(cat domain.Category, name string) bool {
	return len(ix.pos[cat][key(name)]) > 0
}

// Count is the number of owned copies of name.
func (ix *Index) Count(cat domain.Category, name string) int {
	return len(ix.pos[cat][key(name)])
}

// Equal reports whether both indexes hold identical position lists.
func (ix *Index) Equal(other *Index) bool {
	for _, c := range domain.Categories {
		a, b := ix.pos[c], other.pos[c]
		if len(a) != len(b) {
			return false
		}
		for k, pa := range a {
			pb, ok := b[k]
			if !ok || !slices.Equal(pa, pb) {
				return false
			}
		}
	}
	return true
}
