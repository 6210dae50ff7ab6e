// Package catalog provides the read-only, insertion-ordered collection of
// vault items and its derived views (favorites, recent, by-space).
package catalog

import (
	"sort"

	"github.com/icfoundry/icvault/internal/models"
)

// DefaultRecentLimit is the number of items returned by Recent when the
// caller does not ask for a specific limit.
const DefaultRecentLimit = 5

// Catalog is an immutable, ordered collection of vault items and spaces.
// It has no writers, so it is safe for concurrent readers.
type Catalog struct {
	items  []models.VaultItem
	spaces []models.Space
	byID   map[string]int
}

// New constructs a Catalog from the given items and spaces. Insertion order
// of items is preserved and becomes the canonical order of every view.
func New(items []models.VaultItem, spaces []models.Space) *Catalog {
	c := &Catalog{
		items:  append([]models.VaultItem(nil), items...),
		spaces: append([]models.Space(nil), spaces...),
		byID:   make(map[string]int, len(items)),
	}
	for i, it := range c.items {
		c.byID[it.ID] = i
	}
	return c
}

// Len returns the total number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns all items in insertion order.
func (c *Catalog) Items() []models.VaultItem {
	return append([]models.VaultItem(nil), c.items...)
}

// Favorites returns the items with IsFavorite set, order preserved.
func (c *Catalog) Favorites() []models.VaultItem {
	var out []models.VaultItem
	for _, it := range c.items {
		if it.IsFavorite {
			out = append(out, it)
		}
	}
	return out
}

// Recent returns up to limit items sorted by LastUsed descending. Ties keep
// insertion order. A non-positive limit selects DefaultRecentLimit.
func (c *Catalog) Recent(limit int) []models.VaultItem {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := append([]models.VaultItem(nil), c.items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUsed.After(out[j].LastUsed)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BySpace returns the items belonging to the given space, order preserved.
func (c *Catalog) BySpace(spaceID string) []models.VaultItem {
	var out []models.VaultItem
	for _, it := range c.items {
		if it.SpaceID == spaceID {
			out = append(out, it)
		}
	}
	return out
}

// Get returns the item with the given id, if present.
func (c *Catalog) Get(id string) (models.VaultItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.VaultItem{}, false
	}
	return c.items[i], true
}

// Has reports whether an item with the given id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// HasSpace reports whether a space with the given id exists.
func (c *Catalog) HasSpace(id string) bool {
	for _, s := range c.spaces {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Spaces returns all spaces with ItemCount recomputed from the catalog.
// Stored counts are ignored.
func (c *Catalog) Spaces() []models.Space {
	counts := make(map[string]int, len(c.spaces))
	for _, it := range c.items {
		counts[it.SpaceID]++
	}
	out := append([]models.Space(nil), c.spaces...)
	for i := range out {
		out[i].ItemCount = counts[out[i].ID]
	}
	return out
}
