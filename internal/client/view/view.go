// Package view implements the vault view controller: the current view
// selector and the selected-item pointer.
package view

import (
	"github.com/icfoundry/icvault/internal/client/catalog"
	"github.com/icfoundry/icvault/internal/models"
)

// Built-in view selectors. Any other selector is interpreted as a space id.
const (
	All       = "all"
	Favorites = "favorites"
	Recent    = "recent"
)

// Controller projects the catalog into the currently displayed subset and
// tracks the selected item. The selection is a weak reference: it holds an
// id looked up on access, never an owned copy of the item.
type Controller struct {
	catalog    *catalog.Catalog
	current    string
	selectedID string
}

// NewController returns a Controller over the given catalog, starting on
// the All view with nothing selected.
func NewController(c *catalog.Catalog) *Controller {
	return &Controller{catalog: c, current: All}
}

// SetView switches the current view. Selectors that are neither a built-in
// view nor a known space id are silently normalized to All; SetView never
// fails. The selection is intentionally left alone even when the selected
// item is not part of the new view's subset.
func (vc *Controller) SetView(selector string) {
	switch {
	case selector == All || selector == Favorites || selector == Recent:
		vc.current = selector
	case vc.catalog.HasSpace(selector):
		vc.current = selector
	default:
		vc.current = All
	}
}

// Current returns the active view selector.
func (vc *Controller) Current() string {
	return vc.current
}

// Displayed recomputes the visible subset from the catalog on every call,
// so it always reflects the catalog's current contents.
func (vc *Controller) Displayed() []models.VaultItem {
	switch vc.current {
	case Favorites:
		return vc.catalog.Favorites()
	case Recent:
		return vc.catalog.Recent(0)
	case All:
		return vc.catalog.Items()
	default:
		return vc.catalog.BySpace(vc.current)
	}
}

// Select points the selection at the item with the given id. Unknown ids
// are ignored and reported with a false return. An empty id clears the
// selection.
func (vc *Controller) Select(id string) bool {
	if id == "" {
		vc.selectedID = ""
		return true
	}
	if !vc.catalog.Has(id) {
		return false
	}
	vc.selectedID = id
	return true
}

// Selected resolves the weak selection reference against the catalog and
// returns the item, or nil when nothing (or nothing resolvable) is selected.
func (vc *Controller) Selected() *models.VaultItem {
	if vc.selectedID == "" {
		return nil
	}
	it, ok := vc.catalog.Get(vc.selectedID)
	if !ok {
		return nil
	}
	return &it
}
