package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icfoundry/icvault/internal/client/catalog"
	"github.com/icfoundry/icvault/internal/client/view"
	"github.com/icfoundry/icvault/internal/models"
)

func testCatalog() *catalog.Catalog {
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	items := []models.VaultItem{
		{ID: "a", Title: "A", Type: models.TypeNote, SpaceID: "s1", IsFavorite: true, LastUsed: at.Add(3 * time.Hour), Data: models.NoteData{}},
		{ID: "b", Title: "B", Type: models.TypeNote, SpaceID: "s2", LastUsed: at.Add(2 * time.Hour), Data: models.NoteData{}},
		{ID: "c", Title: "C", Type: models.TypeNote, SpaceID: "s1", LastUsed: at.Add(time.Hour), Data: models.NoteData{}},
	}
	spaces := []models.Space{
		{ID: "s1", Name: "One"},
		{ID: "s2", Name: "Two"},
	}
	return catalog.New(items, spaces)
}

func TestSetView_Selectors(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name     string
		selector string
		want     string
	}{
		{name: "all", selector: view.All, want: view.All},
		{name: "favorites", selector: view.Favorites, want: view.Favorites},
		{name: "recent", selector: view.Recent, want: view.Recent},
		{name: "known space id", selector: "s2", want: "s2"},
		{name: "unknown selector falls back to all", selector: "bogus-id-not-a-space", want: view.All},
		{name: "empty selector falls back to all", selector: "", want: view.All},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc := view.NewController(c)
			vc.SetView(tt.selector)
			assert.Equal(t, tt.want, vc.Current())
		})
	}
}

func TestDisplayed_BogusSelectorEqualsAll(t *testing.T) {
	c := testCatalog()

	vc := view.NewController(c)
	vc.SetView("bogus-id-not-a-space")
	bogus := vc.Displayed()

	vc.SetView(view.All)
	all := vc.Displayed()

	require.Equal(t, all, bogus)
}

func TestDisplayed_PerView(t *testing.T) {
	c := testCatalog()
	vc := view.NewController(c)

	ids := func(items []models.VaultItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(vc.Displayed()))

	vc.SetView(view.Favorites)
	assert.Equal(t, []string{"a"}, ids(vc.Displayed()))

	vc.SetView(view.Recent)
	assert.Equal(t, []string{"a", "b", "c"}, ids(vc.Displayed()))

	vc.SetView("s1")
	assert.Equal(t, []string{"a", "c"}, ids(vc.Displayed()))
}

func TestSelect_SurvivesViewChange(t *testing.T) {
	vc := view.NewController(testCatalog())

	require.True(t, vc.Select("b"))

	// "b" lives in s2; switching to an s1-only view must not clear it.
	vc.SetView("s1")
	sel := vc.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "b", sel.ID)

	vc.SetView(view.Favorites)
	sel = vc.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "b", sel.ID)
}

func TestSelect_UnknownIDIgnored(t *testing.T) {
	vc := view.NewController(testCatalog())

	require.True(t, vc.Select("a"))
	assert.False(t, vc.Select("not-in-catalog"))

	// The previous selection stays intact.
	sel := vc.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "a", sel.ID)
}

func TestSelect_EmptyClears(t *testing.T) {
	vc := view.NewController(testCatalog())

	require.True(t, vc.Select("a"))
	require.True(t, vc.Select(""))
	assert.Nil(t, vc.Selected())
}

func TestSelected_NilWhenNothingSelected(t *testing.T) {
	vc := view.NewController(testCatalog())
	assert.Nil(t, vc.Selected())
}
