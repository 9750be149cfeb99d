package store

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

func openTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "temporium_store")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := Open(Config{DataDir: tmpDir})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCatalogStore_AddAndGet(t *testing.T) {
	s := openTestStore(t)

	g := catalog.NewGame("Celeste", 1)
	g.Genre = "Platformer"
	g.DiskSpace = 1.2
	require.NoError(t, s.AddGame(g))
	assert.NotZero(t, g.ID, "AddGame must assign a fresh id")

	got, err := s.GetGame(1, g.ID)
	require.NoError(t, err)
	assert.Equal(t, *g, *got)

	byName, err := s.GetGameByName(1, "Celeste")
	require.NoError(t, err)
	assert.Equal(t, g.ID, byName.ID)

	// Name lookup is case-insensitive.
	byName, err = s.GetGameByName(1, "CELESTE")
	require.NoError(t, err)
	assert.Equal(t, g.ID, byName.ID)

	_, err = s.GetGame(1, 9999)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCatalogStore_AddValidation(t *testing.T) {
	s := openTestStore(t)

	testCases := []struct {
		name string
		game *catalog.Game
		want error
	}{
		{"missing name", &catalog.Game{OwnerID: 1, Rating: catalog.RatingNone}, catalog.ErrNameRequired},
		{"missing owner", &catalog.Game{Name: "x", Rating: catalog.RatingNone}, catalog.ErrOwnerRequired},
		{"rating too high", &catalog.Game{Name: "x", OwnerID: 1, Rating: 11}, catalog.ErrInvalidRating},
		{"rating negative", &catalog.Game{Name: "x", OwnerID: 1, Rating: -2}, catalog.ErrInvalidRating},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, s.AddGame(tc.game), tc.want)
		})
	}
}

func TestCatalogStore_DuplicateName(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddGame(catalog.NewGame("Hades", 1)))

	// Same owner, same name (any case) is refused.
	assert.ErrorIs(t, s.AddGame(catalog.NewGame("Hades", 1)), ErrDuplicateName)
	assert.ErrorIs(t, s.AddGame(catalog.NewGame("HADES", 1)), ErrDuplicateName)

	// A different owner can hold the same name.
	assert.NoError(t, s.AddGame(catalog.NewGame("Hades", 2)))
}

func TestCatalogStore_Update(t *testing.T) {
	s := openTestStore(t)

	g := catalog.NewGame("Factorio", 1)
	require.NoError(t, s.AddGame(g))
	other := catalog.NewGame("Satisfactory", 1)
	require.NoError(t, s.AddGame(other))

	g.Rating = 10
	g.Completed = true
	g.Notes = "the factory must grow"
	require.NoError(t, s.UpdateGame(g))

	got, err := s.GetGame(1, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(10), got.Rating)
	assert.True(t, got.Completed)

	// Renaming onto an existing name is refused.
	g.Name = "Satisfactory"
	assert.ErrorIs(t, s.UpdateGame(g), ErrDuplicateName)

	// Renaming to a free name moves the name index.
	g.Name = "Factorio 2"
	require.NoError(t, s.UpdateGame(g))
	_, err = s.GetGameByName(1, "Factorio")
	assert.ErrorIs(t, err, ErrGameNotFound)
	renamed, err := s.GetGameByName(1, "Factorio 2")
	require.NoError(t, err)
	assert.Equal(t, g.ID, renamed.ID)

	// Updating an unknown game fails.
	ghost := catalog.NewGame("Ghost", 1)
	ghost.ID = 9999
	assert.ErrorIs(t, s.UpdateGame(ghost), ErrGameNotFound)
}

func TestCatalogStore_UpdateNotes(t *testing.T) {
	s := openTestStore(t)

	g := catalog.NewGame("Rimworld", 1)
	g.Rating = 9
	require.NoError(t, s.AddGame(g))

	require.NoError(t, s.UpdateNotes(1, g.ID, "colony 4, year 12"))
	got, err := s.GetGame(1, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "colony 4, year 12", got.Notes)
	assert.Equal(t, int32(9), got.Rating, "other fields untouched")

	assert.ErrorIs(t, s.UpdateNotes(1, 9999, "x"), ErrGameNotFound)
}

func TestCatalogStore_Delete(t *testing.T) {
	s := openTestStore(t)

	g := catalog.NewGame("Spelunky", 1)
	require.NoError(t, s.AddGame(g))

	require.NoError(t, s.DeleteGame(1, g.ID))
	_, err := s.GetGame(1, g.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)

	// Name index is dropped with the game, so the name is reusable.
	require.NoError(t, s.AddGame(catalog.NewGame("Spelunky", 1)))

	assert.ErrorIs(t, s.DeleteGame(1, 9999), ErrGameNotFound)
}

func TestCatalogStore_DeleteByName(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddGame(catalog.NewGame("Noita", 1)))
	require.NoError(t, s.DeleteGameByName(1, "noita"))

	_, err := s.GetGameByName(1, "Noita")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.ErrorIs(t, s.DeleteGameByName(1, "Noita"), ErrGameNotFound)
}

func TestCatalogStore_ListOrdering(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"zelda", "Apex", "mario", "Baldur"} {
		require.NoError(t, s.AddGame(catalog.NewGame(name, 1)))
	}
	// Another owner's games must not leak into the listing.
	require.NoError(t, s.AddGame(catalog.NewGame("Intruder", 2)))

	games, err := s.ListGames(1)
	require.NoError(t, err)
	require.Len(t, games, 4)

	var names []string
	for _, g := range games {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Apex", "Baldur", "mario", "zelda"}, names,
		"listing is ordered case-insensitively by name")
}

func TestCatalogStore_ListFiltered(t *testing.T) {
	s := openTestStore(t)

	add := func(name, genre string, completed bool, disk float64, rating int32) {
		g := catalog.NewGame(name, 1)
		g.Genre = genre
		g.Completed = completed
		g.DiskSpace = disk
		g.Rating = rating
		require.NoError(t, s.AddGame(g))
	}
	add("A", "RPG", true, 50, 9)
	add("B", "RPG", false, 10, catalog.RatingNone)
	add("C", "Shooter", true, 80, 7)

	completed := true
	games, err := s.ListFiltered(1, &catalog.Filter{Completed: &completed})
	require.NoError(t, err)
	assert.Len(t, games, 2)

	genre := "RPG"
	games, err = s.ListFiltered(1, &catalog.Filter{Genre: &genre, Completed: &completed})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "A", games[0].Name)

	min := 8.0
	max := 60.0
	games, err = s.ListFiltered(1, &catalog.Filter{DiskSpaceMin: &min, DiskSpaceMax: &max})
	require.NoError(t, err)
	assert.Len(t, games, 2)

	// A nil or zero filter returns everything.
	games, err = s.ListFiltered(1, nil)
	require.NoError(t, err)
	assert.Len(t, games, 3)

	// An inverted range is an invalid filter, not an empty result.
	bad := &catalog.Filter{DiskSpaceMin: &max, DiskSpaceMax: &min}
	_, err = s.ListFiltered(1, bad)
	assert.ErrorIs(t, err, catalog.ErrInvalidFilter)
}

func TestCatalogStore_ListTags(t *testing.T) {
	s := openTestStore(t)

	g1 := catalog.NewGame("One", 1)
	g1.Tags = "indie, roguelike"
	g2 := catalog.NewGame("Two", 1)
	g2.Tags = "roguelike,coop"
	require.NoError(t, s.AddGame(g1))
	require.NoError(t, s.AddGame(g2))

	tags, err := s.ListTags(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"coop", "indie", "roguelike"}, tags)
}

func TestCatalogStore_Stats(t *testing.T) {
	s := openTestStore(t)

	g1 := catalog.NewGame("One", 1)
	g1.IsFavorite = true
	g1.IsInstalled = true
	g1.DiskSpace = 10
	g1.Rating = 8
	g1.URL = "https://example.com"
	g2 := catalog.NewGame("Two", 1)
	g2.Completed = true
	g2.IsInstalled = true
	g2.DiskSpace = 5
	require.NoError(t, s.AddGame(g1))
	require.NoError(t, s.AddGame(g2))

	stats, err := s.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 1, stats.FavoritesCount)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 1, stats.NoRatingCount)
	assert.Equal(t, 2, stats.InstalledCount)
	assert.Equal(t, 15.0, stats.InstalledDiskSpace)
	assert.Equal(t, 1, stats.NoURLCount)

	count, err := s.CountGames(1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCatalogStore_IDsAreUniqueAcrossOwners(t *testing.T) {
	s := openTestStore(t)

	seen := map[int32]bool{}
	for owner := int32(1); owner <= 3; owner++ {
		for i := 0; i < 5; i++ {
			g := catalog.NewGame(fmt.Sprintf("game_%d_%d", owner, i), owner)
			require.NoError(t, s.AddGame(g))
			assert.False(t, seen[g.ID], "id %d assigned twice", g.ID)
			seen[g.ID] = true
		}
	}
}

func TestCatalogStore_ClosedStore(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.AddGame(catalog.NewGame("x", 1)), ErrNotOpen)
	_, err := s.ListGames(1)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = s.GetGame(1, 1)
	assert.ErrorIs(t, err, ErrNotOpen)

	// Closing twice is harmless.
	assert.NoError(t, s.Close())
}
