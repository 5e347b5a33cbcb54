package localstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type favProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func favKey(p favProduct) string { return p.ID }

func newTestFavorites(t *testing.T, dir string) *Favorites[favProduct] {
	t.Helper()
	store, err := NewStore(dir)
	require.NoError(t, err)
	fav, err := NewFavorites(store, favKey)
	require.NoError(t, err)
	return fav
}

func Test_Favorites_AddRemoveToggle(t *testing.T) {
	fav := newTestFavorites(t, t.TempDir())

	oud := favProduct{ID: "p1", Name: "Oud Wood"}
	require.NoError(t, fav.Add(oud))
	require.NoError(t, fav.Add(oud), "double add keeps a single entry")
	require.Equal(t, 1, fav.Count())
	require.True(t, fav.IsFavorite("p1"))

	on, err := fav.Toggle(favProduct{ID: "p2", Name: "Tobacco Vanille"})
	require.NoError(t, err)
	require.True(t, on)

	off, err := fav.Toggle(oud)
	require.NoError(t, err)
	require.False(t, off)
	require.False(t, fav.IsFavorite("p1"))
	require.Equal(t, 1, fav.Count())

	require.NoError(t, fav.Remove("p2"))
	require.Zero(t, fav.Count())
	require.NoError(t, fav.Remove("p2"), "removing an absent id is a no-op")
}

func Test_Favorites_SnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	fav := newTestFavorites(t, dir)
	require.NoError(t, fav.Add(favProduct{ID: "p1", Name: "Oud Wood"}))
	require.NoError(t, fav.Add(favProduct{ID: "p2", Name: "Tobacco Vanille"}))

	restored := newTestFavorites(t, dir)
	require.Equal(t, 2, restored.Count())
	require.True(t, restored.IsFavorite("p1"))
	require.Equal(t, "p1", restored.Items()[0].ID, "insertion order survives restore")
}

func Test_Favorites_SnapshotShape(t *testing.T) {
	dir := t.TempDir()
	fav := newTestFavorites(t, dir)
	require.NoError(t, fav.Add(favProduct{ID: "p1", Name: "Oud Wood"}))

	raw, err := os.ReadFile(filepath.Join(dir, "favorites_v1.json"))
	require.NoError(t, err)

	var snap struct {
		Items []favProduct    `json:"items"`
		IDs   map[string]bool `json:"ids"`
	}
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Len(t, snap.Items, 1)
	require.True(t, snap.IDs["p1"], "id-presence map is persisted alongside the list")
}

func Test_Favorites_HealsDriftedSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// snapshot with a duplicate item and a map out of sync with the list
	require.NoError(t, store.Save("favorites_v1", map[string]any{
		"items": []favProduct{{ID: "p1"}, {ID: "p1"}, {ID: "p2"}},
		"ids":   map[string]bool{"p1": true, "ghost": true},
	}))

	fav, err := NewFavorites(store, favKey)
	require.NoError(t, err)
	require.Equal(t, 2, fav.Count())
	require.True(t, fav.IsFavorite("p2"))
	require.False(t, fav.IsFavorite("ghost"))
}
