package localstate

import "sync"

const favoritesKey = "favorites_v1"

type favoritesSnapshot[T any] struct {
	Items []T             `json:"items"`
	IDs   map[string]bool `json:"ids"`
}

// Favorites is a persisted favorites list: an ordered item list plus
// an id-presence map, kept consistent with each other.
type Favorites[T any] struct {
	store *Store
	key   func(T) string

	mu    sync.Mutex
	items []T
	ids   map[string]bool
}

// NewFavorites restores the list from its snapshot. The id map is
// rebuilt from the item list, so a snapshot with a drifted map heals
// on load.
func NewFavorites[T any](store *Store, key func(T) string) (*Favorites[T], error) {
	f := &Favorites[T]{store: store, key: key, ids: make(map[string]bool)}
	var snap favoritesSnapshot[T]
	if _, err := store.Load(favoritesKey, &snap); err != nil {
		return nil, err
	}
	for _, item := range snap.Items {
		id := key(item)
		if f.ids[id] {
			continue
		}
		f.ids[id] = true
		f.items = append(f.items, item)
	}
	return f, nil
}

func (f *Favorites[T]) Add(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.key(item)
	if f.ids[id] {
		return nil
	}
	f.ids[id] = true
	f.items = append(f.items, item)
	return f.persist()
}

func (f *Favorites[T]) Remove(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.ids[id] {
		return nil
	}
	delete(f.ids, id)
	for i := range f.items {
		if f.key(f.items[i]) == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return f.persist()
}

// Toggle flips membership and reports whether the item is a favorite
// afterwards.
func (f *Favorites[T]) Toggle(item T) (bool, error) {
	id := f.key(item)
	f.mu.Lock()
	present := f.ids[id]
	f.mu.Unlock()

	if present {
		return false, f.Remove(id)
	}
	return true, f.Add(item)
}

func (f *Favorites[T]) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	f.ids = make(map[string]bool)
	return f.persist()
}

func (f *Favorites[T]) IsFavorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[id]
}

func (f *Favorites[T]) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Items returns a copy in insertion order.
func (f *Favorites[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.items...)
}

// persist writes the snapshot. Caller holds the lock.
func (f *Favorites[T]) persist() error {
	idsCopy := make(map[string]bool, len(f.ids))
	for id := range f.ids {
		idsCopy[id] = true
	}
	return f.store.Save(favoritesKey, favoritesSnapshot[T]{Items: f.items, IDs: idsCopy})
}
