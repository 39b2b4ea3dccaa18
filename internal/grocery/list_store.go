package grocery

import (
	"errors"
	"sync"
	"time"
)

// ErrItemNotFound is returned when a toggle names a key not on the list.
var ErrItemNotFound = errors.New("grocery item not found")

// List is an owner's current shopping list.
type List struct {
	RecipeIDs   []string  `json:"recipeIds"`
	Items       []Item    `json:"items"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// ListStore keeps the current list per owner. Only explicit user actions
// change it: regenerating, toggling and clearing.
type ListStore struct {
	mu    sync.Mutex
	lists map[string]List
	now   func() time.Time
}

// NewListStore creates an empty ListStore.
func NewListStore() *ListStore {
	return &ListStore{lists: make(map[string]List), now: time.Now}
}

// Replace stores a freshly aggregated list, discarding the previous one
// together with its checked and have-at-home flags.
func (s *ListStore) Replace(owner string, recipeIDs []string, items []Item) List {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := List{
		RecipeIDs:   append([]string(nil), recipeIDs...),
		Items:       cloneItems(items),
		GeneratedAt: s.now().UTC(),
	}
	s.lists[owner] = l
	return copyList(l)
}

// Get returns the owner's list, empty when none was generated.
func (s *ListStore) Get(owner string) List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyList(s.lists[owner])
}

// ToggleChecked flips the checked flag of the item with the given key.
func (s *ListStore) ToggleChecked(owner, key string) (Item, error) {
	return s.update(owner, key, func(item *Item) { item.Checked = !item.Checked })
}

// ToggleHaveAtHome flips the have-at-home flag of the item with the given key.
func (s *ListStore) ToggleHaveAtHome(owner, key string) (Item, error) {
	return s.update(owner, key, func(item *Item) { item.HaveAtHome = !item.HaveAtHome })
}

// Clear removes the owner's list.
func (s *ListStore) Clear(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, owner)
}

func (s *ListStore) update(owner, key string, fn func(*Item)) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[owner]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	for i := range l.Items {
		if l.Items[i].Key == key {
			fn(&l.Items[i])
			return cloneItem(l.Items[i]), nil
		}
	}
	return Item{}, ErrItemNotFound
}

func copyList(l List) List {
	l.RecipeIDs = append([]string(nil), l.RecipeIDs...)
	l.Items = cloneItems(l.Items)
	return l
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}

func cloneItem(item Item) Item {
	item.FromRecipes = append([]string(nil), item.FromRecipes...)
	return item
}
