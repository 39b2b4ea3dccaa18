package recipe

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string]SavedRecipe
	order   []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recipes: make(map[string]SavedRecipe)}
}

// SaveRecipe validates and stores a copy of r.
func (s *MemoryStore) SaveRecipe(_ context.Context, r *SavedRecipe) (string, error) {
	prepareForSave(r)
	if err := r.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recipes[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.recipes[r.ID] = cloneRecipe(*r)
	return r.ID, nil
}

// GetSavedRecipes returns the owner's recipes in insertion order.
func (s *MemoryStore) GetSavedRecipes(_ context.Context, ownerID string) ([]SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []SavedRecipe{}
	for _, id := range s.order {
		if r := s.recipes[id]; r.OwnerID == ownerID {
			out = append(out, cloneRecipe(r))
		}
	}
	return out, nil
}

// GetSavedRecipe retrieves a recipe by id.
func (s *MemoryStore) GetSavedRecipe(_ context.Context, id string) (*SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneRecipe(r)
	return &c, nil
}

// DeleteRecipe removes a recipe by id.
func (s *MemoryStore) DeleteRecipe(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return ErrNotFound
	}
	delete(s.recipes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneRecipe(r SavedRecipe) SavedRecipe {
	r.Ingredients = append(IngredientList(nil), r.Ingredients...)
	return r
}
