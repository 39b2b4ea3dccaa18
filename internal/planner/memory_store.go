package planner

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	plans  map[string]MealPlan
	pantry []PantryItem
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]MealPlan)}
}

var mealOrder = map[MealType]int{Breakfast: 0, Lunch: 1, Dinner: 2}

// SetMealPlan assigns a recipe to a meal, replacing any recipe already there.
func (s *MemoryStore) SetMealPlan(_ context.Context, p *MealPlan) (*MealPlan, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.plans {
		if existing.OwnerID == p.OwnerID && existing.Date == p.Date && existing.MealType == p.MealType {
			existing.RecipeID = p.RecipeID
			s.plans[id] = existing
			return &existing, nil
		}
	}
	saved := *p
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	s.plans[saved.ID] = saved
	return &saved, nil
}

// GetMealPlans returns the owner's plans with start <= date <= end, ordered
// by date then meal. An empty bound is open.
func (s *MemoryStore) GetMealPlans(_ context.Context, ownerID, start, end string) ([]MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []MealPlan{}
	for _, p := range s.plans {
		if p.OwnerID != ownerID {
			continue
		}
		if (start != "" && p.Date < start) || (end != "" && p.Date > end) {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b MealPlan) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(mealOrder[a.MealType], mealOrder[b.MealType]),
		)
	})
	return out, nil
}

// DeleteMealPlan removes one of the owner's plans.
func (s *MemoryStore) DeleteMealPlan(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok || p.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

// DeleteRecipePlans removes every plan that uses the recipe, matching the
// cascade on the meal_plans foreign key.
func (s *MemoryStore) DeleteRecipePlans(_ context.Context, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.plans {
		if p.RecipeID == recipeID {
			delete(s.plans, id)
		}
	}
	return nil
}

// AddPantryItem stores an item, categorizing it when no category is given.
func (s *MemoryStore) AddPantryItem(_ context.Context, item *PantryItem) (*PantryItem, error) {
	if err := item.prepare(); err != nil {
		return nil, err
	}
	saved := *item
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantry = append(s.pantry, saved)
	return &saved, nil
}

// GetPantryItems returns the owner's pantry in insertion order.
func (s *MemoryStore) GetPantryItems(_ context.Context, ownerID string) ([]PantryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []PantryItem{}
	for _, item := range s.pantry {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

// DeletePantryItem removes one of the owner's pantry items.
func (s *MemoryStore) DeletePantryItem(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.pantry, func(item PantryItem) bool {
		return item.ID == id && item.OwnerID == ownerID
	})
	if i < 0 {
		return ErrNotFound
	}
	s.pantry = slices.Delete(s.pantry, i, i+1)
	return nil
}
