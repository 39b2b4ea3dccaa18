package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store defines the interface for meal plan and pantry operations. Reads
// and deletes are scoped to the owner.
type Store interface {
	SetMealPlan(ctx context.Context, p *MealPlan) (*MealPlan, error)
	GetMealPlans(ctx context.Context, ownerID, start, end string) ([]MealPlan, error)
	DeleteMealPlan(ctx context.Context, ownerID, id string) error
	DeleteRecipePlans(ctx context.Context, recipeID string) error

	AddPantryItem(ctx context.Context, item *PantryItem) (*PantryItem, error)
	GetPantryItems(ctx context.Context, ownerID string) ([]PantryItem, error)
	DeletePantryItem(ctx context.Context, ownerID, id string) error
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgresStore over an already migrated database.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SetMealPlan assigns a recipe to a meal, replacing any recipe already there.
func (s *PostgresStore) SetMealPlan(ctx context.Context, p *MealPlan) (*MealPlan, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	rows, err := s.db.NamedQueryContext(ctx,
		`INSERT INTO meal_plans (id, owner_id, date, meal_type, recipe_id)
		VALUES (:id, :owner_id, :date, :meal_type, :recipe_id)
		ON CONFLICT (owner_id, date, meal_type) DO UPDATE SET recipe_id = EXCLUDED.recipe_id
		RETURNING id, owner_id, date, meal_type, recipe_id`,
		p,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set meal plan: %w", err)
	}
	defer rows.Close()

	var saved MealPlan
	if !rows.Next() {
		return nil, fmt.Errorf("failed to set meal plan: no row returned")
	}
	if err := rows.StructScan(&saved); err != nil {
		return nil, fmt.Errorf("failed to scan meal plan: %w", err)
	}
	return &saved, nil
}

// GetMealPlans returns the owner's plans with start <= date <= end. An empty
// bound is open.
func (s *PostgresStore) GetMealPlans(ctx context.Context, ownerID, start, end string) ([]MealPlan, error) {
	query := `SELECT id, owner_id, date, meal_type, recipe_id FROM meal_plans
		WHERE owner_id = $1 AND ($2 = '' OR date >= $2) AND ($3 = '' OR date <= $3)
		ORDER BY date, CASE meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 ELSE 2 END`

	plans := []MealPlan{}
	if err := s.db.SelectContext(ctx, &plans, query, ownerID, start, end); err != nil {
		return nil, fmt.Errorf("failed to get meal plans: %w", err)
	}
	return plans, nil
}

// DeleteMealPlan removes one of the owner's plans.
func (s *PostgresStore) DeleteMealPlan(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, "meal_plans", ownerID, id)
}

// DeleteRecipePlans removes every plan that uses the recipe.
func (s *PostgresStore) DeleteRecipePlans(ctx context.Context, recipeID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("failed to delete meal plans for recipe: %w", err)
	}
	return nil
}

// AddPantryItem stores an item, categorizing it when no category is given.
func (s *PostgresStore) AddPantryItem(ctx context.Context, item *PantryItem) (*PantryItem, error) {
	if err := item.prepare(); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO pantry_items (id, owner_id, name, category, created_at)
		VALUES (:id, :owner_id, :name, :category, :created_at)`,
		item,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add pantry item: %w", err)
	}
	out := *item
	return &out, nil
}

// GetPantryItems returns the owner's pantry, oldest first.
func (s *PostgresStore) GetPantryItems(ctx context.Context, ownerID string) ([]PantryItem, error) {
	items := []PantryItem{}
	err := s.db.SelectContext(ctx, &items,
		`SELECT id, owner_id, name, category, created_at FROM pantry_items WHERE owner_id = $1 ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry items: %w", err)
	}
	return items, nil
}

// DeletePantryItem removes one of the owner's pantry items.
func (s *PostgresStore) DeletePantryItem(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, "pantry_items", ownerID, id)
}

func (s *PostgresStore) deleteOwned(ctx context.Context, table, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
