package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store defines the interface for saved recipe operations.
type Store interface {
	SaveRecipe(ctx context.Context, r *SavedRecipe) (string, error)
	GetSavedRecipes(ctx context.Context, ownerID string) ([]SavedRecipe, error)
	GetSavedRecipe(ctx context.Context, id string) (*SavedRecipe, error)
	DeleteRecipe(ctx context.Context, id string) error
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

const selectRecipeColumns = `SELECT id, owner_id, title, servings, image_url, ingredients, source, source_url, created_at FROM saved_recipes`

// SaveRecipe validates and stores a recipe, assigning an id when it has none.
func (s *PostgresStore) SaveRecipe(ctx context.Context, r *SavedRecipe) (string, error) {
	prepareForSave(r)
	if err := r.Validate(); err != nil {
		return "", err
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO saved_recipes (id, owner_id, title, servings, image_url, ingredients, source, source_url, created_at)
		VALUES (:id, :owner_id, :title, :servings, :image_url, :ingredients, :source, :source_url, :created_at)
		ON CONFLICT (id) DO UPDATE SET title = :title, servings = :servings, image_url = :image_url,
			ingredients = :ingredients, source = :source, source_url = :source_url`,
		r,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save recipe: %w", err)
	}
	return r.ID, nil
}

// GetSavedRecipes returns the owner's recipes, oldest first.
func (s *PostgresStore) GetSavedRecipes(ctx context.Context, ownerID string) ([]SavedRecipe, error) {
	recipes := []SavedRecipe{}
	err := s.db.SelectContext(ctx, &recipes, selectRecipeColumns+" WHERE owner_id = $1 ORDER BY created_at, id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}
	return recipes, nil
}

// GetSavedRecipe retrieves a recipe by id.
func (s *PostgresStore) GetSavedRecipe(ctx context.Context, id string) (*SavedRecipe, error) {
	var r SavedRecipe
	err := s.db.GetContext(ctx, &r, selectRecipeColumns+" WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &r, nil
}

// DeleteRecipe removes a recipe by id.
func (s *PostgresStore) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saved_recipes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func prepareForSave(r *SavedRecipe) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Source == "" {
		r.Source = SourceManual
	}
	for i := range r.Ingredients {
		if r.Ingredients[i].Raw == "" {
			r.Ingredients[i].Raw = r.Ingredients[i].ComposeRaw()
		}
	}
}
