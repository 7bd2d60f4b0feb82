package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/db/model"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// CategoryRepository exposes the read-only category catalog.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}
