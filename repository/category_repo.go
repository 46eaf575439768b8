package repository

import (
	"context"

	"shippingerp/models"
)

// CategoryRepository serves both category tables; kind picks the table.
type CategoryRepository interface {
	ListCategories(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error)
	GetCategory(ctx context.Context, kind models.CategoryKind, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, kind models.CategoryKind, c *models.Category) error
	DeleteCategory(ctx context.Context, kind models.CategoryKind, id int64) error
}
