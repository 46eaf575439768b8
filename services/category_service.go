package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/repository"
)

type CategoryService struct {
	Repo repository.CategoryRepository
	Log  *zap.Logger
}

func checkKind(kind models.CategoryKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrNotFound, kind)
	}
	return nil
}

func (s *CategoryService) List(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	list, err := s.Repo.ListCategories(ctx, kind)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.Category{}
	}
	return list, nil
}

func (s *CategoryService) Create(ctx context.Context, kind models.CategoryKind, title string, actor *models.AppUser) (*models.Category, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 50 {
		return nil, fmt.Errorf("%w: title must be 1-50 characters", ErrValidation)
	}

	c := &models.Category{Title: title, CreatorID: &actor.ID}
	if err := s.Repo.CreateCategory(ctx, kind, c); err != nil {
		return nil, err
	}
	c.Creator = actor.Out()
	s.Log.Info("category created", zap.String("kind", string(kind)), zap.Int64("category_id", c.ID))
	return c, nil
}

// Delete is limited to the admin who created the category.
func (s *CategoryService) Delete(ctx context.Context, kind models.CategoryKind, id int64, actor *models.AppUser) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	c, err := s.Repo.GetCategory(ctx, kind, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if !actor.IsAdmin() || c.CreatorID == nil || *c.CreatorID != actor.ID {
		return fmt.Errorf("%w: only the creating admin can delete category %d", ErrForbidden, id)
	}
	return s.Repo.DeleteCategory(ctx, kind, id)
}
