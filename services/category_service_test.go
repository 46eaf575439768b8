package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shippingerp/models"
)

func TestCategoryService(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := &CategoryService{Repo: repo, Log: nopLog}
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CategoryType, "RoRo", staff(1))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, models.CategoryType, "  ", admin(1))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.List(ctx, models.CategoryKind("color"))
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := svc.Create(ctx, models.CategoryRegion, " Africa ", admin(1))
	require.NoError(t, err)
	assert.Equal(t, "Africa", c.Title)
	assert.Equal(t, int64(1), c.Creator.ID)

	list, err := svc.List(ctx, models.CategoryRegion)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := svc.List(ctx, models.CategoryType)
	require.NoError(t, err)
	assert.NotNil(t, empty)

	assert.ErrorIs(t, svc.Delete(ctx, models.CategoryRegion, c.ID, admin(2)), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, models.CategoryRegion, 99, admin(1)), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, models.CategoryRegion, c.ID, admin(1)))
}
