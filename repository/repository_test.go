package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"shippingerp/models"
)

func TestPostWhere_CombinesFiltersInOrder(t *testing.T) {
	where, args := postWhere(models.PostFilter{CreatorID: 7, RegionCategoryID: 3, Search: " bl "})

	assert.Equal(t,
		" WHERE p.creator_id = $1 AND p.region_category_id = $2 AND "+
			"(p.title ILIKE $3 OR p.description ILIKE $3 OR array_to_string(p.file_paths, ',') ILIKE $3)",
		where)
	assert.Equal(t, []any{int64(7), int64(3), "%bl%"}, args)
}

func TestPostWhere_Empty(t *testing.T) {
	where, args := postWhere(models.PostFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestPostFilter_Mongo(t *testing.T) {
	f := postFilter(models.PostFilter{TypeCategoryID: 2, Search: "a.b"})
	assert.Equal(t, int64(2), f["type_category_id"])
	assert.Contains(t, f, "$or")
	assert.NotContains(t, f, "creator_id")
}

func TestRoRoColumnsMatchValues(t *testing.T) {
	ro := &models.ProgressRoRo{}
	assert.Len(t, roroValues(ro), len(roroColumns))
	// id first, created_at and updated_at last
	assert.Len(t, roroDest(ro), len(roroColumns)+3)
	assert.Equal(t, len(roroColumns)+3, strings.Count(roroSelectColumns, ",")+1)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(1, 3))
	assert.Equal(t, "$4", placeholders(4, 1))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}

func TestCollectIDs(t *testing.T) {
	a, b := int64(1), int64(2)
	dup := int64(1)
	assert.Equal(t, []int64{1, 2}, collectIDs(&a, nil, &b, &dup))
}
