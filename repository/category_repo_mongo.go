package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shippingerp/models"
)

type MongoCategoryRepo struct {
	DB *mongo.Database
}

func NewMongoCategoryRepo(db *mongo.Database) *MongoCategoryRepo {
	return &MongoCategoryRepo{DB: db}
}

func categoryCollection(kind models.CategoryKind) (string, error) {
	switch kind {
	case models.CategoryType:
		return colTypeCategory, nil
	case models.CategoryRegion:
		return colRegionCategory, nil
	}
	return "", fmt.Errorf("unknown category kind %q", kind)
}

func (r *MongoCategoryRepo) withCreators(ctx context.Context, list []*models.Category) error {
	ids := make([]*int64, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.CreatorID)
	}
	users, err := loadUsers(ctx, r.DB, collectIDs(ids...))
	if err != nil {
		return err
	}
	for _, c := range list {
		c.Creator = userOf(users, c.CreatorID)
	}
	return nil
}

func (r *MongoCategoryRepo) ListCategories(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	name, err := categoryCollection(kind)
	if err != nil {
		return nil, err
	}
	cur, err := r.DB.Collection(name).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var list []*models.Category
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, r.withCreators(ctx, list)
}

func (r *MongoCategoryRepo) GetCategory(ctx context.Context, kind models.CategoryKind, id int64) (*models.Category, error) {
	name, err := categoryCollection(kind)
	if err != nil {
		return nil, err
	}
	c := &models.Category{}
	if err := r.DB.Collection(name).FindOne(ctx, bson.M{"_id": id}).Decode(c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return c, r.withCreators(ctx, []*models.Category{c})
}

func (r *MongoCategoryRepo) CreateCategory(ctx context.Context, kind models.CategoryKind, c *models.Category) error {
	name, err := categoryCollection(kind)
	if err != nil {
		return err
	}
	id, err := nextID(ctx, r.DB, name)
	if err != nil {
		return err
	}
	c.ID = id
	_, err = r.DB.Collection(name).InsertOne(ctx, c)
	return err
}

// DeleteCategory also clears the reference from posts, matching ON DELETE SET NULL.
func (r *MongoCategoryRepo) DeleteCategory(ctx context.Context, kind models.CategoryKind, id int64) error {
	name, err := categoryCollection(kind)
	if err != nil {
		return err
	}
	if _, err := r.DB.Collection(name).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	field := "type_category_id"
	if kind == models.CategoryRegion {
		field = "region_category_id"
	}
	_, err = r.DB.Collection(colPosts).UpdateMany(ctx, bson.M{field: id}, bson.M{"$set": bson.M{field: nil}})
	return err
}
