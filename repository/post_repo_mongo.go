package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shippingerp/models"
)

type MongoPostRepo struct {
	DB         *mongo.Database
	Categories *MongoCategoryRepo
	Progress   *MongoProgressRepo
}

func NewMongoPostRepo(db *mongo.Database) *MongoPostRepo {
	return &MongoPostRepo{
		DB:         db,
		Categories: NewMongoCategoryRepo(db),
		Progress:   NewMongoProgressRepo(db),
	}
}

func (r *MongoPostRepo) CreatePost(ctx context.Context, p *models.Post) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	id, err := nextID(ctx, r.DB, colPosts)
	if err != nil {
		return err
	}
	p.ID = id
	_, err = r.DB.Collection(colPosts).InsertOne(ctx, p)
	return err
}

// populate attaches creators and categories to the posts.
func (r *MongoPostRepo) populate(ctx context.Context, list []*models.Post) error {
	var creatorIDs, typeIDs, regionIDs []*int64
	for _, p := range list {
		creatorIDs = append(creatorIDs, p.CreatorID)
		typeIDs = append(typeIDs, p.TypeCategoryID)
		regionIDs = append(regionIDs, p.RegionCategoryID)
	}
	users, err := loadUsers(ctx, r.DB, collectIDs(creatorIDs...))
	if err != nil {
		return err
	}
	types, err := r.categories(ctx, models.CategoryType, collectIDs(typeIDs...))
	if err != nil {
		return err
	}
	regions, err := r.categories(ctx, models.CategoryRegion, collectIDs(regionIDs...))
	if err != nil {
		return err
	}

	for _, p := range list {
		p.Creator = userOf(users, p.CreatorID)
		if p.TypeCategoryID != nil {
			p.TypeCategory = types[*p.TypeCategoryID]
		}
		if p.RegionCategoryID != nil {
			p.RegionCategory = regions[*p.RegionCategoryID]
		}
	}
	return nil
}

func (r *MongoPostRepo) categories(ctx context.Context, kind models.CategoryKind, ids []int64) (map[int64]*models.Category, error) {
	out := make(map[int64]*models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	name, err := categoryCollection(kind)
	if err != nil {
		return nil, err
	}
	cur, err := r.DB.Collection(name).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var list []*models.Category
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	if err := r.Categories.withCreators(ctx, list); err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func (r *MongoPostRepo) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	p := &models.Post{}
	if err := r.DB.Collection(colPosts).FindOne(ctx, bson.M{"_id": id}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return p, r.populate(ctx, []*models.Post{p})
}

func postFilter(f models.PostFilter) bson.M {
	filter := bson.M{}
	if f.CreatorID != 0 {
		filter["creator_id"] = f.CreatorID
	}
	if f.TypeCategoryID != 0 {
		filter["type_category_id"] = f.TypeCategoryID
	}
	if f.RegionCategoryID != 0 {
		filter["region_category_id"] = f.RegionCategoryID
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"file_paths": re},
		}
	}
	return filter
}

func (r *MongoPostRepo) ListPosts(ctx context.Context, f models.PostFilter) ([]*models.Post, int64, error) {
	page, size := models.NormalizePaging(f.Page, f.Size)
	filter := postFilter(f)
	coll := r.DB.Collection(colPosts)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var list []*models.Post
	if err := cur.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, r.populate(ctx, list)
}

func (r *MongoPostRepo) UpdatePost(ctx context.Context, id int64, ch models.PostChanges) error {
	set := bson.M{
		"file_paths": ch.FilePaths,
		"updated_at": time.Now().UTC(),
	}
	if ch.Title != nil {
		set["title"] = *ch.Title
	}
	if ch.Description != nil {
		set["description"] = *ch.Description
	}
	if ch.TypeCategoryID != nil {
		set["type_category_id"] = *ch.TypeCategoryID
	}
	if ch.RegionCategoryID != nil {
		set["region_category_id"] = *ch.RegionCategoryID
	}
	_, err := r.DB.Collection(colPosts).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// DeletePost removes the post, its replies and its progress tree.
func (r *MongoPostRepo) DeletePost(ctx context.Context, id int64) error {
	prog, err := r.Progress.GetProgressByPost(ctx, id)
	if err != nil {
		return err
	}
	if prog != nil {
		if err := r.Progress.DeleteProgress(ctx, prog.ID); err != nil {
			return err
		}
	}
	if _, err := r.DB.Collection(colReplies).DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return err
	}
	_, err = r.DB.Collection(colPosts).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
