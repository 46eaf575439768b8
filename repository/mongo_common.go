package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shippingerp/models"
)

// Collection names shared by the Mongo repositories. They match the Postgres
// table names.
const (
	colCounters       = "counters"
	colUsers          = "users"
	colPosts          = "posts"
	colReplies        = "replies"
	colProgress       = "progress"
	colRoRo           = "progress_detail_roro"
	colRoRoDetail     = "progress_detail_roro_detail"
	colTypeCategory   = "type_categories"
	colRegionCategory = "region_categories"
)

// nextID hands out sequential int64 ids per collection so Mongo documents
// carry the same numeric ids the API exposes.
func nextID(ctx context.Context, db *mongo.Database, collection string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(colCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", collection, err)
	}
	return doc.Seq, nil
}

// EnsureIndexes creates the indexes the Postgres schema gets from its
// constraints.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		colPosts: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		colProgress: {
			{Keys: bson.D{{Key: "post_id", Value: 1}}, Options: unique},
		},
		colReplies: {
			{Keys: bson.D{{Key: "post_id", Value: 1}}},
		},
		colRoRo: {
			{Keys: bson.D{{Key: "progress_id", Value: 1}}},
		},
		colRoRoDetail: {
			{Keys: bson.D{{Key: "progress_detail_roro_id", Value: 1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// loadUsers fetches the public shape of every referenced user in one query.
func loadUsers(ctx context.Context, db *mongo.Database, ids []int64) (map[int64]*models.UserOut, error) {
	out := make(map[int64]*models.UserOut, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := db.Collection(colUsers).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var users []models.UserOut
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// collectIDs returns the distinct non-nil ids.
func collectIDs(ids ...*int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		out = append(out, *id)
	}
	return out
}

func userOf(users map[int64]*models.UserOut, id *int64) *models.UserOut {
	if id == nil {
		return nil
	}
	return users[*id]
}
