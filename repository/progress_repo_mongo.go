package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shippingerp/models"
)

type MongoProgressRepo struct {
	DB *mongo.Database
}

func NewMongoProgressRepo(db *mongo.Database) *MongoProgressRepo {
	return &MongoProgressRepo{DB: db}
}

func (r *MongoProgressRepo) findOne(ctx context.Context, filter bson.M) (*models.Progress, error) {
	p := &models.Progress{}
	if err := r.DB.Collection(colProgress).FindOne(ctx, filter).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	users, err := loadUsers(ctx, r.DB, collectIDs(p.CreatorID))
	if err != nil {
		return nil, err
	}
	p.Creator = userOf(users, p.CreatorID)
	p.Post = &models.SimplePost{ID: p.PostID}
	return p, nil
}

func (r *MongoProgressRepo) GetProgress(ctx context.Context, id int64) (*models.Progress, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProgressRepo) GetProgressByPost(ctx context.Context, postID int64) (*models.Progress, error) {
	return r.findOne(ctx, bson.M{"post_id": postID})
}

func (r *MongoProgressRepo) CreateProgress(ctx context.Context, p *models.Progress) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	id, err := nextID(ctx, r.DB, colProgress)
	if err != nil {
		return err
	}
	p.ID = id
	_, err = r.DB.Collection(colProgress).InsertOne(ctx, p)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoProgressRepo) UpdateProgress(ctx context.Context, id int64, title *string) error {
	_, err := r.DB.Collection(colProgress).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":      title,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// DeleteProgress removes the progress, its RoRo lines and their details.
func (r *MongoProgressRepo) DeleteProgress(ctx context.Context, id int64) error {
	cur, err := r.DB.Collection(colRoRo).Find(ctx, bson.M{"progress_id": id})
	if err != nil {
		return err
	}
	var lines []struct {
		ID int64 `bson:"_id"`
	}
	if err := cur.All(ctx, &lines); err != nil {
		return err
	}
	if len(lines) > 0 {
		ids := make([]int64, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ID)
		}
		if _, err := r.DB.Collection(colRoRoDetail).DeleteMany(ctx, bson.M{"progress_detail_roro_id": bson.M{"$in": ids}}); err != nil {
			return err
		}
		if _, err := r.DB.Collection(colRoRo).DeleteMany(ctx, bson.M{"progress_id": id}); err != nil {
			return err
		}
	}
	_, err = r.DB.Collection(colProgress).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
