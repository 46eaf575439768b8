package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shippingerp/models"
)

type MongoReplyRepo struct {
	DB *mongo.Database
}

func NewMongoReplyRepo(db *mongo.Database) *MongoReplyRepo {
	return &MongoReplyRepo{DB: db}
}

func (r *MongoReplyRepo) populate(ctx context.Context, list []*models.Reply) error {
	ids := make([]*int64, 0, len(list))
	for _, rp := range list {
		ids = append(ids, rp.CreatorID)
	}
	users, err := loadUsers(ctx, r.DB, collectIDs(ids...))
	if err != nil {
		return err
	}
	for _, rp := range list {
		rp.Creator = userOf(users, rp.CreatorID)
		rp.Post = &models.SimplePost{ID: rp.PostID}
	}
	return nil
}

func (r *MongoReplyRepo) ListReplies(ctx context.Context, postID int64, page, size int) ([]*models.Reply, int64, error) {
	page, size = models.NormalizePaging(page, size)
	coll := r.DB.Collection(colReplies)
	filter := bson.M{"post_id": postID}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page-1)*size)).
		SetLimit(int64(size)))
	if err != nil {
		return nil, 0, err
	}
	var list []*models.Reply
	if err := cur.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, r.populate(ctx, list)
}

func (r *MongoReplyRepo) GetReply(ctx context.Context, id int64) (*models.Reply, error) {
	rp := &models.Reply{}
	if err := r.DB.Collection(colReplies).FindOne(ctx, bson.M{"_id": id}).Decode(rp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return rp, r.populate(ctx, []*models.Reply{rp})
}

func (r *MongoReplyRepo) CreateReply(ctx context.Context, rp *models.Reply) error {
	if rp.CreatedAt.IsZero() {
		rp.CreatedAt = time.Now().UTC()
	}
	id, err := nextID(ctx, r.DB, colReplies)
	if err != nil {
		return err
	}
	rp.ID = id
	_, err = r.DB.Collection(colReplies).InsertOne(ctx, rp)
	return err
}

func (r *MongoReplyRepo) UpdateReply(ctx context.Context, id int64, description *string) error {
	_, err := r.DB.Collection(colReplies).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"description": description,
		"updated_at":  time.Now().UTC(),
	}})
	return err
}

func (r *MongoReplyRepo) DeleteReply(ctx context.Context, id int64) error {
	_, err := r.DB.Collection(colReplies).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
