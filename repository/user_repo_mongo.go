package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shippingerp/models"
)

type MongoUserRepo struct {
	DB *mongo.Database
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	id, err := nextID(ctx, r.DB, colUsers)
	if err != nil {
		return err
	}
	user.ID = id

	_, err = r.DB.Collection(colUsers).InsertOne(ctx, user)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.DB.Collection(colUsers).FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) GetUserByID(ctx context.Context, id int64) (*models.AppUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}
