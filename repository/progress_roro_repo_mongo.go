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

// MongoRoRoRepo needs a replica set (or sharded cluster) for WithinTx.
type MongoRoRoRepo struct {
	DB *mongo.Database
}

func NewMongoRoRoRepo(db *mongo.Database) *MongoRoRoRepo {
	return &MongoRoRoRepo{DB: db}
}

func (r *MongoRoRoRepo) find(ctx context.Context, filter bson.M) ([]*models.ProgressRoRo, error) {
	cur, err := r.DB.Collection(colRoRo).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var list []*models.ProgressRoRo
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, 0, len(list))
	creators := make([]*int64, 0, len(list))
	byID := make(map[int64]*models.ProgressRoRo, len(list))
	for _, ro := range list {
		ro.Details = []models.ProgressRoRoDetail{}
		ids = append(ids, ro.ID)
		creators = append(creators, ro.CreatorID)
		byID[ro.ID] = ro
	}

	users, err := loadUsers(ctx, r.DB, collectIDs(creators...))
	if err != nil {
		return nil, err
	}
	details, err := findDetails(ctx, r.DB, bson.M{"progress_detail_roro_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, ro := range list {
		ro.Creator = userOf(users, ro.CreatorID)
	}
	for _, d := range details {
		if ro, ok := byID[d.RoRoID]; ok {
			ro.Details = append(ro.Details, d)
		}
	}
	return list, nil
}

func findDetails(ctx context.Context, db *mongo.Database, filter bson.M) ([]models.ProgressRoRoDetail, error) {
	cur, err := db.Collection(colRoRoDetail).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var details []models.ProgressRoRoDetail
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *MongoRoRoRepo) ListByProgress(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error) {
	return r.find(ctx, bson.M{"progress_id": progressID})
}

func (r *MongoRoRoRepo) GetRoRo(ctx context.Context, id int64) (*models.ProgressRoRo, error) {
	list, err := r.find(ctx, bson.M{"_id": id})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *MongoRoRoRepo) WithinTx(ctx context.Context, fn func(tx RoRoTx) error) error {
	session, err := r.DB.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(&mongoRoRoTx{ctx: sc, db: r.DB})
	})
	return err
}

type mongoRoRoTx struct {
	ctx context.Context
	db  *mongo.Database
}

func (t *mongoRoRoTx) ProgressExists(progressID int64) (bool, error) {
	n, err := t.db.Collection(colProgress).CountDocuments(t.ctx, bson.M{"_id": progressID}, options.Count().SetLimit(1))
	return n > 0, err
}

// GetForUpdate reads the master inside the session; concurrent writers are
// rejected by the transaction's write-conflict check instead of a row lock.
func (t *mongoRoRoTx) GetForUpdate(id int64) (*models.ProgressRoRo, error) {
	ro := &models.ProgressRoRo{}
	if err := t.db.Collection(colRoRo).FindOne(t.ctx, bson.M{"_id": id}).Decode(ro); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return ro, nil
}

func (t *mongoRoRoTx) InsertRoRo(ro *models.ProgressRoRo) error {
	if ro.CreatedAt.IsZero() {
		ro.CreatedAt = time.Now().UTC()
	}
	id, err := nextID(t.ctx, t.db, colRoRo)
	if err != nil {
		return err
	}
	ro.ID = id
	_, err = t.db.Collection(colRoRo).InsertOne(t.ctx, ro)
	return err
}

func (t *mongoRoRoTx) UpdateRoRo(ro *models.ProgressRoRo) error {
	now := time.Now().UTC()
	ro.UpdatedAt = &now
	_, err := t.db.Collection(colRoRo).ReplaceOne(t.ctx, bson.M{"_id": ro.ID}, ro)
	return err
}

func (t *mongoRoRoTx) DeleteRoRo(id int64) error {
	if _, err := t.db.Collection(colRoRoDetail).DeleteMany(t.ctx, bson.M{"progress_detail_roro_id": id}); err != nil {
		return err
	}
	_, err := t.db.Collection(colRoRo).DeleteOne(t.ctx, bson.M{"_id": id})
	return err
}

func (t *mongoRoRoTx) ListDetails(roroID int64) ([]models.ProgressRoRoDetail, error) {
	return findDetails(t.ctx, t.db, bson.M{"progress_detail_roro_id": roroID})
}

func (t *mongoRoRoTx) InsertDetail(d *models.ProgressRoRoDetail) error {
	id, err := nextID(t.ctx, t.db, colRoRoDetail)
	if err != nil {
		return err
	}
	d.ID = id
	_, err = t.db.Collection(colRoRoDetail).InsertOne(t.ctx, d)
	return err
}

func (t *mongoRoRoTx) UpdateDetail(d *models.ProgressRoRoDetail) error {
	_, err := t.db.Collection(colRoRoDetail).ReplaceOne(t.ctx,
		bson.M{"_id": d.ID, "progress_detail_roro_id": d.RoRoID}, d)
	return err
}

func (t *mongoRoRoTx) DeleteDetails(roroID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := t.db.Collection(colRoRoDetail).DeleteMany(t.ctx, bson.M{
		"progress_detail_roro_id": roroID,
		"_id":                     bson.M{"$in": ids},
	})
	return err
}
