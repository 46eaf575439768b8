package repository

import (
	"context"

	"shippingerp/models"
)

// ProgressRoRoRepository reads full RoRo graphs (master, creator, details) and
// runs writes inside a single transaction.
type ProgressRoRoRepository interface {
	ListByProgress(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error)
	GetRoRo(ctx context.Context, id int64) (*models.ProgressRoRo, error)
	// WithinTx runs fn in one transaction. The transaction commits only when
	// fn returns nil.
	WithinTx(ctx context.Context, fn func(tx RoRoTx) error) error
}

// RoRoTx is the write side of a RoRo transaction. Missing rows come back as
// (nil, nil) like every other repository read.
type RoRoTx interface {
	ProgressExists(progressID int64) (bool, error)
	// GetForUpdate loads the master row without details and locks it for the
	// rest of the transaction where the backend supports it.
	GetForUpdate(id int64) (*models.ProgressRoRo, error)
	InsertRoRo(r *models.ProgressRoRo) error
	UpdateRoRo(r *models.ProgressRoRo) error
	DeleteRoRo(id int64) error

	ListDetails(roroID int64) ([]models.ProgressRoRoDetail, error)
	InsertDetail(d *models.ProgressRoRoDetail) error
	UpdateDetail(d *models.ProgressRoRoDetail) error
	DeleteDetails(roroID int64, ids []int64) error
}
