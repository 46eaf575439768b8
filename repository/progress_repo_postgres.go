package repository

import (
	"context"
	"database/sql"
	"time"

	"shippingerp/models"
)

type PostgresProgressRepo struct {
	DB *sql.DB
}

func NewPostgresProgressRepo(db *sql.DB) *PostgresProgressRepo {
	return &PostgresProgressRepo{DB: db}
}

const progressSelect = `
	SELECT p.id, p.title, p.post_id, p.creator_id, p.created_at, p.updated_at,
		u.id, u.username, u.email, u.role
	FROM progress p
	LEFT JOIN users u ON u.id = p.creator_id`

func (r *PostgresProgressRepo) getOne(ctx context.Context, where string, arg any) (*models.Progress, error) {
	rows, err := r.DB.QueryContext(ctx, progressSelect+where, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}

	p := &models.Progress{}
	var (
		creatorID sql.NullInt64
		updatedAt sql.NullTime
		creator   nullableUser
	)
	dest := append([]any{&p.ID, &p.Title, &p.PostID, &creatorID, &p.CreatedAt, &updatedAt}, creator.dest()...)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	p.CreatorID = int64Ptr(creatorID)
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	p.Creator = creator.out()
	p.Post = &models.SimplePost{ID: p.PostID}
	return p, nil
}

func (r *PostgresProgressRepo) GetProgress(ctx context.Context, id int64) (*models.Progress, error) {
	return r.getOne(ctx, ` WHERE p.id = $1`, id)
}

func (r *PostgresProgressRepo) GetProgressByPost(ctx context.Context, postID int64) (*models.Progress, error) {
	return r.getOne(ctx, ` WHERE p.post_id = $1`, postID)
}

func (r *PostgresProgressRepo) CreateProgress(ctx context.Context, p *models.Progress) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO progress (title, post_id, creator_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Title, p.PostID, p.CreatorID, p.CreatedAt).Scan(&p.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresProgressRepo) UpdateProgress(ctx context.Context, id int64, title *string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE progress SET title = $1, updated_at = $2 WHERE id = $3`,
		title, time.Now().UTC(), id)
	return err
}

// DeleteProgress relies on ON DELETE CASCADE for RoRo lines and their details.
func (r *PostgresProgressRepo) DeleteProgress(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM progress WHERE id = $1`, id)
	return err
}
