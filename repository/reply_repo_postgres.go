package repository

import (
	"context"
	"database/sql"
	"time"

	"shippingerp/models"
)

type PostgresReplyRepo struct {
	DB *sql.DB
}

func NewPostgresReplyRepo(db *sql.DB) *PostgresReplyRepo {
	return &PostgresReplyRepo{DB: db}
}

const replySelect = `
	SELECT r.id, r.description, r.post_id, r.creator_id, r.created_at, r.updated_at,
		u.id, u.username, u.email, u.role
	FROM replies r
	LEFT JOIN users u ON u.id = r.creator_id`

func scanReply(rows *sql.Rows) (*models.Reply, error) {
	rp := &models.Reply{}
	var (
		creatorID sql.NullInt64
		updatedAt sql.NullTime
		creator   nullableUser
	)
	dest := append([]any{&rp.ID, &rp.Description, &rp.PostID, &creatorID, &rp.CreatedAt, &updatedAt}, creator.dest()...)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	rp.CreatorID = int64Ptr(creatorID)
	if updatedAt.Valid {
		rp.UpdatedAt = &updatedAt.Time
	}
	rp.Creator = creator.out()
	rp.Post = &models.SimplePost{ID: rp.PostID}
	return rp, nil
}

func (r *PostgresReplyRepo) ListReplies(ctx context.Context, postID int64, page, size int) ([]*models.Reply, int64, error) {
	page, size = models.NormalizePaging(page, size)

	var total int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM replies WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, replySelect+`
		WHERE r.post_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`, postID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Reply
	for rows.Next() {
		rp, err := scanReply(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, rp)
	}
	return list, total, rows.Err()
}

func (r *PostgresReplyRepo) GetReply(ctx context.Context, id int64) (*models.Reply, error) {
	rows, err := r.DB.QueryContext(ctx, replySelect+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanReply(rows)
}

func (r *PostgresReplyRepo) CreateReply(ctx context.Context, rp *models.Reply) error {
	if rp.CreatedAt.IsZero() {
		rp.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO replies (description, post_id, creator_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rp.Description, rp.PostID, rp.CreatorID, rp.CreatedAt).Scan(&rp.ID)
}

func (r *PostgresReplyRepo) UpdateReply(ctx context.Context, id int64, description *string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE replies SET description = $1, updated_at = $2 WHERE id = $3`,
		description, time.Now().UTC(), id)
	return err
}

func (r *PostgresReplyRepo) DeleteReply(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM replies WHERE id = $1`, id)
	return err
}
