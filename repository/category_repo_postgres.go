package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shippingerp/models"
)

type PostgresCategoryRepo struct {
	DB *sql.DB
}

func NewPostgresCategoryRepo(db *sql.DB) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{DB: db}
}

func categoryTable(kind models.CategoryKind) (string, error) {
	switch kind {
	case models.CategoryType:
		return "type_categories", nil
	case models.CategoryRegion:
		return "region_categories", nil
	}
	return "", fmt.Errorf("unknown category kind %q", kind)
}

// nullableUser maps the LEFT JOINed creator columns into a UserOut.
type nullableUser struct {
	ID       sql.NullInt64
	Username sql.NullString
	Email    sql.NullString
	Role     sql.NullString
}

func (u *nullableUser) dest() []any {
	return []any{&u.ID, &u.Username, &u.Email, &u.Role}
}

func (u *nullableUser) out() *models.UserOut {
	if !u.ID.Valid {
		return nil
	}
	return &models.UserOut{ID: u.ID.Int64, Username: u.Username.String, Email: u.Email.String, Role: u.Role.String}
}

func (r *PostgresCategoryRepo) query(ctx context.Context, kind models.CategoryKind, where string, args ...any) ([]*models.Category, error) {
	table, err := categoryTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.title, c.creator_id, u.id, u.username, u.email, u.role
		FROM `+table+` c
		LEFT JOIN users u ON u.id = c.creator_id
		`+where+`
		ORDER BY c.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Category
	for rows.Next() {
		c := &models.Category{}
		var creatorID sql.NullInt64
		var u nullableUser
		if err := rows.Scan(append([]any{&c.ID, &c.Title, &creatorID}, u.dest()...)...); err != nil {
			return nil, err
		}
		if creatorID.Valid {
			c.CreatorID = &creatorID.Int64
		}
		c.Creator = u.out()
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PostgresCategoryRepo) ListCategories(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	return r.query(ctx, kind, "")
}

func (r *PostgresCategoryRepo) GetCategory(ctx context.Context, kind models.CategoryKind, id int64) (*models.Category, error) {
	list, err := r.query(ctx, kind, "WHERE c.id = $1", id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *PostgresCategoryRepo) CreateCategory(ctx context.Context, kind models.CategoryKind, c *models.Category) error {
	table, err := categoryTable(kind)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO `+table+` (title, creator_id) VALUES ($1, $2) RETURNING id`,
		c.Title, c.CreatorID,
	).Scan(&c.ID)
}

func (r *PostgresCategoryRepo) DeleteCategory(ctx context.Context, kind models.CategoryKind, id int64) error {
	table, err := categoryTable(kind)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return err
}
