package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"shippingerp/models"
)

type PostgresPostRepo struct {
	DB *sql.DB
}

func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{DB: db}
}

const postSelect = `
	SELECT p.id, p.title, p.description, p.file_paths, p.type_category_id, p.region_category_id,
		p.creator_id, p.created_at, p.updated_at,
		u.id, u.username, u.email, u.role,
		tc.id, tc.title, tu.id, tu.username, tu.email, tu.role,
		rc.id, rc.title, ru.id, ru.username, ru.email, ru.role
	FROM posts p
	LEFT JOIN users u ON u.id = p.creator_id
	LEFT JOIN type_categories tc ON tc.id = p.type_category_id
	LEFT JOIN users tu ON tu.id = tc.creator_id
	LEFT JOIN region_categories rc ON rc.id = p.region_category_id
	LEFT JOIN users ru ON ru.id = rc.creator_id`

type nullableCategory struct {
	ID      sql.NullInt64
	Title   sql.NullString
	Creator nullableUser
}

func (c *nullableCategory) dest() []any {
	return append([]any{&c.ID, &c.Title}, c.Creator.dest()...)
}

func (c *nullableCategory) out() *models.Category {
	if !c.ID.Valid {
		return nil
	}
	cat := &models.Category{ID: c.ID.Int64, Title: c.Title.String, Creator: c.Creator.out()}
	if cat.Creator != nil {
		cat.CreatorID = &cat.Creator.ID
	}
	return cat
}

func scanPost(rows *sql.Rows) (*models.Post, error) {
	p := &models.Post{}
	var (
		typeID, regionID, creatorID sql.NullInt64
		updatedAt                   sql.NullTime
		creator                     nullableUser
		typeCat, regionCat          nullableCategory
	)

	dest := []any{&p.ID, &p.Title, &p.Description, pq.Array(&p.FilePaths), &typeID, &regionID,
		&creatorID, &p.CreatedAt, &updatedAt}
	dest = append(dest, creator.dest()...)
	dest = append(dest, typeCat.dest()...)
	dest = append(dest, regionCat.dest()...)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	p.TypeCategoryID = int64Ptr(typeID)
	p.RegionCategoryID = int64Ptr(regionID)
	p.CreatorID = int64Ptr(creatorID)
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	p.Creator = creator.out()
	p.TypeCategory = typeCat.out()
	p.RegionCategory = regionCat.out()
	return p, nil
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func (r *PostgresPostRepo) CreatePost(ctx context.Context, p *models.Post) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO posts (title, description, file_paths, type_category_id, region_category_id, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Title, p.Description, pq.Array(p.FilePaths), p.TypeCategoryID, p.RegionCategoryID, p.CreatorID, p.CreatedAt).Scan(&p.ID)
}

func (r *PostgresPostRepo) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, postSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanPost(rows)
}

// postWhere builds the filter shared by the page query and the count query.
func postWhere(f models.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CreatorID != 0 {
		add("p.creator_id = $%d", f.CreatorID)
	}
	if f.TypeCategoryID != 0 {
		add("p.type_category_id = $%d", f.TypeCategoryID)
	}
	if f.RegionCategoryID != 0 {
		add("p.region_category_id = $%d", f.RegionCategoryID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.description ILIKE $%d OR array_to_string(p.file_paths, ',') ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresPostRepo) ListPosts(ctx context.Context, f models.PostFilter) ([]*models.Post, int64, error) {
	page, size := models.NormalizePaging(f.Page, f.Size)
	where, args := postWhere(f)

	var total int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, size, (page-1)*size)
	rows, err := r.DB.QueryContext(ctx,
		postSelect+where+fmt.Sprintf(` ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// UpdatePost writes the present columns and always replaces file_paths.
func (r *PostgresPostRepo) UpdatePost(ctx context.Context, id int64, ch models.PostChanges) error {
	sets := []string{"file_paths = $1", "updated_at = $2"}
	args := []any{pq.Array(ch.FilePaths), time.Now().UTC()}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if ch.Title != nil {
		set("title", *ch.Title)
	}
	if ch.Description != nil {
		set("description", *ch.Description)
	}
	if ch.TypeCategoryID != nil {
		set("type_category_id", *ch.TypeCategoryID)
	}
	if ch.RegionCategoryID != nil {
		set("region_category_id", *ch.RegionCategoryID)
	}

	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	return err
}

// DeletePost relies on ON DELETE CASCADE for replies, progress and RoRo lines.
func (r *PostgresPostRepo) DeletePost(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
