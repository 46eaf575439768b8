package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"shippingerp/models"
)

type PostgresRoRoRepo struct {
	DB *sql.DB
}

func NewPostgresRoRoRepo(db *sql.DB) *PostgresRoRoRepo {
	return &PostgresRoRoRepo{DB: db}
}

// roroColumns are the writable master columns, in the order of roroValues.
var roroColumns = []string{
	"progress_id", "creator_id", "bk_no", "line", "vessel", "doc", "partner",
	"eta", "etd", "payment", "atd", "shipper", "destination",
	"small", "buy_small", "s_suv", "buy_s_suv", "suv", "buy_suv",
	"rv_cargo", "buy_rv_cargo", "special", "buy_special", "cbm", "buy_cbm",
	"sell", "hc", "wfg", "security", "carrier", "partner_fee", "other", "rate",
	"profit_usd", "profit_krw",
}

var roroSelectColumns = "r.id, r." + strings.Join(roroColumns, ", r.") + ", r.created_at, r.updated_at"

func roroValues(r *models.ProgressRoRo) []any {
	c := &r.RoRoCosts
	return []any{
		r.ProgressID, r.CreatorID, r.BKNo, pq.Array(r.Line), pq.Array(r.Vessel), pq.Array(r.Doc), r.Partner,
		r.ETA, r.ETD, r.Payment, r.ATD, r.Shipper, r.Destination,
		c.Small, c.BuySmall, c.SSUV, c.BuySSUV, c.SUV, c.BuySUV,
		c.RVCargo, c.BuyRVCargo, c.Special, c.BuySpecial, c.CBM, c.BuyCBM,
		c.Sell, c.HC, c.WFG, c.Security, c.Carrier, c.PartnerFee, c.Other, c.Rate,
		r.ProfitUSD, r.ProfitKRW,
	}
}

func roroDest(r *models.ProgressRoRo) []any {
	c := &r.RoRoCosts
	return []any{
		&r.ID,
		&r.ProgressID, &r.CreatorID, &r.BKNo, pq.Array(&r.Line), pq.Array(&r.Vessel), pq.Array(&r.Doc), &r.Partner,
		&r.ETA, &r.ETD, &r.Payment, &r.ATD, &r.Shipper, &r.Destination,
		&c.Small, &c.BuySmall, &c.SSUV, &c.BuySSUV, &c.SUV, &c.BuySUV,
		&c.RVCargo, &c.BuyRVCargo, &c.Special, &c.BuySpecial, &c.CBM, &c.BuyCBM,
		&c.Sell, &c.HC, &c.WFG, &c.Security, &c.Carrier, &c.PartnerFee, &c.Other, &c.Rate,
		&r.ProfitUSD, &r.ProfitKRW,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

// queryGraph loads masters with their creators, then every detail of those
// masters in a single follow-up query.
func (r *PostgresRoRoRepo) queryGraph(ctx context.Context, where string, arg any) ([]*models.ProgressRoRo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+roroSelectColumns+`, u.id, u.username, u.email, u.role
		FROM progress_detail_roro r
		LEFT JOIN users u ON u.id = r.creator_id
		`+where+`
		ORDER BY r.id
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		list []*models.ProgressRoRo
		ids  []int64
		byID = map[int64]*models.ProgressRoRo{}
	)
	for rows.Next() {
		ro := &models.ProgressRoRo{}
		var creator nullableUser
		if err := rows.Scan(append(roroDest(ro), creator.dest()...)...); err != nil {
			return nil, err
		}
		ro.Creator = creator.out()
		ro.Details = []models.ProgressRoRoDetail{}
		list = append(list, ro)
		ids = append(ids, ro.ID)
		byID[ro.ID] = ro
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	details, err := queryDetails(ctx, r.DB, `WHERE progress_detail_roro_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, d := range details {
		if ro, ok := byID[d.RoRoID]; ok {
			ro.Details = append(ro.Details, d)
		}
	}
	return list, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryDetails(ctx context.Context, q queryer, where string, args ...any) ([]models.ProgressRoRoDetail, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, progress_detail_roro_id, model, chassis_no, el, hbl
		FROM progress_detail_roro_detail
		`+where+`
		ORDER BY id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.ProgressRoRoDetail
	for rows.Next() {
		var d models.ProgressRoRoDetail
		if err := rows.Scan(&d.ID, &d.RoRoID, &d.Model, &d.ChassisNo, &d.EL, &d.HBL); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PostgresRoRoRepo) ListByProgress(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error) {
	return r.queryGraph(ctx, `WHERE r.progress_id = $1`, progressID)
}

func (r *PostgresRoRoRepo) GetRoRo(ctx context.Context, id int64) (*models.ProgressRoRo, error) {
	list, err := r.queryGraph(ctx, `WHERE r.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *PostgresRoRoRepo) WithinTx(ctx context.Context, fn func(tx RoRoTx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&postgresRoRoTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type postgresRoRoTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *postgresRoRoTx) ProgressExists(progressID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(t.ctx, `SELECT EXISTS (SELECT 1 FROM progress WHERE id = $1)`, progressID).Scan(&exists)
	return exists, err
}

func (t *postgresRoRoTx) GetForUpdate(id int64) (*models.ProgressRoRo, error) {
	ro := &models.ProgressRoRo{}
	err := t.tx.QueryRowContext(t.ctx, `
		SELECT `+roroSelectColumns+`
		FROM progress_detail_roro r
		WHERE r.id = $1
		FOR UPDATE
	`, id).Scan(roroDest(ro)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ro, nil
}

func (t *postgresRoRoTx) InsertRoRo(ro *models.ProgressRoRo) error {
	if ro.CreatedAt.IsZero() {
		ro.CreatedAt = time.Now().UTC()
	}
	args := append(roroValues(ro), ro.CreatedAt)
	return t.tx.QueryRowContext(t.ctx, `
		INSERT INTO progress_detail_roro (`+strings.Join(roroColumns, ", ")+`, created_at)
		VALUES (`+placeholders(1, len(args))+`)
		RETURNING id
	`, args...).Scan(&ro.ID)
}

func (t *postgresRoRoTx) UpdateRoRo(ro *models.ProgressRoRo) error {
	now := time.Now().UTC()
	ro.UpdatedAt = &now

	sets := make([]string, len(roroColumns))
	for i, col := range roroColumns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args := append(roroValues(ro), now, ro.ID)
	n := len(roroColumns)
	_, err := t.tx.ExecContext(t.ctx, fmt.Sprintf(
		`UPDATE progress_detail_roro SET %s, updated_at = $%d WHERE id = $%d`,
		strings.Join(sets, ", "), n+1, n+2,
	), args...)
	return err
}

func (t *postgresRoRoTx) DeleteRoRo(id int64) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM progress_detail_roro WHERE id = $1`, id)
	return err
}

func (t *postgresRoRoTx) ListDetails(roroID int64) ([]models.ProgressRoRoDetail, error) {
	return queryDetails(t.ctx, t.tx, `WHERE progress_detail_roro_id = $1`, roroID)
}

func (t *postgresRoRoTx) InsertDetail(d *models.ProgressRoRoDetail) error {
	return t.tx.QueryRowContext(t.ctx, `
		INSERT INTO progress_detail_roro_detail (progress_detail_roro_id, model, chassis_no, el, hbl)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.RoRoID, d.Model, d.ChassisNo, d.EL, d.HBL).Scan(&d.ID)
}

func (t *postgresRoRoTx) UpdateDetail(d *models.ProgressRoRoDetail) error {
	_, err := t.tx.ExecContext(t.ctx, `
		UPDATE progress_detail_roro_detail
		SET model = $1, chassis_no = $2, el = $3, hbl = $4
		WHERE id = $5 AND progress_detail_roro_id = $6
	`, d.Model, d.ChassisNo, d.EL, d.HBL, d.ID, d.RoRoID)
	return err
}

func (t *postgresRoRoTx) DeleteDetails(roroID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := t.tx.ExecContext(t.ctx,
		`DELETE FROM progress_detail_roro_detail WHERE progress_detail_roro_id = $1 AND id = ANY($2)`,
		roroID, pq.Array(ids))
	return err
}
