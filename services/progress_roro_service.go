package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/repository"
)

// ProgressRoRoService owns RoRo master lines and their chassis details.
// Every write runs in one repository transaction; profit is always derived
// from the stored row after the payload has been merged onto it.
type ProgressRoRoService struct {
	Repo repository.ProgressRoRoRepository
	Log  *zap.Logger
}

func (s *ProgressRoRoService) List(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error) {
	list, err := s.Repo.ListByProgress(ctx, progressID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.ProgressRoRo{}
	}
	return list, nil
}

func (s *ProgressRoRoService) Get(ctx context.Context, id int64) (*models.ProgressRoRo, error) {
	ro, err := s.Repo.GetRoRo(ctx, id)
	if err != nil {
		return nil, err
	}
	if ro == nil {
		return nil, fmt.Errorf("%w: progress roro %d", ErrNotFound, id)
	}
	return ro, nil
}

func applyProfit(ro *models.ProgressRoRo) error {
	usd, krw, err := ComputeProfit(ro.RoRoCosts)
	if err != nil {
		return err
	}
	ro.ProfitUSD, ro.ProfitKRW = usd, krw
	return nil
}

// Create inserts a master line and its details under progressID.
func (s *ProgressRoRoService) Create(ctx context.Context, progressID int64, p *models.ProgressRoRoPayload, actor *models.AppUser) (*models.ProgressRoRo, error) {
	if !actor.IsStaff() {
		return nil, fmt.Errorf("%w: staff only", ErrForbidden)
	}

	ro := &models.ProgressRoRo{ProgressID: progressID, CreatorID: &actor.ID}
	p.ApplyTo(ro)
	if err := applyProfit(ro); err != nil {
		return nil, err
	}

	rows := p.DetailRows()
	err := s.Repo.WithinTx(ctx, func(tx repository.RoRoTx) error {
		ok, err := tx.ProgressExists(progressID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: progress %d", ErrNotFound, progressID)
		}
		if err := tx.InsertRoRo(ro); err != nil {
			return err
		}
		for i := range rows {
			d := models.ProgressRoRoDetail{RoRoID: ro.ID}
			rows[i].ApplyTo(&d)
			if err := tx.InsertDetail(&d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("progress roro created",
		zap.Int64("roro_id", ro.ID),
		zap.Int64("progress_id", progressID),
		zap.Int("details", len(rows)),
		zap.Float64("profit_usd", ro.ProfitUSD),
	)
	return s.Get(ctx, ro.ID)
}

// Update merges the patch onto the stored master, recomputes profit and, when
// the patch carries a detail list, reconciles the stored details against it.
// Only the creator may update.
func (s *ProgressRoRoService) Update(ctx context.Context, id int64, p *models.ProgressRoRoPayload, actor *models.AppUser) (*models.ProgressRoRo, error) {
	var stats reconcileStats
	err := s.Repo.WithinTx(ctx, func(tx repository.RoRoTx) error {
		ro, err := tx.GetForUpdate(id)
		if err != nil {
			return err
		}
		if ro == nil {
			return fmt.Errorf("%w: progress roro %d", ErrNotFound, id)
		}
		if !actor.IsStaff() || ro.CreatorID == nil || *ro.CreatorID != actor.ID {
			return fmt.Errorf("%w: only the creator can update progress roro %d", ErrForbidden, id)
		}

		p.ApplyTo(ro)
		if err := applyProfit(ro); err != nil {
			return err
		}
		if err := tx.UpdateRoRo(ro); err != nil {
			return err
		}

		if !p.Details.Set {
			return nil
		}
		stats, err = reconcileDetails(tx, ro.ID, p.DetailRows())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("progress roro updated",
		zap.Int64("roro_id", id),
		zap.Int("details_updated", stats.updated),
		zap.Int("details_inserted", stats.inserted),
		zap.Int("details_deleted", stats.deleted),
	)
	return s.Get(ctx, id)
}

type reconcileStats struct {
	updated, inserted, deleted int
}

// reconcileDetails makes the stored details of roroID match rows: rows with an
// id update that detail, rows without one are inserted, and stored details
// not named by any row are deleted.
func reconcileDetails(tx repository.RoRoTx, roroID int64, rows []models.ProgressRoRoDetailPayload) (reconcileStats, error) {
	var st reconcileStats

	stored, err := tx.ListDetails(roroID)
	if err != nil {
		return st, err
	}
	byID := make(map[int64]*models.ProgressRoRoDetail, len(stored))
	for i := range stored {
		byID[stored[i].ID] = &stored[i]
	}

	keep := make(map[int64]bool, len(rows))
	for i := range rows {
		in := &rows[i]
		if in.HasID() {
			d, ok := byID[*in.ID]
			if !ok {
				return st, fmt.Errorf("%w: detail %d does not belong to progress roro %d", ErrNotFound, *in.ID, roroID)
			}
			in.ApplyTo(d)
			if err := tx.UpdateDetail(d); err != nil {
				return st, err
			}
			keep[d.ID] = true
			st.updated++
			continue
		}

		d := models.ProgressRoRoDetail{RoRoID: roroID}
		in.ApplyTo(&d)
		if err := tx.InsertDetail(&d); err != nil {
			return st, err
		}
		st.inserted++
	}

	var stale []int64
	for _, d := range stored {
		if !keep[d.ID] {
			stale = append(stale, d.ID)
		}
	}
	if err := tx.DeleteDetails(roroID, stale); err != nil {
		return st, err
	}
	st.deleted = len(stale)
	return st, nil
}

// Delete removes a master line and its details. The creator or an admin may
// delete.
func (s *ProgressRoRoService) Delete(ctx context.Context, id int64, actor *models.AppUser) error {
	err := s.Repo.WithinTx(ctx, func(tx repository.RoRoTx) error {
		ro, err := tx.GetForUpdate(id)
		if err != nil {
			return err
		}
		if ro == nil {
			return fmt.Errorf("%w: progress roro %d", ErrNotFound, id)
		}
		isCreator := actor.IsStaff() && ro.CreatorID != nil && *ro.CreatorID == actor.ID
		if !isCreator && !actor.IsAdmin() {
			return fmt.Errorf("%w: only the creator or an admin can delete progress roro %d", ErrForbidden, id)
		}
		return tx.DeleteRoRo(id)
	})
	if err != nil {
		return err
	}
	s.Log.Info("progress roro deleted", zap.Int64("roro_id", id))
	return nil
}
