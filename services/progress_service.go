package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/repository"
)

type ProgressService struct {
	Repo  repository.ProgressRepository
	RoRo  repository.ProgressRoRoRepository
	Posts repository.PostRepository
	Log   *zap.Logger
}

// GetByPost returns the post's progress with its RoRo lines, or nil when the
// post has none yet.
func (s *ProgressService) GetByPost(ctx context.Context, postID int64) (*models.Progress, error) {
	p, err := s.Repo.GetProgressByPost(ctx, postID)
	if err != nil || p == nil {
		return nil, err
	}
	return p, s.attachRoRo(ctx, p)
}

func (s *ProgressService) attachRoRo(ctx context.Context, p *models.Progress) error {
	lines, err := s.RoRo.ListByProgress(ctx, p.ID)
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []*models.ProgressRoRo{}
	}
	p.RoRo = lines
	return nil
}

func (s *ProgressService) Create(ctx context.Context, postID int64, title *string, actor *models.AppUser) (*models.Progress, error) {
	if !actor.IsStaff() {
		return nil, fmt.Errorf("%w: staff only", ErrForbidden)
	}
	post, err := s.Posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	existing, err := s.Repo.GetProgressByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: post %d already has progress %d", ErrConflict, postID, existing.ID)
	}

	p := &models.Progress{Title: title, PostID: postID, CreatorID: &actor.ID}
	if err := s.Repo.CreateProgress(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: post %d already has progress", ErrConflict, postID)
		}
		return nil, err
	}
	s.Log.Info("progress created", zap.Int64("progress_id", p.ID), zap.Int64("post_id", postID))
	return s.GetByPost(ctx, postID)
}

func (s *ProgressService) get(ctx context.Context, id int64) (*models.Progress, error) {
	p, err := s.Repo.GetProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: progress %d", ErrNotFound, id)
	}
	return p, nil
}

func (s *ProgressService) Update(ctx context.Context, id int64, title models.Field[string], actor *models.AppUser) (*models.Progress, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() || p.CreatorID == nil || *p.CreatorID != actor.ID {
		return nil, fmt.Errorf("%w: only the creator can edit progress %d", ErrForbidden, id)
	}

	if title.Set {
		title.Apply(&p.Title)
		if err := s.Repo.UpdateProgress(ctx, id, p.Title); err != nil {
			return nil, err
		}
	}
	p, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, s.attachRoRo(ctx, p)
}

// Delete removes the progress and all of its RoRo lines. Admin only.
func (s *ProgressService) Delete(ctx context.Context, id int64, actor *models.AppUser) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin only", ErrForbidden)
	}
	if err := s.Repo.DeleteProgress(ctx, id); err != nil {
		return err
	}
	s.Log.Info("progress deleted", zap.Int64("progress_id", id))
	return nil
}
