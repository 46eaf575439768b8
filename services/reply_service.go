package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/repository"
)

type ReplyService struct {
	Repo  repository.ReplyRepository
	Posts repository.PostRepository
	Log   *zap.Logger
}

func (s *ReplyService) List(ctx context.Context, postID int64, page, size int) (models.Page[*models.Reply], error) {
	page, size = models.NormalizePaging(page, size)
	list, total, err := s.Repo.ListReplies(ctx, postID, page, size)
	if err != nil {
		return models.Page[*models.Reply]{}, err
	}
	return models.NewPage(list, total, page, size), nil
}

func (s *ReplyService) Create(ctx context.Context, postID int64, description *string, actor *models.AppUser) (*models.Reply, error) {
	post, err := s.Posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}

	rp := &models.Reply{Description: description, PostID: postID, CreatorID: &actor.ID}
	if err := s.Repo.CreateReply(ctx, rp); err != nil {
		return nil, err
	}
	s.Log.Info("reply created", zap.Int64("reply_id", rp.ID), zap.Int64("post_id", postID))
	return s.get(ctx, rp.ID)
}

func (s *ReplyService) get(ctx context.Context, id int64) (*models.Reply, error) {
	rp, err := s.Repo.GetReply(ctx, id)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, fmt.Errorf("%w: reply %d", ErrNotFound, id)
	}
	return rp, nil
}

func (s *ReplyService) owned(ctx context.Context, id int64, actor *models.AppUser) (*models.Reply, error) {
	rp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rp.CreatorID == nil || *rp.CreatorID != actor.ID {
		return nil, fmt.Errorf("%w: only the author can change reply %d", ErrForbidden, id)
	}
	return rp, nil
}

func (s *ReplyService) Update(ctx context.Context, id int64, description *string, actor *models.AppUser) (*models.Reply, error) {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateReply(ctx, id, description); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *ReplyService) Delete(ctx context.Context, id int64, actor *models.AppUser) error {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return err
	}
	return s.Repo.DeleteReply(ctx, id)
}
