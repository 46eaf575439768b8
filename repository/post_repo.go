package repository

import (
	"context"

	"shippingerp/models"
)

type PostRepository interface {
	CreatePost(ctx context.Context, p *models.Post) error
	// GetPost loads the post with its creator and both categories.
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, f models.PostFilter) ([]*models.Post, int64, error)
	UpdatePost(ctx context.Context, id int64, ch models.PostChanges) error
	// DeletePost removes the post together with its replies and progress.
	DeletePost(ctx context.Context, id int64) error
}
