package repository

import (
	"context"

	"shippingerp/models"
)

type ReplyRepository interface {
	ListReplies(ctx context.Context, postID int64, page, size int) ([]*models.Reply, int64, error)
	GetReply(ctx context.Context, id int64) (*models.Reply, error)
	CreateReply(ctx context.Context, r *models.Reply) error
	UpdateReply(ctx context.Context, id int64, description *string) error
	DeleteReply(ctx context.Context, id int64) error
}
