package repository

import (
	"context"

	"shippingerp/models"
)

// ProgressRepository stores the one-per-post progress record. RoRo lines are
// loaded through ProgressRoRoRepository.
type ProgressRepository interface {
	GetProgress(ctx context.Context, id int64) (*models.Progress, error)
	GetProgressByPost(ctx context.Context, postID int64) (*models.Progress, error)
	CreateProgress(ctx context.Context, p *models.Progress) error
	UpdateProgress(ctx context.Context, id int64, title *string) error
	// DeleteProgress removes the progress and every RoRo line under it.
	DeleteProgress(ctx context.Context, id int64) error
}
