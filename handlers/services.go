package handlers

import (
	"context"
	"io"

	"shippingerp/models"
	"shippingerp/services"
)

// The interfaces below are the slices of the service layer each handler uses.

type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.AppUser, error)
	Login(ctx context.Context, email, password string) (*services.Token, error)
	Authenticate(ctx context.Context, token string) (*models.AppUser, error)
}

type CategoryService interface {
	List(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error)
	Create(ctx context.Context, kind models.CategoryKind, title string, actor *models.AppUser) (*models.Category, error)
	Delete(ctx context.Context, kind models.CategoryKind, id int64, actor *models.AppUser) error
}

type PostService interface {
	List(ctx context.Context, f models.PostFilter) (models.Page[*models.Post], error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, in services.PostInput, files []services.Upload, actor *models.AppUser) (*models.Post, error)
	Update(ctx context.Context, id int64, in services.PostInput, keep []string, files []services.Upload, actor *models.AppUser) (*models.Post, error)
	Delete(ctx context.Context, id int64, actor *models.AppUser) error
	OpenFile(ctx context.Context, id int64, index int) (string, io.ReadCloser, error)
}

type ReplyService interface {
	List(ctx context.Context, postID int64, page, size int) (models.Page[*models.Reply], error)
	Create(ctx context.Context, postID int64, description *string, actor *models.AppUser) (*models.Reply, error)
	Update(ctx context.Context, id int64, description *string, actor *models.AppUser) (*models.Reply, error)
	Delete(ctx context.Context, id int64, actor *models.AppUser) error
}

type ProgressService interface {
	GetByPost(ctx context.Context, postID int64) (*models.Progress, error)
	Create(ctx context.Context, postID int64, title *string, actor *models.AppUser) (*models.Progress, error)
	Update(ctx context.Context, id int64, title models.Field[string], actor *models.AppUser) (*models.Progress, error)
	Delete(ctx context.Context, id int64, actor *models.AppUser) error
}

type RoRoService interface {
	List(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error)
	Get(ctx context.Context, id int64) (*models.ProgressRoRo, error)
	Create(ctx context.Context, progressID int64, p *models.ProgressRoRoPayload, actor *models.AppUser) (*models.ProgressRoRo, error)
	Update(ctx context.Context, id int64, p *models.ProgressRoRoPayload, actor *models.AppUser) (*models.ProgressRoRo, error)
	Delete(ctx context.Context, id int64, actor *models.AppUser) error
}

var (
	_ UserService     = (*services.UserService)(nil)
	_ CategoryService = (*services.CategoryService)(nil)
	_ PostService     = (*services.PostService)(nil)
	_ ReplyService    = (*services.ReplyService)(nil)
	_ ProgressService = (*services.ProgressService)(nil)
	_ RoRoService     = (*services.ProgressRoRoService)(nil)
)
