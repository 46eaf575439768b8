package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/repository"
	"shippingerp/storage"
)

type PostService struct {
	Repo       repository.PostRepository
	Categories repository.CategoryRepository
	Files      storage.FileStore
	Log        *zap.Logger
}

// Upload is one attachment taken from a multipart request.
type Upload struct {
	Name string
	Body io.Reader
}

// PostInput carries the form fields of a create or edit. Nil means not sent.
type PostInput struct {
	Title            *string
	Description      *string
	TypeCategoryID   *int64
	RegionCategoryID *int64
}

func (s *PostService) List(ctx context.Context, f models.PostFilter) (models.Page[*models.Post], error) {
	f.Page, f.Size = models.NormalizePaging(f.Page, f.Size)
	list, total, err := s.Repo.ListPosts(ctx, f)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return models.NewPage(list, total, f.Page, f.Size), nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	return p, nil
}

func (s *PostService) checkCategory(ctx context.Context, kind models.CategoryKind, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := s.Categories.GetCategory(ctx, kind, *id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: %s category %d does not exist", ErrValidation, kind, *id)
	}
	return nil
}

func (s *PostService) validate(ctx context.Context, in PostInput, create bool) error {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	switch {
	case create && (in.Title == nil || *in.Title == ""):
		return fmt.Errorf("%w: title is required", ErrValidation)
	case create && (in.TypeCategoryID == nil || in.RegionCategoryID == nil):
		return fmt.Errorf("%w: type_category and region_category are required", ErrValidation)
	case in.Title != nil && len(*in.Title) > 50:
		return fmt.Errorf("%w: title must be at most 50 characters", ErrValidation)
	}
	if err := s.checkCategory(ctx, models.CategoryType, in.TypeCategoryID); err != nil {
		return err
	}
	return s.checkCategory(ctx, models.CategoryRegion, in.RegionCategoryID)
}

// saveAll stores every upload. On failure the files already written are removed.
func (s *PostService) saveAll(ctx context.Context, files []Upload) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, f := range files {
		p, err := s.Files.Save(ctx, f.Name, f.Body)
		if err != nil {
			s.removeAll(ctx, saved)
			return nil, fmt.Errorf("save %s: %w", f.Name, err)
		}
		saved = append(saved, p)
	}
	return saved, nil
}

func (s *PostService) removeAll(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.Files.Delete(ctx, p); err != nil {
			s.Log.Warn("failed to remove attachment", zap.String("path", p), zap.Error(err))
		}
	}
}

func (s *PostService) Create(ctx context.Context, in PostInput, files []Upload, actor *models.AppUser) (*models.Post, error) {
	if err := s.validate(ctx, in, true); err != nil {
		return nil, err
	}

	saved, err := s.saveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	p := &models.Post{
		Title:            strings.TrimSpace(*in.Title),
		Description:      in.Description,
		TypeCategoryID:   in.TypeCategoryID,
		RegionCategoryID: in.RegionCategoryID,
		CreatorID:        &actor.ID,
	}
	if len(saved) > 0 {
		p.FilePaths = saved
	}
	if err := s.Repo.CreatePost(ctx, p); err != nil {
		s.removeAll(ctx, saved)
		return nil, err
	}

	s.Log.Info("post created", zap.Int64("post_id", p.ID), zap.Int("files", len(saved)))
	return s.Get(ctx, p.ID)
}

// Update edits a post. Stored paths listed in keep survive, new uploads are
// appended, everything else is removed once the row has been updated.
func (s *PostService) Update(ctx context.Context, id int64, in PostInput, keep []string, files []Upload, actor *models.AppUser) (*models.Post, error) {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	if p.CreatorID == nil || *p.CreatorID != actor.ID {
		return nil, fmt.Errorf("%w: only the author can edit post %d", ErrForbidden, id)
	}
	if err := s.validate(ctx, in, false); err != nil {
		return nil, err
	}

	keepSet := make(map[string]bool, len(keep))
	for _, k := range keep {
		keepSet[k] = true
	}
	var final, dropped []string
	for _, existing := range p.FilePaths {
		if keepSet[existing] {
			final = append(final, existing)
		} else {
			dropped = append(dropped, existing)
		}
	}

	saved, err := s.saveAll(ctx, files)
	if err != nil {
		return nil, err
	}
	final = append(final, saved...)

	ch := models.PostChanges{
		Title:            in.Title,
		Description:      in.Description,
		TypeCategoryID:   in.TypeCategoryID,
		RegionCategoryID: in.RegionCategoryID,
		FilePaths:        final,
	}
	if ch.Title != nil {
		t := strings.TrimSpace(*ch.Title)
		ch.Title = &t
	}
	if err := s.Repo.UpdatePost(ctx, id, ch); err != nil {
		s.removeAll(ctx, saved)
		return nil, err
	}
	s.removeAll(ctx, dropped)

	s.Log.Info("post updated", zap.Int64("post_id", id), zap.Int("added", len(saved)), zap.Int("removed", len(dropped)))
	return s.Get(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id int64, actor *models.AppUser) error {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	if p.CreatorID == nil || *p.CreatorID != actor.ID {
		return fmt.Errorf("%w: only the author can delete post %d", ErrForbidden, id)
	}
	if err := s.Repo.DeletePost(ctx, id); err != nil {
		return err
	}
	s.removeAll(ctx, p.FilePaths)
	s.Log.Info("post deleted", zap.Int64("post_id", id))
	return nil
}

// OpenFile returns the attachment at index together with its original name.
func (s *PostService) OpenFile(ctx context.Context, id int64, index int) (string, io.ReadCloser, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if index < 0 || index >= len(p.FilePaths) || p.FilePaths[index] == "" {
		return "", nil, fmt.Errorf("%w: post %d has no file at index %d", ErrNotFound, id, index)
	}

	path := p.FilePaths[index]
	rc, err := s.Files.Open(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", nil, err
	}
	return storage.OriginalName(path), rc, nil
}
