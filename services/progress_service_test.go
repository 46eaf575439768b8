package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shippingerp/models"
	"shippingerp/repository"
)

type fakeProgressRepo struct {
	rows   map[int64]*models.Progress
	nextID int64
}

func (r *fakeProgressRepo) GetProgress(ctx context.Context, id int64) (*models.Progress, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProgressRepo) GetProgressByPost(ctx context.Context, postID int64) (*models.Progress, error) {
	for _, p := range r.rows {
		if p.PostID == postID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProgressRepo) CreateProgress(ctx context.Context, p *models.Progress) error {
	for _, existing := range r.rows {
		if existing.PostID == p.PostID {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *fakeProgressRepo) UpdateProgress(ctx context.Context, id int64, title *string) error {
	r.rows[id].Title = title
	return nil
}

func (r *fakeProgressRepo) DeleteProgress(ctx context.Context, id int64) error {
	delete(r.rows, id)
	return nil
}

func newProgressService() (*ProgressService, *fakeProgressRepo, *fakeRoRoRepo) {
	posts := newFakePostRepo()
	posts.posts[1] = &models.Post{ID: 1, Title: "post"}
	progress := &fakeProgressRepo{rows: map[int64]*models.Progress{}}
	roro := newFakeRoRoRepo()
	return &ProgressService{Repo: progress, RoRo: roro, Posts: posts, Log: nopLog}, progress, roro
}

func TestProgressCreate(t *testing.T) {
	svc, _, _ := newProgressService()
	ctx := context.Background()
	title := "Shipment to Jeddah"

	_, err := svc.Create(ctx, 1, &title, regular(1))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, 2, &title, staff(1))
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Create(ctx, 1, &title, staff(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.PostID)
	assert.NotNil(t, p.RoRo)

	_, err = svc.Create(ctx, 1, &title, staff(2))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProgressGetByPost_AttachesRoRo(t *testing.T) {
	svc, _, roro := newProgressService()
	ctx := context.Background()

	p, err := svc.GetByPost(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = svc.Create(ctx, 1, nil, staff(1))
	require.NoError(t, err)
	roro.progress[p.ID] = true
	roro.seed(5, p.ID, 1, models.RoRoCosts{}, 1, 2)

	got, err := svc.GetByPost(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.RoRo, 1)
	assert.Len(t, got.RoRo[0].Details, 2)
}

func TestProgressUpdateAndDelete(t *testing.T) {
	svc, repo, _ := newProgressService()
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, nil, staff(1))
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, models.Value("x"), staff(2))
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Update(ctx, p.ID, models.Value("renamed"), staff(1))
	require.NoError(t, err)
	assert.Equal(t, "renamed", *got.Title)

	got, err = svc.Update(ctx, p.ID, models.Field[string]{}, staff(1))
	require.NoError(t, err)
	assert.Equal(t, "renamed", *got.Title)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID, staff(1)), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, p.ID, admin(9)))
	assert.Empty(t, repo.rows)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID, admin(9)), ErrNotFound)
}
