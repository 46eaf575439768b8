package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shippingerp/models"
)

type fakeReplyRepo struct {
	replies map[int64]*models.Reply
	nextID  int64
}

func (r *fakeReplyRepo) ListReplies(ctx context.Context, postID int64, page, size int) ([]*models.Reply, int64, error) {
	var all []*models.Reply
	for id := int64(1); id <= r.nextID; id++ {
		if rp, ok := r.replies[id]; ok && rp.PostID == postID {
			all = append(all, rp)
		}
	}
	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeReplyRepo) GetReply(ctx context.Context, id int64) (*models.Reply, error) {
	rp, ok := r.replies[id]
	if !ok {
		return nil, nil
	}
	cp := *rp
	return &cp, nil
}

func (r *fakeReplyRepo) CreateReply(ctx context.Context, rp *models.Reply) error {
	r.nextID++
	rp.ID = r.nextID
	cp := *rp
	r.replies[rp.ID] = &cp
	return nil
}

func (r *fakeReplyRepo) UpdateReply(ctx context.Context, id int64, description *string) error {
	r.replies[id].Description = description
	return nil
}

func (r *fakeReplyRepo) DeleteReply(ctx context.Context, id int64) error {
	delete(r.replies, id)
	return nil
}

func newReplyService() (*ReplyService, *fakeReplyRepo) {
	posts := newFakePostRepo()
	posts.posts[1] = &models.Post{ID: 1, Title: "p"}
	repo := &fakeReplyRepo{replies: map[int64]*models.Reply{}}
	return &ReplyService{Repo: repo, Posts: posts, Log: nopLog}, repo
}

func TestReplyCreate(t *testing.T) {
	svc, _ := newReplyService()
	ctx := context.Background()

	rp, err := svc.Create(ctx, 1, str("first"), regular(5))
	require.NoError(t, err)
	assert.Equal(t, "first", *rp.Description)
	assert.Equal(t, int64(5), *rp.CreatorID)

	_, err = svc.Create(ctx, 99, str("lost"), regular(5))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplyList_Pages(t *testing.T) {
	svc, _ := newReplyService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, 1, str("r"), regular(5))
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.List(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Len(t, page.Items, 3)
}

func TestReplyUpdateDelete_OnlyAuthor(t *testing.T) {
	svc, repo := newReplyService()
	ctx := context.Background()
	rp, err := svc.Create(ctx, 1, str("mine"), regular(5))
	require.NoError(t, err)

	_, err = svc.Update(ctx, rp.ID, str("hijack"), admin(6))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "mine", *repo.replies[rp.ID].Description)

	updated, err := svc.Update(ctx, rp.ID, str("edited"), regular(5))
	require.NoError(t, err)
	assert.Equal(t, "edited", *updated.Description)

	assert.ErrorIs(t, svc.Delete(ctx, rp.ID, regular(6)), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, rp.ID, regular(5)))
	assert.ErrorIs(t, svc.Delete(ctx, rp.ID, regular(5)), ErrNotFound)
}
