package services

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/repository"
	"shippingerp/storage"
)

var nopLog = zap.NewNop()

func staff(id int64) *models.AppUser {
	return &models.AppUser{ID: id, Username: "staff", Email: "staff@example.com", Role: models.RoleStaff}
}

func admin(id int64) *models.AppUser {
	return &models.AppUser{ID: id, Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin}
}

func regular(id int64) *models.AppUser {
	return &models.AppUser{ID: id, Username: "user", Email: "user@example.com", Role: models.RoleUser}
}

// fakeRoRoRepo keeps RoRo rows in memory. WithinTx restores the previous
// state when fn fails, like a rolled back transaction.
type fakeRoRoRepo struct {
	mu         sync.Mutex
	progress   map[int64]bool
	masters    map[int64]models.ProgressRoRo
	details    map[int64]models.ProgressRoRoDetail
	nextMaster int64
	nextDetail int64
	writes     int
}

func newFakeRoRoRepo(progressIDs ...int64) *fakeRoRoRepo {
	r := &fakeRoRoRepo{
		progress: map[int64]bool{},
		masters:  map[int64]models.ProgressRoRo{},
		details:  map[int64]models.ProgressRoRoDetail{},
	}
	for _, id := range progressIDs {
		r.progress[id] = true
	}
	return r
}

// seed stores a master owned by creatorID with details carrying detailIDs.
func (r *fakeRoRoRepo) seed(id, progressID, creatorID int64, costs models.RoRoCosts, detailIDs ...int64) {
	r.masters[id] = models.ProgressRoRo{ID: id, ProgressID: progressID, CreatorID: &creatorID, RoRoCosts: costs}
	if id > r.nextMaster {
		r.nextMaster = id
	}
	for _, did := range detailIDs {
		model := "model-" + strings.Repeat("x", int(did))
		r.details[did] = models.ProgressRoRoDetail{ID: did, RoRoID: id, Model: &model}
		if did > r.nextDetail {
			r.nextDetail = did
		}
	}
}

func (r *fakeRoRoRepo) detailIDs(roroID int64) []int64 {
	var ids []int64
	for id, d := range r.details {
		if d.RoRoID == roroID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *fakeRoRoRepo) graph(m models.ProgressRoRo) *models.ProgressRoRo {
	ro := m
	ro.Details = []models.ProgressRoRoDetail{}
	for _, id := range r.detailIDs(m.ID) {
		ro.Details = append(ro.Details, r.details[id])
	}
	if ro.CreatorID != nil {
		ro.Creator = &models.UserOut{ID: *ro.CreatorID}
	}
	return &ro
}

func (r *fakeRoRoRepo) ListByProgress(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id, m := range r.masters {
		if m.ProgressID == progressID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var list []*models.ProgressRoRo
	for _, id := range ids {
		list = append(list, r.graph(r.masters[id]))
	}
	return list, nil
}

func (r *fakeRoRoRepo) GetRoRo(ctx context.Context, id int64) (*models.ProgressRoRo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.masters[id]
	if !ok {
		return nil, nil
	}
	return r.graph(m), nil
}

func (r *fakeRoRoRepo) WithinTx(ctx context.Context, fn func(tx repository.RoRoTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	masters := make(map[int64]models.ProgressRoRo, len(r.masters))
	for k, v := range r.masters {
		masters[k] = v
	}
	details := make(map[int64]models.ProgressRoRoDetail, len(r.details))
	for k, v := range r.details {
		details[k] = v
	}
	nextMaster, nextDetail, writes := r.nextMaster, r.nextDetail, r.writes

	if err := fn(fakeRoRoTx{r}); err != nil {
		r.masters, r.details = masters, details
		r.nextMaster, r.nextDetail, r.writes = nextMaster, nextDetail, writes
		return err
	}
	return nil
}

type fakeRoRoTx struct{ r *fakeRoRoRepo }

func (t fakeRoRoTx) ProgressExists(progressID int64) (bool, error) {
	return t.r.progress[progressID], nil
}

func (t fakeRoRoTx) GetForUpdate(id int64) (*models.ProgressRoRo, error) {
	m, ok := t.r.masters[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (t fakeRoRoTx) InsertRoRo(ro *models.ProgressRoRo) error {
	t.r.writes++
	t.r.nextMaster++
	ro.ID = t.r.nextMaster
	stored := *ro
	stored.Details, stored.Creator = nil, nil
	t.r.masters[ro.ID] = stored
	return nil
}

func (t fakeRoRoTx) UpdateRoRo(ro *models.ProgressRoRo) error {
	t.r.writes++
	stored := *ro
	stored.Details, stored.Creator = nil, nil
	t.r.masters[ro.ID] = stored
	return nil
}

func (t fakeRoRoTx) DeleteRoRo(id int64) error {
	t.r.writes++
	for _, did := range t.r.detailIDs(id) {
		delete(t.r.details, did)
	}
	delete(t.r.masters, id)
	return nil
}

func (t fakeRoRoTx) ListDetails(roroID int64) ([]models.ProgressRoRoDetail, error) {
	var out []models.ProgressRoRoDetail
	for _, id := range t.r.detailIDs(roroID) {
		out = append(out, t.r.details[id])
	}
	return out, nil
}

func (t fakeRoRoTx) InsertDetail(d *models.ProgressRoRoDetail) error {
	t.r.writes++
	t.r.nextDetail++
	d.ID = t.r.nextDetail
	t.r.details[d.ID] = *d
	return nil
}

func (t fakeRoRoTx) UpdateDetail(d *models.ProgressRoRoDetail) error {
	t.r.writes++
	t.r.details[d.ID] = *d
	return nil
}

func (t fakeRoRoTx) DeleteDetails(roroID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	t.r.writes++
	for _, id := range ids {
		if d, ok := t.r.details[id]; ok && d.RoRoID == roroID {
			delete(t.r.details, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	byID   map[int64]*models.AppUser
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*models.AppUser{}}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, u *models.AppUser) error {
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.AppUser, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeCategoryRepo struct {
	rows map[models.CategoryKind]map[int64]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: map[models.CategoryKind]map[int64]*models.Category{
		models.CategoryType:   {},
		models.CategoryRegion: {},
	}}
}

func (r *fakeCategoryRepo) ListCategories(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.rows[kind] {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCategoryRepo) GetCategory(ctx context.Context, kind models.CategoryKind, id int64) (*models.Category, error) {
	return r.rows[kind][id], nil
}

func (r *fakeCategoryRepo) CreateCategory(ctx context.Context, kind models.CategoryKind, c *models.Category) error {
	c.ID = int64(len(r.rows[kind]) + 1)
	r.rows[kind][c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(ctx context.Context, kind models.CategoryKind, id int64) error {
	delete(r.rows[kind], id)
	return nil
}

type fakePostRepo struct {
	posts     map[int64]*models.Post
	nextID    int64
	updateErr error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}}
}

func (r *fakePostRepo) CreatePost(ctx context.Context, p *models.Post) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.FilePaths = append([]string(nil), p.FilePaths...)
	return &cp, nil
}

func (r *fakePostRepo) ListPosts(ctx context.Context, f models.PostFilter) ([]*models.Post, int64, error) {
	var out []*models.Post
	for _, p := range r.posts {
		if f.CreatorID != 0 && (p.CreatorID == nil || *p.CreatorID != f.CreatorID) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) UpdatePost(ctx context.Context, id int64, ch models.PostChanges) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	p := r.posts[id]
	if ch.Title != nil {
		p.Title = *ch.Title
	}
	if ch.Description != nil {
		p.Description = ch.Description
	}
	p.FilePaths = ch.FilePaths
	return nil
}

func (r *fakePostRepo) DeletePost(ctx context.Context, id int64) error {
	delete(r.posts, id)
	return nil
}

// memStore is a FileStore backed by a map.
type memStore struct {
	files map[string]string
	n     int
}

func newMemStore() *memStore { return &memStore{files: map[string]string{}} }

func (s *memStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.n++
	p := "public/" + storage.UniqueName(name)
	s.files[p] = string(b)
	return p, nil
}

func (s *memStore) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	b, ok := s.files[p]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(b)), nil
}

func (s *memStore) Delete(ctx context.Context, p string) error {
	delete(s.files, p)
	return nil
}
