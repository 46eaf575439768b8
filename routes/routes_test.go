package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shippingerp/handlers"
	"shippingerp/models"
	"shippingerp/services"
)

type tokenAuth struct{}

func (tokenAuth) Authenticate(ctx context.Context, token string) (*models.AppUser, error) {
	switch token {
	case "staff":
		return &models.AppUser{ID: 2, Role: models.RoleStaff}, nil
	case "user":
		return &models.AppUser{ID: 1, Role: models.RoleUser}, nil
	}
	return nil, fmt.Errorf("%w: bad token", services.ErrUnauthorized)
}

// roroCalls records which RoRo operation a request reached.
type roroCalls struct {
	handlers.RoRoService
	last string
	id   int64
}

func (c *roroCalls) List(ctx context.Context, progressID int64) ([]*models.ProgressRoRo, error) {
	c.last, c.id = "list", progressID
	return nil, nil
}

func (c *roroCalls) Get(ctx context.Context, id int64) (*models.ProgressRoRo, error) {
	c.last, c.id = "get", id
	return &models.ProgressRoRo{ID: id}, nil
}

func (c *roroCalls) Update(ctx context.Context, id int64, p *models.ProgressRoRoPayload, actor *models.AppUser) (*models.ProgressRoRo, error) {
	c.last, c.id = "update", id
	return &models.ProgressRoRo{ID: id}, nil
}

func (c *roroCalls) Delete(ctx context.Context, id int64, actor *models.AppUser) error {
	c.last, c.id = "delete", id
	return nil
}

func newTestRouter(calls *roroCalls) http.Handler {
	log := zap.NewNop()
	return NewRouter(Handlers{
		Auth:     &handlers.Auth{Users: tokenAuth{}, Log: log},
		User:     &handlers.UserHandler{Log: log},
		Category: &handlers.CategoryHandler{Log: log},
		Post:     &handlers.PostHandler{Log: log},
		Reply:    &handlers.ReplyHandler{Log: log},
		Progress: &handlers.ProgressHandler{Log: log},
		RoRo: &handlers.RoRoHandler{
			Service: calls,
			PDF: func(ctx context.Context, ro *models.ProgressRoRo) ([]byte, error) {
				calls.last = "pdf"
				return []byte("%PDF"), nil
			},
			Log: log,
		},
	}, log)
}

func TestRouter_RoRoRoutes(t *testing.T) {
	calls := &roroCalls{}
	router := newTestRouter(calls)

	cases := []struct {
		method, path string
		want         string
		id           int64
		status       int
	}{
		{http.MethodGet, "/api/progress/roro/4", "list", 4, http.StatusOK},
		{http.MethodGet, "/api/progress/roro/item/7", "get", 7, http.StatusOK},
		{http.MethodGet, "/api/progress/roro/item/7/pdf", "pdf", 7, http.StatusOK},
		{http.MethodPatch, "/api/progress/roro/7", "update", 7, http.StatusOK},
		{http.MethodDelete, "/api/progress/roro/9", "delete", 9, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			calls.last, calls.id = "", 0
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.method == http.MethodPatch {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			}
			req.Header.Set("Authorization", "Bearer staff")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Equal(t, tc.want, calls.last)
			assert.Equal(t, tc.id, calls.id)
		})
	}
}

func TestRouter_AuthAndMethods(t *testing.T) {
	router := newTestRouter(&roroCalls{})

	req := httptest.NewRequest(http.MethodGet, "/api/progress/roro/item/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Authorization", "Bearer user")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/posts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(&roroCalls{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/progress/roro/7", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRouter_PanicsBecome500(t *testing.T) {
	router := newTestRouter(&roroCalls{})
	// The category handler has no service, so reaching it panics.
	req := httptest.NewRequest(http.MethodGet, "/api/category/type", nil)
	req.Header.Set("Authorization", "Bearer user")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
