package handlers

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/services"
)

const maxUploadMemory = 32 << 20

type PostHandler struct {
	Service PostService
	Log     *zap.Logger
}

func postFilter(r *http.Request) models.PostFilter {
	return models.PostFilter{
		TypeCategoryID:   queryID(r, "type_category"),
		RegionCategoryID: queryID(r, "region_category"),
		Search:           strings.TrimSpace(r.URL.Query().Get("search")),
		Page:             queryInt(r, "page"),
		Size:             queryInt(r, "size"),
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, postFilter(r))
}

// Mine lists the caller's own posts.
func (h *PostHandler) Mine(w http.ResponseWriter, r *http.Request) {
	f := postFilter(r)
	f.CreatorID = CurrentUser(r).ID
	h.list(w, r, f)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, f models.PostFilter) {
	page, err := h.Service.List(r.Context(), f)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "", page)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "", p)
}

// postForm is a parsed multipart post body. Close releases the opened parts.
type postForm struct {
	input services.PostInput
	keep  []string
	files []services.Upload
	open  []multipart.File
}

func (f *postForm) Close() {
	for _, o := range f.open {
		o.Close()
	}
}

func formString(form *multipart.Form, key string) *string {
	v, ok := form.Value[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}

func formID(form *multipart.Form, key string) (*int64, error) {
	s := formString(form, key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", services.ErrValidation, key, *s)
	}
	return &id, nil
}

func parsePostForm(r *http.Request, fileKeys ...string) (*postForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("%w: expected multipart form: %v", services.ErrValidation, err)
	}
	form := r.MultipartForm

	out := &postForm{
		input: services.PostInput{
			Title:       formString(form, "title"),
			Description: formString(form, "description"),
		},
		keep: form.Value["keep_file_paths"],
	}
	var err error
	if out.input.TypeCategoryID, err = formID(form, "type_category"); err != nil {
		return nil, err
	}
	if out.input.RegionCategoryID, err = formID(form, "region_category"); err != nil {
		return nil, err
	}

	for _, key := range fileKeys {
		for _, fh := range form.File[key] {
			if fh.Filename == "" {
				continue
			}
			f, err := fh.Open()
			if err != nil {
				out.Close()
				return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
			}
			out.open = append(out.open, f)
			out.files = append(out.files, services.Upload{Name: fh.Filename, Body: f})
		}
	}
	return out, nil
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parsePostForm(r, "files")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	defer form.Close()

	p, err := h.Service.Create(r.Context(), form.input, form.files, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusCreated, "Post created", p)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	form, err := parsePostForm(r, "new_file_paths", "files")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	defer form.Close()

	p, err := h.Service.Update(r.Context(), id, form.input, form.keep, form.files, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "Post updated", p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id, CurrentUser(r)); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download streams one attachment of a post.
func (h *PostHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, h.Log, fmt.Errorf("%w: invalid file index", services.ErrNotFound))
		return
	}

	name, body, err := h.Service.OpenFile(r.Context(), id, index)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	defer body.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if _, err := io.Copy(w, body); err != nil {
		h.Log.Warn("attachment download interrupted", zap.Int64("post_id", id), zap.Error(err))
	}
}
