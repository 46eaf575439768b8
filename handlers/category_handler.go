package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"shippingerp/models"
	"shippingerp/services"
)

type CategoryHandler struct {
	Service CategoryService
	Log     *zap.Logger
}

func categoryKind(r *http.Request) (models.CategoryKind, error) {
	kind := models.CategoryKind(r.PathValue("kind"))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown category kind %q", services.ErrNotFound, kind)
	}
	return kind, nil
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := categoryKind(r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	list, err := h.Service.List(r.Context(), kind)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if list == nil {
		list = []*models.Category{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, err := categoryKind(r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var body struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	c, err := h.Service.Create(r.Context(), kind, body.Title, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusCreated, "Category created", c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := categoryKind(r)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if err := h.Service.Delete(r.Context(), kind, id, CurrentUser(r)); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
