package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"shippingerp/models"
)

type ProgressHandler struct {
	Service ProgressService
	Log     *zap.Logger
}

// Get returns the progress of a post. A post without progress yields null data.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	p, err := h.Service.GetByPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "", p)
}

func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var body struct {
		Title *string `json:"title"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	p, err := h.Service.Create(r.Context(), postID, body.Title, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusCreated, "Progress created", p)
}

func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var body struct {
		Title models.Field[string] `json:"title"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	p, err := h.Service.Update(r.Context(), id, body.Title, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "Progress updated", p)
}

func (h *ProgressHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
