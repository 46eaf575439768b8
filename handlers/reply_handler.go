package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type ReplyHandler struct {
	Service ReplyService
	Log     *zap.Logger
}

type replyBody struct {
	Description *string `json:"description"`
}

func (h *ReplyHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	page, err := h.Service.List(r.Context(), postID, queryInt(r, "page"), queryInt(r, "size"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "", page)
}

func (h *ReplyHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var body replyBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	reply, err := h.Service.Create(r.Context(), postID, body.Description, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusCreated, "Reply created", reply)
}

func (h *ReplyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var body replyBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	reply, err := h.Service.Update(r.Context(), id, body.Description, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "Reply updated", reply)
}

func (h *ReplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
