package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"shippingerp/models"
)

// PDFRenderer turns a RoRo line into a printable statement.
type PDFRenderer func(ctx context.Context, ro *models.ProgressRoRo) ([]byte, error)

type RoRoHandler struct {
	Service RoRoService
	PDF     PDFRenderer
	Log     *zap.Logger
}

func (h *RoRoHandler) List(w http.ResponseWriter, r *http.Request) {
	progressID, err := pathID(r, "progress_id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	list, err := h.Service.List(r.Context(), progressID)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if list == nil {
		list = []*models.ProgressRoRo{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *RoRoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	ro, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "", ro)
}

func (h *RoRoHandler) Create(w http.ResponseWriter, r *http.Request) {
	progressID, err := pathID(r, "progress_id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var payload models.ProgressRoRoPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	ro, err := h.Service.Create(r.Context(), progressID, &payload, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusCreated, "RoRo line created", ro)
}

func (h *RoRoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var payload models.ProgressRoRoPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	ro, err := h.Service.Update(r.Context(), id, &payload, CurrentUser(r))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeOK(w, http.StatusOK, "RoRo line updated", ro)
}

func (h *RoRoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Statement renders the RoRo line as a PDF download.
func (h *RoRoHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	ro, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	pdf, err := h.PDF(r.Context(), ro)
	if err != nil {
		writeError(w, r, h.Log, fmt.Errorf("render roro %d statement: %w", id, err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="roro_%d.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
	h.Log.Info("roro statement generated", zap.Int64("roro_id", id), zap.Int("bytes", len(pdf)))
}
