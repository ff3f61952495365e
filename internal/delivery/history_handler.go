package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/docreader/internal/domain"
	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/Vovarama1992/docreader/internal/view"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

type HistoryHandler struct {
	history  ports.HistoryService
	renderer *view.HistoryRenderer
	pageSize int
	log      *logger.ZapLogger
}

func NewHistoryHandler(history ports.HistoryService, renderer *view.HistoryRenderer, pageSize int, log *logger.ZapLogger) *HistoryHandler {
	return &HistoryHandler{
		history:  history,
		renderer: renderer,
		pageSize: pageSize,
		log:      log,
	}
}

// queryInt returns 0 for missing or malformed values; the service clamps.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

func (h *HistoryHandler) limit(r *http.Request) int {
	if l := queryInt(r, "limit"); l > 0 {
		return l
	}
	return h.pageSize
}

// GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	page, err := h.history.ListPage(r.Context(), session.UserID, queryInt(r, "page"), h.limit(r))
	if err != nil {
		failErr(w, h.log, "list history", err)
		return
	}
	ok(w, page)
}

// GET /api/history/table
func (h *HistoryHandler) Table(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	page, err := h.history.ListPage(r.Context(), session.UserID, queryInt(r, "page"), h.limit(r))
	if err != nil {
		failErr(w, h.log, "history table", err)
		return
	}

	html, err := h.renderer.RenderTable(page.Items)
	if err != nil {
		failErr(w, h.log, "render history table", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Total-Count", strconv.Itoa(page.Total))
	_, _ = w.Write([]byte(html))
}

// GET /api/history/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		failErr(w, h.log, "get history", err)
		return
	}

	rec, err := h.history.Get(r.Context(), SessionFrom(r.Context()).UserID, id)
	if err != nil {
		failErr(w, h.log, "get history", err)
		return
	}
	ok(w, rec)
}

// POST /api/history/{id}/position
func (h *HistoryHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		failErr(w, h.log, "update position", err)
		return
	}

	var req struct {
		Position *float64 `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, CodeValidation, "invalid json: "+err.Error())
		return
	}
	if req.Position == nil {
		fail(w, http.StatusBadRequest, CodeValidation, "position is required")
		return
	}

	// bounds are checked on the float, converting out of range values to int
	// is undefined
	pos := *req.Position
	if pos > domain.MaxPosition {
		fail(w, http.StatusBadRequest, CodeValidation, "position out of range")
		return
	}
	if pos < 0 {
		pos = 0
	}

	session := SessionFrom(r.Context())
	// players report fractional seconds; whole seconds are stored
	upd, err := h.history.UpdatePosition(r.Context(), session.UserID, id, int(pos))
	if err != nil {
		failErr(w, h.log, "update position", err)
		return
	}

	if upd.Changed {
		h.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "position updated",
			Fields: map[string]any{
				"userID":   session.UserID,
				"id":       id,
				"position": upd.Position,
				"previous": upd.PreviousPosition,
			},
		})
	}
	ok(w, upd)
}

// DELETE /api/history/{id}
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		failErr(w, h.log, "delete history", err)
		return
	}

	if err := h.history.Delete(r.Context(), SessionFrom(r.Context()).UserID, id); err != nil {
		failErr(w, h.log, "delete history", err)
		return
	}
	ok(w, map[string]int64{"id": id})
}
