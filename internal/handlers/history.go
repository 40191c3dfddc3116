package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mukbang-backend/internal/middleware"
	"mukbang-backend/internal/models"
)

type historyRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.PromptHistory, int, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PromptHistory, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type HistoryHandler struct {
	history historyRepo
}

func NewHistoryHandler(history historyRepo) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 20
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	entries, total, err := h.history.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取历史记录失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid history ID"))
		return
	}

	entry, err := h.history.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("历史记录不存在"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("获取历史记录失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": entry,
	})
}

func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid history ID"))
		return
	}

	deleted, err := h.history.Delete(r.Context(), userID, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("删除历史记录失败"))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResp("历史记录不存在"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
