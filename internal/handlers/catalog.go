package handlers

import (
	"context"
	"net/http"

	"mukbang-backend/internal/models"
)

type catalogListRepo interface {
	ListStyles(ctx context.Context, activeOnly bool) ([]*models.VisualStyle, error)
	ListFoods(ctx context.Context, activeOnly bool) ([]*models.Food, error)
	ListEmotions(ctx context.Context, activeOnly bool) ([]*models.Emotion, error)
	ListScenes(ctx context.Context, activeOnly bool) ([]*models.Scene, error)
}

// CatalogHandler serves the active reference data the generation UI needs.
type CatalogHandler struct {
	catalog catalogListRepo
}

func NewCatalogHandler(catalog catalogListRepo) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListStyles(w http.ResponseWriter, r *http.Request) {
	styles, err := h.catalog.ListStyles(r.Context(), true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取风格列表失败"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "styles": styles})
}

func (h *CatalogHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListFoods(r.Context(), true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取食物列表失败"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "foods": foods})
}

func (h *CatalogHandler) ListEmotions(w http.ResponseWriter, r *http.Request) {
	emotions, err := h.catalog.ListEmotions(r.Context(), true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取表情列表失败"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "emotions": emotions})
}

func (h *CatalogHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.catalog.ListScenes(r.Context(), true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取场景列表失败"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "scenes": scenes})
}
