package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mukbang-backend/internal/middleware"
	"mukbang-backend/internal/models"
)

type catRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cat, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Cat, error)
	Create(ctx context.Context, c *models.Cat) error
	Update(ctx context.Context, c *models.Cat) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type CatHandler struct {
	cats catRepo
}

func NewCatHandler(cats catRepo) *CatHandler {
	return &CatHandler{cats: cats}
}

// List returns the presets plus the caller's own cats.
func (h *CatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	cats, err := h.cats.ListForUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取猫咪列表失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cats":    cats,
	})
}

func (h *CatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid cat ID"))
		return
	}

	cat, err := h.cats.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("猫咪数据不存在"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("获取猫咪失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cat":     cat,
	})
}

func (h *CatHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var cat models.Cat
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	if cat.Name == "" || cat.Breed == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("请填写猫咪名称和品种"))
		return
	}

	cat.UserID = &userID
	cat.IsPreset = false

	if err := h.cats.Create(r.Context(), &cat); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("创建猫咪失败"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"cat":     cat,
	})
}

func (h *CatHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid cat ID"))
		return
	}

	existing, err := h.cats.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("猫咪数据不存在"))
		return
	}
	if existing.IsPreset || existing.UserID == nil || *existing.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("只能修改自己的猫咪"))
		return
	}

	var cat models.Cat
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	cat.ID = existing.ID
	cat.UserID = existing.UserID
	cat.IsPreset = false

	if err := h.cats.Update(r.Context(), &cat); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("更新猫咪失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cat":     cat,
	})
}

func (h *CatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid cat ID"))
		return
	}

	deleted, err := h.cats.Delete(r.Context(), userID, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("删除猫咪失败"))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResp("猫咪数据不存在"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
