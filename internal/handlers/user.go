package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mukbang-backend/internal/middleware"
	"mukbang-backend/internal/models"
	"mukbang-backend/internal/services"
)

type userProfileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	Update(ctx context.Context, u *models.UserProfile) error
}

type UserHandler struct {
	users userProfileRepo
	usage *services.UsageService
}

func NewUserHandler(users userProfileRepo, usage *services.UsageService) *UserHandler {
	return &UserHandler{users: users, usage: usage}
}

// GetMe returns the caller's profile together with today's usage.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("无法获取用户信息"))
		return
	}

	usage, err := h.usage.GetUsageInfo(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("无法获取用量信息"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    profile,
		"usage":   usage,
	})
}

// GetUsage returns today's quota snapshot without consuming anything.
func (h *UserHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	usage, err := h.usage.GetUsageInfo(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("无法获取用量信息"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"usage":   usage,
	})
}

// UpdateMe patches nickname, avatar and generation preferences.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Nickname            *string    `json:"nickname"`
		AvatarURL           *string    `json:"avatar_url"`
		DefaultStyleID      *uuid.UUID `json:"default_style_id"`
		PreferredTemplateID *uuid.UUID `json:"preferred_template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}

	profile, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("无法获取用户信息"))
		return
	}

	if req.Nickname != nil {
		profile.Nickname = req.Nickname
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.DefaultStyleID != nil {
		profile.DefaultStyleID = req.DefaultStyleID
	}
	if req.PreferredTemplateID != nil {
		profile.PreferredTemplateID = req.PreferredTemplateID
	}

	if err := h.users.Update(r.Context(), profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("更新用户信息失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    profile,
	})
}
