package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mukbang-backend/internal/middleware"
	"mukbang-backend/internal/models"
	"mukbang-backend/internal/prompts"
)

type videoPromptHistoryRepo interface {
	Create(ctx context.Context, h *models.PromptHistory) error
}

type videoPromptUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
}

// VideoPromptHandler serves the pure template-based video prompt builder.
// It works anonymously; logged-in callers additionally get a history row.
type VideoPromptHandler struct {
	users   videoPromptUserRepo
	history videoPromptHistoryRepo
}

func NewVideoPromptHandler(users videoPromptUserRepo, history videoPromptHistoryRepo) *VideoPromptHandler {
	return &VideoPromptHandler{users: users, history: history}
}

func (h *VideoPromptHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.GenerateVideoPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}

	frame := strings.TrimSpace(req.FrameDescription)
	action := strings.TrimSpace(req.ActionDescription)
	if frame == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("请填写画面描述"))
		return
	}
	if action == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("请填写动作描述"))
		return
	}

	planType := models.PlanFree
	userID := middleware.GetUserID(ctx)
	if userID != uuid.Nil {
		if profile, err := h.users.GetByID(ctx, userID); err == nil {
			planType = profile.PlanType
		}
	}

	isPremium := models.IsPremiumPlan(planType)
	includeSound := isPremium && req.SoundOption == "blogger_style"

	videoPrompt := prompts.BuildVideoPrompt(frame, action, prompts.VideoPromptOptions{
		IsPremium:    isPremium,
		IncludeSound: includeSound,
	})
	soundSuggestion := prompts.SoundSuggestionFor(req.SoundOption)

	if userID != uuid.Nil {
		snapshot, _ := json.Marshal(map[string]interface{}{
			"frameDescription":  req.FrameDescription,
			"actionDescription": req.ActionDescription,
			"soundOption":       req.SoundOption,
			"planType":          planType,
		})
		entry := &models.PromptHistory{
			UserID:          userID,
			PromptType:      "video",
			GenerationMode:  models.ModeBasic,
			VideoPrompt:     videoPrompt,
			SoundSuggestion: soundSuggestion,
			InputSnapshot:   snapshot,
		}
		if isPremium {
			entry.GenerationMode = models.ModeProfessional
		}
		if err := h.history.Create(ctx, entry); err != nil {
			log.Printf("video prompt history insert failed for user %s: %v", userID, err)
		}
	}

	tips := "提示：升级到专业版解锁完整专业模板，获得更好的视频生成效果"
	if isPremium {
		tips = "提示：将此提示词用于 Veo、Runway、Pika 等AI视频生成工具"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"videoPrompt":     videoPrompt,
		"soundSuggestion": soundSuggestion,
		"tips":            tips,
		"planType":        planType,
	})
}
