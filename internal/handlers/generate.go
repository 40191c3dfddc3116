package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"mukbang-backend/internal/middleware"
	"mukbang-backend/internal/models"
	"mukbang-backend/internal/services"
)

type generateUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
}

type generateCatRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cat, error)
}

type generateCatalogRepo interface {
	GetStyleByID(ctx context.Context, id uuid.UUID) (*models.VisualStyle, error)
	GetFoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Food, error)
	GetEmotionByID(ctx context.Context, id uuid.UUID) (*models.Emotion, error)
	GetSceneByID(ctx context.Context, id uuid.UUID) (*models.Scene, error)
}

type GenerateHandler struct {
	users     generateUserRepo
	cats      generateCatRepo
	catalog   generateCatalogRepo
	usage     *services.UsageService
	generator *services.GeneratorService
}

func NewGenerateHandler(users generateUserRepo, cats generateCatRepo, catalog generateCatalogRepo, usage *services.UsageService, generator *services.GeneratorService) *GenerateHandler {
	return &GenerateHandler{
		users:     users,
		cats:      cats,
		catalog:   catalog,
		usage:     usage,
		generator: generator,
	}
}

// Generate handles POST /api/generate-prompt.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.users.GetByID(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("无法获取用户信息"))
		return
	}

	if _, err := h.usage.CheckAndConsume(ctx, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	var req models.GeneratePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}

	if req.StyleID == nil {
		writeJSON(w, http.StatusBadRequest, errorResp("缺少必填参数：styleId"))
		return
	}
	totalFoods := len(req.FoodIDs) + len(req.CustomFoods)
	if totalFoods == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("至少需要选择或输入1种食物"))
		return
	}
	if totalFoods > 5 {
		writeJSON(w, http.StatusBadRequest, errorResp("最多只能选择5种食物"))
		return
	}

	cat, errResp, status := h.resolveCat(ctx, req)
	if errResp != "" {
		writeJSON(w, status, errorResp(errResp))
		return
	}

	// Free users never get explicit template selection.
	if profile.PlanType == models.PlanFree {
		req.TemplateID = nil
	}

	refs, err := h.fetchRefs(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("视觉风格数据不存在"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("生成失败，请稍后重试"))
		return
	}
	refs.Cat = cat

	outcome, err := h.generator.Generate(ctx, profile, req, refs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("生成失败，请稍后重试"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"mode":         outcome.Mode,
		"templateName": outcome.TemplateName,
		"data":         outcome.Data,
	})
}

// resolveCat picks the preset cat, a structured custom cat, or a free-text
// described cat, in that priority order.
func (h *GenerateHandler) resolveCat(ctx context.Context, req models.GeneratePromptRequest) (*models.Cat, string, int) {
	if req.CatID != nil {
		cat, err := h.cats.GetByID(ctx, *req.CatID)
		if err != nil {
			return nil, "猫咪数据不存在", http.StatusNotFound
		}
		return cat, "", 0
	}
	if req.CustomCat != nil && req.CustomCat.Valid() {
		return models.FormatCustomCat(*req.CustomCat), "", 0
	}
	if desc := strings.TrimSpace(req.CustomCatDescription); desc != "" {
		return models.DescribedCat(desc), "", 0
	}
	return nil, "请选择猫咪或输入自定义描述", http.StatusBadRequest
}

// fetchRefs loads the style, foods, emotion and scene rows concurrently.
func (h *GenerateHandler) fetchRefs(ctx context.Context, req models.GeneratePromptRequest) (services.GenerateRefs, error) {
	var refs services.GenerateRefs

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		style, err := h.catalog.GetStyleByID(gctx, *req.StyleID)
		if err != nil {
			return err
		}
		refs.Style = style
		return nil
	})
	g.Go(func() error {
		if len(req.FoodIDs) == 0 {
			return nil
		}
		foods, err := h.catalog.GetFoodsByIDs(gctx, req.FoodIDs)
		if err != nil {
			return err
		}
		refs.Foods = foods
		return nil
	})
	g.Go(func() error {
		if req.EmotionID == nil {
			return nil
		}
		emotion, err := h.catalog.GetEmotionByID(gctx, *req.EmotionID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		refs.Emotion = emotion
		return nil
	})
	g.Go(func() error {
		if req.SceneID == nil {
			return nil
		}
		scene, err := h.catalog.GetSceneByID(gctx, *req.SceneID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		refs.Scene = scene
		return nil
	})

	if err := g.Wait(); err != nil {
		return services.GenerateRefs{}, err
	}
	return refs, nil
}
