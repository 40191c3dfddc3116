package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mukbang-backend/internal/models"
	"mukbang-backend/internal/repository"
)

type adminHistoryRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.PromptHistory, int, error)
}

// AdminHandler is the management surface over catalog entities, prompt
// templates and user accounts. Every route behind it runs after the admin
// guard middleware.
type AdminHandler struct {
	catalog   *repository.CatalogRepo
	templates *repository.TemplateRepo
	users     *repository.UserRepo
	history   adminHistoryRepo
}

func NewAdminHandler(catalog *repository.CatalogRepo, templates *repository.TemplateRepo, users *repository.UserRepo, history adminHistoryRepo) *AdminHandler {
	return &AdminHandler{catalog: catalog, templates: templates, users: users, history: history}
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}

func adminWriteResult(w http.ResponseWriter, err error, key string, value interface{}) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("记录不存在"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp(err.Error()))
		return
	}
	body := map[string]interface{}{"success": true}
	if key != "" {
		body[key] = value
	}
	writeJSON(w, http.StatusOK, body)
}

// Styles

func (h *AdminHandler) ListStyles(w http.ResponseWriter, r *http.Request) {
	styles, err := h.catalog.ListStyles(r.Context(), false)
	adminWriteResult(w, err, "styles", styles)
}

func (h *AdminHandler) CreateStyle(w http.ResponseWriter, r *http.Request) {
	var s models.VisualStyle
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	adminWriteResult(w, h.catalog.CreateStyle(r.Context(), &s), "style", &s)
}

func (h *AdminHandler) UpdateStyle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var s models.VisualStyle
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	s.ID = id
	adminWriteResult(w, h.catalog.UpdateStyle(r.Context(), &s), "style", &s)
}

func (h *AdminHandler) DeleteStyle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	adminWriteResult(w, h.catalog.DeleteStyle(r.Context(), id), "", nil)
}

// Foods

func (h *AdminHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListFoods(r.Context(), false)
	adminWriteResult(w, err, "foods", foods)
}

func (h *AdminHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var f models.Food
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	adminWriteResult(w, h.catalog.CreateFood(r.Context(), &f), "food", &f)
}

func (h *AdminHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var f models.Food
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	f.ID = id
	adminWriteResult(w, h.catalog.UpdateFood(r.Context(), &f), "food", &f)
}

func (h *AdminHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	adminWriteResult(w, h.catalog.DeleteFood(r.Context(), id), "", nil)
}

// Emotions

func (h *AdminHandler) ListEmotions(w http.ResponseWriter, r *http.Request) {
	emotions, err := h.catalog.ListEmotions(r.Context(), false)
	adminWriteResult(w, err, "emotions", emotions)
}

func (h *AdminHandler) CreateEmotion(w http.ResponseWriter, r *http.Request) {
	var e models.Emotion
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	adminWriteResult(w, h.catalog.CreateEmotion(r.Context(), &e), "emotion", &e)
}

func (h *AdminHandler) UpdateEmotion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var e models.Emotion
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	e.ID = id
	adminWriteResult(w, h.catalog.UpdateEmotion(r.Context(), &e), "emotion", &e)
}

func (h *AdminHandler) DeleteEmotion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	adminWriteResult(w, h.catalog.DeleteEmotion(r.Context(), id), "", nil)
}

// Scenes

func (h *AdminHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.catalog.ListScenes(r.Context(), false)
	adminWriteResult(w, err, "scenes", scenes)
}

func (h *AdminHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	var s models.Scene
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	adminWriteResult(w, h.catalog.CreateScene(r.Context(), &s), "scene", &s)
}

func (h *AdminHandler) UpdateScene(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var s models.Scene
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	s.ID = id
	adminWriteResult(w, h.catalog.UpdateScene(r.Context(), &s), "scene", &s)
}

func (h *AdminHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	adminWriteResult(w, h.catalog.DeleteScene(r.Context(), id), "", nil)
}

// Templates

func (h *AdminHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context(), false)
	adminWriteResult(w, err, "templates", templates)
}

func (h *AdminHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.PromptTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	if t.Version == "" {
		t.Version = "1.0"
	}
	if t.MinPlanType == "" {
		t.MinPlanType = models.PlanPro
	}
	adminWriteResult(w, h.templates.Create(r.Context(), &t), "template", &t)
}

func (h *AdminHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var t models.PromptTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	t.ID = id
	adminWriteResult(w, h.templates.Update(r.Context(), &t), "template", &t)
}

func (h *AdminHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	adminWriteResult(w, h.templates.Delete(r.Context(), id), "", nil)
}

// SetDefaultTemplate promotes one template to default, clearing any other.
func (h *AdminHandler) SetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	adminWriteResult(w, h.templates.SetDefault(r.Context(), id), "", nil)
}

// Users

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	users, total, err := h.users.List(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取用户列表失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
		"total":   total,
	})
}

// ListUserHistory returns the newest 50 generations of one user for support
// and moderation review.
func (h *AdminHandler) ListUserHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	entries, total, err := h.history.ListByUser(r.Context(), id, 50, 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("获取历史记录失败"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": entries,
		"total":   total,
	})
}

func (h *AdminHandler) UpdateUserPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		PlanType      string     `json:"plan_type"`
		PlanExpiresAt *time.Time `json:"plan_expires_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}
	if !models.ValidPlanType(req.PlanType) {
		writeJSON(w, http.StatusBadRequest, errorResp("无效的套餐类型"))
		return
	}

	adminWriteResult(w, h.users.UpdatePlan(r.Context(), id, req.PlanType, req.PlanExpiresAt), "", nil)
}

func (h *AdminHandler) SetUserAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}

	adminWriteResult(w, h.users.SetAdmin(r.Context(), id, req.IsAdmin), "", nil)
}
