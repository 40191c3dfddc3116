package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mukbang-backend/internal/models"
)

type fakeTemplateRepo struct {
	byID       map[uuid.UUID]*models.PromptTemplate
	defaultTpl *models.PromptTemplate
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*models.PromptTemplate, error) {
	if tpl, ok := f.byID[id]; ok {
		return tpl, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTemplateRepo) GetDefault(_ context.Context) (*models.PromptTemplate, error) {
	if f.defaultTpl == nil {
		return nil, pgx.ErrNoRows
	}
	return f.defaultTpl, nil
}

func (f *fakeTemplateRepo) IncrementUse(_ context.Context, _ uuid.UUID) error { return nil }

type fakeHistoryRepo struct {
	mu      sync.Mutex
	err     error
	created []*models.PromptHistory
}

func (f *fakeHistoryRepo) Create(_ context.Context, h *models.PromptHistory) error {
	if f.err != nil {
		return f.err
	}
	h.ID = uuid.New()
	f.mu.Lock()
	f.created = append(f.created, h)
	f.mu.Unlock()
	return nil
}

type noopCatalogRepo struct{}

func (noopCatalogRepo) IncrementStyleUse(_ context.Context, _ uuid.UUID) error { return nil }
func (noopCatalogRepo) IncrementFoodUse(_ context.Context, _ []uuid.UUID) error { return nil }
func (noopCatalogRepo) IncrementEmotionUse(_ context.Context, _ uuid.UUID) error { return nil }
func (noopCatalogRepo) IncrementSceneUse(_ context.Context, _ uuid.UUID) error { return nil }

type noopCatRepo struct{}

func (noopCatRepo) IncrementUse(_ context.Context, _ uuid.UUID) error { return nil }

// chatStub serves a canned completion and records the request the client sent.
func chatStub(t *testing.T, content string) (*ChatClient, *capturedChat) {
	t.Helper()
	captured := &capturedChat{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.mu.Lock()
		captured.payload = string(body)
		captured.mu.Unlock()
		w.Write([]byte(`{"choices":[{"message":{"content":` + jsonString(content) + `}}]}`))
	}))
	t.Cleanup(srv.Close)
	return NewChatClient(srv.URL, "k", "m", 5*time.Second), captured
}

type capturedChat struct {
	mu      sync.Mutex
	payload string
}

func (c *capturedChat) body() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload
}

func jsonString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

const modelReply = `{"imagePrompt":"cat at table","videoPrompt":"cat eats","explanation":"说明","tips":"技巧","soundSuggestion":"音效"}`

func freeProfile() *models.UserProfile {
	return &models.UserProfile{ID: uuid.New(), PlanType: models.PlanFree}
}

func proProfile() *models.UserProfile {
	return &models.UserProfile{ID: uuid.New(), PlanType: models.PlanPro}
}

func testRefs() GenerateRefs {
	styleID := uuid.New()
	return GenerateRefs{
		Cat: models.DescribedCat("黑猫"),
		Style: &models.VisualStyle{
			ID:             styleID,
			Name:           "写实风",
			PromptKeywords: "photorealistic",
		},
		Foods: []*models.Food{{
			ID:             uuid.New(),
			Name:           "三文鱼",
			NameEn:         "salmon",
			VisualKeywords: "fresh salmon",
		}},
	}
}

func newTestGenerator(client *ChatClient, templates *fakeTemplateRepo, history *fakeHistoryRepo) *GeneratorService {
	return NewGeneratorService(client, templates, history, noopCatalogRepo{}, noopCatRepo{})
}

func TestGenerate_FreeUsesBasicMode(t *testing.T) {
	client, captured := chatStub(t, modelReply)
	history := &fakeHistoryRepo{}
	svc := newTestGenerator(client, &fakeTemplateRepo{}, history)

	refs := testRefs()
	req := models.GeneratePromptRequest{StyleID: &refs.Style.ID}

	outcome, err := svc.Generate(context.Background(), freeProfile(), req, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if outcome.Mode != models.ModeBasic {
		t.Errorf("Expected basic mode for free plan, got %q", outcome.Mode)
	}
	if outcome.TemplateName != "" {
		t.Errorf("Expected no template for free plan, got %q", outcome.TemplateName)
	}
	if outcome.Data.ImagePrompt != "cat at table" {
		t.Errorf("Expected parsed image prompt, got %q", outcome.Data.ImagePrompt)
	}
	if outcome.Data.Tips != "技巧" {
		t.Errorf("Expected tips kept without a template, got %q", outcome.Data.Tips)
	}
	if !strings.Contains(captured.body(), `"temperature":0.8`) {
		t.Errorf("Expected basic-mode temperature 0.8 in request")
	}
	if len(history.created) != 1 {
		t.Fatalf("Expected one history row, got %d", len(history.created))
	}
	if history.created[0].GenerationMode != models.ModeBasic {
		t.Errorf("Expected history to record basic mode, got %q", history.created[0].GenerationMode)
	}
	if history.created[0].PromptType != "both" {
		t.Errorf("Expected prompt type defaulted to both, got %q", history.created[0].PromptType)
	}
	if outcome.Data.HistoryID == uuid.Nil {
		t.Errorf("Expected history id surfaced in the payload")
	}
}

func TestGenerate_ProUsesDefaultTemplate(t *testing.T) {
	client, captured := chatStub(t, modelReply)
	tpl := &models.PromptTemplate{
		ID:                     uuid.New(),
		Name:                   "爆款模板 v2",
		SystemPrompt:           "自定义系统提示词",
		ImagePromptTemplate:    "[主体]",
		VideoPromptTemplate:    "[镜头]",
		IncludeTips:            true,
		IncludeSoundSuggestion: true,
		MinPlanType:            models.PlanPro,
	}
	history := &fakeHistoryRepo{}
	svc := newTestGenerator(client, &fakeTemplateRepo{defaultTpl: tpl}, history)

	refs := testRefs()
	outcome, err := svc.Generate(context.Background(), proProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID}, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if outcome.Mode != models.ModeProfessional {
		t.Errorf("Expected professional mode, got %q", outcome.Mode)
	}
	if outcome.TemplateName != "爆款模板 v2" {
		t.Errorf("Expected default template picked up, got %q", outcome.TemplateName)
	}
	if !strings.Contains(captured.body(), "自定义系统提示词") {
		t.Errorf("Expected template system prompt sent to the model")
	}
	if !strings.Contains(captured.body(), `"temperature":0.7`) {
		t.Errorf("Expected professional-mode temperature 0.7")
	}
	if history.created[0].TemplateID == nil || *history.created[0].TemplateID != tpl.ID {
		t.Errorf("Expected template id recorded in history")
	}
}

func TestGenerate_ExplicitTemplateAbovePlanFallsBack(t *testing.T) {
	client, _ := chatStub(t, modelReply)
	vipOnly := &models.PromptTemplate{
		ID:          uuid.New(),
		Name:        "VIP 专属",
		MinPlanType: models.PlanVIP,
		IncludeTips: true,
	}
	fallback := &models.PromptTemplate{
		ID:          uuid.New(),
		Name:        "默认模板",
		MinPlanType: models.PlanPro,
		IncludeTips: true,
	}
	templates := &fakeTemplateRepo{
		byID:       map[uuid.UUID]*models.PromptTemplate{vipOnly.ID: vipOnly},
		defaultTpl: fallback,
	}
	svc := newTestGenerator(client, templates, &fakeHistoryRepo{})

	refs := testRefs()
	outcome, err := svc.Generate(context.Background(), proProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID, TemplateID: &vipOnly.ID}, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if outcome.TemplateName != "默认模板" {
		t.Errorf("Expected fallback to default template, got %q", outcome.TemplateName)
	}
}

func TestGenerate_TemplateGatesTipsAndSound(t *testing.T) {
	client, _ := chatStub(t, modelReply)
	tpl := &models.PromptTemplate{
		ID:                     uuid.New(),
		Name:                   "精简模板",
		MinPlanType:            models.PlanPro,
		IncludeTips:            false,
		IncludeSoundSuggestion: false,
	}
	svc := newTestGenerator(client, &fakeTemplateRepo{defaultTpl: tpl}, &fakeHistoryRepo{})

	refs := testRefs()
	outcome, err := svc.Generate(context.Background(), proProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID}, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if outcome.Data.Tips != "" {
		t.Errorf("Expected tips suppressed by template, got %q", outcome.Data.Tips)
	}
	if outcome.Data.SoundSuggestion != "" {
		t.Errorf("Expected sound suggestion suppressed by template, got %q", outcome.Data.SoundSuggestion)
	}
}

func TestGenerate_ProfessionalAppliesPawAdjustment(t *testing.T) {
	reply := `{"imagePrompt":"cute cat, body completely hidden behind table, only head neck and upper chest visible above table edge, sitting","videoPrompt":"cat eats","explanation":"说明"}`
	client, _ := chatStub(t, reply)
	svc := newTestGenerator(client, &fakeTemplateRepo{}, &fakeHistoryRepo{})

	refs := testRefs()
	outcome, err := svc.Generate(context.Background(), proProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID, ExtraRequirements: "猫咪用爪爪拿食物"}, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if strings.Contains(outcome.Data.ImagePrompt, "body completely hidden behind table") {
		t.Errorf("Expected hidden-body phrase rewritten, got %q", outcome.Data.ImagePrompt)
	}
	if !strings.Contains(outcome.Data.ImagePrompt, "front paws visible above table edge") {
		t.Errorf("Expected paws made visible, got %q", outcome.Data.ImagePrompt)
	}
}

func TestGenerate_BasicModeSkipsAdjustment(t *testing.T) {
	reply := `{"imagePrompt":"cute cat, body completely hidden behind table, sitting","videoPrompt":"cat eats"}`
	client, _ := chatStub(t, reply)
	svc := newTestGenerator(client, &fakeTemplateRepo{}, &fakeHistoryRepo{})

	refs := testRefs()
	outcome, err := svc.Generate(context.Background(), freeProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID, ExtraRequirements: "猫咪用爪爪拿食物"}, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if !strings.Contains(outcome.Data.ImagePrompt, "body completely hidden behind table") {
		t.Errorf("Expected basic mode to keep the model output untouched")
	}
}

func TestGenerate_SnapshotStoresReferenceNames(t *testing.T) {
	client, _ := chatStub(t, modelReply)
	history := &fakeHistoryRepo{}
	svc := newTestGenerator(client, &fakeTemplateRepo{}, history)

	refs := testRefs()
	refs.Emotion = &models.Emotion{
		ID:               uuid.New(),
		Name:             "满足",
		NameEn:           "satisfied",
		ActionKeywords:   "slow blinks",
		FacialExpression: "content smile",
	}
	req := models.GeneratePromptRequest{
		StyleID:     &refs.Style.ID,
		FoodIDs:     []uuid.UUID{refs.Foods[0].ID},
		CustomFoods: []string{"彩虹蛋糕"},
		EmotionID:   &refs.Emotion.ID,
	}

	_, err := svc.Generate(context.Background(), freeProfile(), req, refs)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(history.created) != 1 {
		t.Fatalf("Expected one history row, got %d", len(history.created))
	}

	var snap struct {
		Cat struct {
			Name  string `json:"name"`
			Breed string `json:"breed"`
		} `json:"cat"`
		Style struct {
			Name string `json:"name"`
		} `json:"style"`
		Foods []struct {
			Name string `json:"name"`
		} `json:"foods"`
		CustomFoods []string `json:"customFoods"`
		Emotion     *struct {
			Name string `json:"name"`
		} `json:"emotion"`
		Scene *struct {
			Name string `json:"name"`
		} `json:"scene"`
	}
	if err := json.Unmarshal(history.created[0].InputSnapshot, &snap); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}

	if snap.Cat.Name != refs.Cat.Name || snap.Cat.Breed != refs.Cat.Breed {
		t.Errorf("Expected cat name and breed in snapshot, got %+v", snap.Cat)
	}
	if snap.Style.Name != "写实风" {
		t.Errorf("Expected style name in snapshot, got %q", snap.Style.Name)
	}
	if len(snap.Foods) != 1 || snap.Foods[0].Name != "三文鱼" {
		t.Errorf("Expected food names in snapshot, got %+v", snap.Foods)
	}
	if len(snap.CustomFoods) != 1 || snap.CustomFoods[0] != "彩虹蛋糕" {
		t.Errorf("Expected custom foods in snapshot, got %+v", snap.CustomFoods)
	}
	if snap.Emotion == nil || snap.Emotion.Name != "满足" {
		t.Errorf("Expected emotion name in snapshot, got %+v", snap.Emotion)
	}
	if snap.Scene != nil {
		t.Errorf("Expected nil scene when none selected, got %+v", snap.Scene)
	}
}

func TestGenerate_HistoryFailureFailsRequest(t *testing.T) {
	client, _ := chatStub(t, modelReply)
	history := &fakeHistoryRepo{err: errors.New("connection reset")}
	svc := newTestGenerator(client, &fakeTemplateRepo{}, history)

	refs := testRefs()
	_, err := svc.Generate(context.Background(), freeProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID}, refs)
	if err == nil {
		t.Fatalf("Expected error when the history insert fails")
	}
	if !strings.Contains(err.Error(), "history insert") {
		t.Errorf("Expected history insert error, got %v", err)
	}
}

func TestGenerate_EmptyModelOutputFails(t *testing.T) {
	client, _ := chatStub(t, "抱歉，我无法完成这个请求。")
	svc := newTestGenerator(client, &fakeTemplateRepo{}, &fakeHistoryRepo{})

	refs := testRefs()
	_, err := svc.Generate(context.Background(), freeProfile(),
		models.GeneratePromptRequest{StyleID: &refs.Style.ID}, refs)
	if err == nil {
		t.Fatalf("Expected error when no prompts could be recovered")
	}
}
