package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"mukbang-backend/internal/models"
	"mukbang-backend/internal/prompts"
)

type generatorTemplateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.PromptTemplate, error)
	GetDefault(ctx context.Context) (*models.PromptTemplate, error)
	IncrementUse(ctx context.Context, id uuid.UUID) error
}

type generatorHistoryRepo interface {
	Create(ctx context.Context, h *models.PromptHistory) error
}

type generatorCatalogRepo interface {
	IncrementStyleUse(ctx context.Context, id uuid.UUID) error
	IncrementFoodUse(ctx context.Context, ids []uuid.UUID) error
	IncrementEmotionUse(ctx context.Context, id uuid.UUID) error
	IncrementSceneUse(ctx context.Context, id uuid.UUID) error
}

type generatorCatRepo interface {
	IncrementUse(ctx context.Context, id uuid.UUID) error
}

// GeneratorService orchestrates one prompt generation: pick mode and
// template, assemble the instruction, call the chat model, recover the
// JSON payload, post-process, persist history.
type GeneratorService struct {
	chat      *ChatClient
	templates generatorTemplateRepo
	history   generatorHistoryRepo
	catalog   generatorCatalogRepo
	cats      generatorCatRepo
}

func NewGeneratorService(chat *ChatClient, templates generatorTemplateRepo, history generatorHistoryRepo, catalog generatorCatalogRepo, cats generatorCatRepo) *GeneratorService {
	return &GeneratorService{
		chat:      chat,
		templates: templates,
		history:   history,
		catalog:   catalog,
		cats:      cats,
	}
}

// GenerateRefs holds the already-resolved reference rows for one request.
type GenerateRefs struct {
	Cat     *models.Cat
	Style   *models.VisualStyle
	Foods   []*models.Food
	Emotion *models.Emotion
	Scene   *models.Scene
}

var planRank = map[string]int{
	models.PlanFree: 0,
	models.PlanPro:  1,
	models.PlanVIP:  2,
}

func planAllows(plan, minPlan string) bool {
	return planRank[plan] >= planRank[minPlan]
}

// resolveTemplate picks the template for professional mode. A missing or
// inaccessible explicit template falls back to the default; no template at
// all is fine and just means the built-in system prompt.
func (s *GeneratorService) resolveTemplate(ctx context.Context, plan string, templateID *uuid.UUID) *models.PromptTemplate {
	if templateID != nil {
		tmpl, err := s.templates.GetByID(ctx, *templateID)
		if err == nil && planAllows(plan, tmpl.MinPlanType) {
			return tmpl
		}
		if err != nil {
			log.Printf("template %s lookup failed, falling back to default: %v", templateID, err)
		}
	}

	tmpl, err := s.templates.GetDefault(ctx)
	if err != nil {
		return nil
	}
	if !planAllows(plan, tmpl.MinPlanType) {
		return nil
	}
	return tmpl
}

func (s *GeneratorService) Generate(ctx context.Context, profile *models.UserProfile, req models.GeneratePromptRequest, refs GenerateRefs) (*models.GenerateOutcome, error) {
	mode := models.ModeBasic
	if models.IsPremiumPlan(profile.PlanType) {
		mode = models.ModeProfessional
	}

	var template *models.PromptTemplate
	systemPrompt := prompts.BasicSystemPrompt
	temperature := 0.8
	if mode == models.ModeProfessional {
		template = s.resolveTemplate(ctx, profile.PlanType, req.TemplateID)
		systemPrompt = prompts.ProfessionalSystemPrompt
		if template != nil && template.SystemPrompt != "" {
			systemPrompt = template.SystemPrompt
		}
		temperature = 0.7
	}

	switch req.GenerateType {
	case "image":
		systemPrompt += prompts.ImageFocusNote
	case "video":
		systemPrompt += prompts.VideoFocusNote
	}

	userMessage := prompts.BuildUserMessage(prompts.MessageOptions{
		Cat:                  refs.Cat,
		CustomCatDescription: req.CustomCatDescription,
		Style:                refs.Style,
		Foods:                refs.Foods,
		CustomFoods:          req.CustomFoods,
		Emotion:              refs.Emotion,
		Scene:                refs.Scene,
		CustomSceneDetails:   req.CustomSceneDetails,
		ExtraRequirements:    req.ExtraRequirements,
		Template:             template,
	})

	content, err := s.chat.CreateChatCompletion(ctx, []ChatMessage{
		TextMessage("system", systemPrompt),
		TextMessage("user", userMessage),
	}, ChatOptions{Temperature: temperature, MaxTokens: 2500})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	parsed := prompts.ParseGenerateResponse(content)
	log.Printf("generate: user=%s mode=%s parse_strategy=%s", profile.ID, mode, parsed.Strategy)
	if parsed.Result.Empty() {
		return nil, fmt.Errorf("model output had no usable prompts")
	}
	result := parsed.Result

	if mode == models.ModeProfessional {
		reqs := prompts.DetectSpecialRequirements(req.ExtraRequirements)
		if reqs.NeedsAdjustment() {
			result.ImagePrompt = prompts.AdjustImagePrompt(result.ImagePrompt, reqs)
		}
	}

	data := models.GenerateData{
		ImagePrompt:     result.ImagePrompt,
		VideoPrompt:     result.VideoPrompt,
		Explanation:     result.Explanation,
		SoundSuggestion: result.SoundSuggestion,
	}
	if template == nil || template.IncludeTips {
		data.Tips = result.Tips
	}
	if template != nil && !template.IncludeSoundSuggestion {
		data.SoundSuggestion = ""
	}

	historyID, err := s.saveHistory(ctx, profile.ID, req, refs, template, mode, data)
	if err != nil {
		return nil, fmt.Errorf("history insert: %w", err)
	}
	data.HistoryID = historyID

	s.bumpUseCounts(req, refs, template)

	outcome := &models.GenerateOutcome{Mode: mode, Data: data}
	if template != nil {
		outcome.TemplateName = template.Name
	}
	return outcome, nil
}

// buildInputSnapshot denormalizes the resolved reference names into the
// history row. The catalog FKs null out on deletion, so without the names
// here the history view could no longer label old generations.
func buildInputSnapshot(req models.GeneratePromptRequest, refs GenerateRefs) []byte {
	type named struct {
		Name string `json:"name"`
	}
	snap := struct {
		Cat struct {
			Name  string `json:"name"`
			Breed string `json:"breed"`
		} `json:"cat"`
		Style       named    `json:"style"`
		Foods       []named  `json:"foods"`
		CustomFoods []string `json:"customFoods"`
		Emotion     *named   `json:"emotion"`
		Scene       *named   `json:"scene"`
	}{}

	if refs.Cat != nil {
		snap.Cat.Name = refs.Cat.Name
		snap.Cat.Breed = refs.Cat.Breed
	}
	if refs.Style != nil {
		snap.Style = named{Name: refs.Style.Name}
	}
	snap.Foods = make([]named, 0, len(refs.Foods))
	for _, f := range refs.Foods {
		snap.Foods = append(snap.Foods, named{Name: f.Name})
	}
	snap.CustomFoods = req.CustomFoods
	if snap.CustomFoods == nil {
		snap.CustomFoods = []string{}
	}
	if refs.Emotion != nil {
		snap.Emotion = &named{Name: refs.Emotion.Name}
	}
	if refs.Scene != nil {
		snap.Scene = &named{Name: refs.Scene.Name}
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// saveHistory persists the generation. A failed insert fails the whole
// request since the generated content would otherwise be unrecoverable.
func (s *GeneratorService) saveHistory(ctx context.Context, userID uuid.UUID, req models.GeneratePromptRequest, refs GenerateRefs, template *models.PromptTemplate, mode string, data models.GenerateData) (uuid.UUID, error) {
	promptType := req.GenerateType
	if promptType == "" {
		promptType = "both"
	}

	snapshot := buildInputSnapshot(req, refs)

	h := &models.PromptHistory{
		UserID:          userID,
		PromptType:      promptType,
		StyleID:         req.StyleID,
		FoodIDs:         req.FoodIDs,
		CustomFoods:     req.CustomFoods,
		EmotionID:       req.EmotionID,
		SceneID:         req.SceneID,
		GenerationMode:  mode,
		ImagePrompt:     data.ImagePrompt,
		VideoPrompt:     data.VideoPrompt,
		Explanation:     data.Explanation,
		SoundSuggestion: data.SoundSuggestion,
		InputSnapshot:   snapshot,
	}
	if refs.Cat != nil && refs.Cat.ID != nil {
		h.CatID = refs.Cat.ID
	}
	if template != nil {
		h.TemplateID = &template.ID
	}
	if data.Tips != "" {
		h.Tips = &data.Tips
	}

	if err := s.history.Create(ctx, h); err != nil {
		return uuid.Nil, err
	}
	return h.ID, nil
}

// bumpUseCounts increments popularity counters off the request path.
func (s *GeneratorService) bumpUseCounts(req models.GeneratePromptRequest, refs GenerateRefs, template *models.PromptTemplate) {
	go func() {
		ctx := context.Background()
		if template != nil {
			if err := s.templates.IncrementUse(ctx, template.ID); err != nil {
				log.Printf("template use count: %v", err)
			}
		}
		if refs.Cat != nil && refs.Cat.ID != nil {
			if err := s.cats.IncrementUse(ctx, *refs.Cat.ID); err != nil {
				log.Printf("cat use count: %v", err)
			}
		}
		if req.StyleID != nil {
			if err := s.catalog.IncrementStyleUse(ctx, *req.StyleID); err != nil {
				log.Printf("style use count: %v", err)
			}
		}
		if len(req.FoodIDs) > 0 {
			if err := s.catalog.IncrementFoodUse(ctx, req.FoodIDs); err != nil {
				log.Printf("food use count: %v", err)
			}
		}
		if req.EmotionID != nil {
			if err := s.catalog.IncrementEmotionUse(ctx, *req.EmotionID); err != nil {
				log.Printf("emotion use count: %v", err)
			}
		}
		if req.SceneID != nil {
			if err := s.catalog.IncrementSceneUse(ctx, *req.SceneID); err != nil {
				log.Printf("scene use count: %v", err)
			}
		}
	}()
}
