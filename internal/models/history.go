package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Generation modes selected solely by plan tier.
const (
	ModeBasic        = "basic"
	ModeProfessional = "professional"
)

// PromptHistory is the append-only record of one completed generation. The
// input snapshot denormalizes human-readable names so the history view never
// re-joins catalog tables.
type PromptHistory struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	PromptType      string          `json:"prompt_type"`
	CatID           *uuid.UUID      `json:"cat_id"`
	StyleID         *uuid.UUID      `json:"style_id"`
	FoodIDs         []uuid.UUID     `json:"food_ids"`
	CustomFoods     []string        `json:"custom_foods"`
	EmotionID       *uuid.UUID      `json:"emotion_id"`
	SceneID         *uuid.UUID      `json:"scene_id"`
	TemplateID      *uuid.UUID      `json:"template_id"`
	GenerationMode  string          `json:"generation_mode"`
	ImagePrompt     string          `json:"image_prompt"`
	VideoPrompt     string          `json:"video_prompt"`
	Explanation     string          `json:"explanation"`
	Tips            *string         `json:"tips"`
	SoundSuggestion string          `json:"sound_suggestion"`
	InputSnapshot   json.RawMessage `json:"input_snapshot"`
	CreatedAt       time.Time       `json:"created_at"`
}
