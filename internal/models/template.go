package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PromptTemplate is an admin-authored system prompt plus reference structures
// handed to the LLM in professional mode. At most one row is flagged default;
// the migration enforces this with a partial unique index.
type PromptTemplate struct {
	ID                     uuid.UUID  `json:"id"`
	Name                   string     `json:"name"`
	Description            *string    `json:"description"`
	Version                string     `json:"version"`
	ImagePromptTemplate    string     `json:"image_prompt_template"`
	VideoPromptTemplate    string     `json:"video_prompt_template"`
	SystemPrompt           string     `json:"system_prompt"`
	IncludeTips            bool       `json:"include_tips"`
	IncludeSoundSuggestion bool       `json:"include_sound_suggestion"`
	TipsTemplate           *string    `json:"tips_template"`
	MinPlanType            string     `json:"min_plan_type"`
	IsActive               bool       `json:"is_active"`
	IsDefault              bool       `json:"is_default"`
	UseCount               int        `json:"use_count"`
	SuccessRate            *float64   `json:"success_rate"`
	CreatedBy              *uuid.UUID `json:"created_by"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (t *PromptTemplate) Validate() error {
	if t.Name == "" || t.ImagePromptTemplate == "" || t.VideoPromptTemplate == "" {
		return fmt.Errorf("prompt template %s: missing name or template bodies", t.ID)
	}
	if !ValidPlanType(t.MinPlanType) {
		return fmt.Errorf("prompt template %s: invalid min_plan_type %q", t.ID, t.MinPlanType)
	}
	return nil
}
