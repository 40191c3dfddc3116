package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Catalog entities are admin-managed reference rows whose keyword fields are
// spliced verbatim into LLM instructions. Each carries a Validate method that
// rejects malformed rows at the repository boundary instead of letting empty
// keyword strings leak into prompts.

type VisualStyle struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NameEn         string    `json:"name_en"`
	Description    *string   `json:"description"`
	PromptKeywords string    `json:"prompt_keywords"`
	ExamplePrompt  *string   `json:"example_prompt"`
	ThumbnailURL   *string   `json:"thumbnail_url"`
	RecommendedFor *string   `json:"recommended_for"`
	SortOrder      int       `json:"sort_order"`
	IsActive       bool      `json:"is_active"`
	IsPremium      bool      `json:"is_premium"`
	UseCount       int       `json:"use_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *VisualStyle) Validate() error {
	if s.Name == "" || s.PromptKeywords == "" {
		return fmt.Errorf("visual style %s: missing name or prompt_keywords", s.ID)
	}
	return nil
}

type Food struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	NameEn          string    `json:"name_en"`
	Category        string    `json:"category"`
	HeatLevel       int       `json:"heat_level"`
	Difficulty      int       `json:"difficulty"`
	VisualKeywords  string    `json:"visual_keywords"`
	TextureKeywords *string   `json:"texture_keywords"`
	SoundKeywords   *string   `json:"sound_keywords"`
	Emoji           *string   `json:"emoji"`
	ThumbnailURL    *string   `json:"thumbnail_url"`
	IsPremium       bool      `json:"is_premium"`
	IsActive        bool      `json:"is_active"`
	SortOrder       int       `json:"sort_order"`
	UseCount        int       `json:"use_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (f *Food) Validate() error {
	if f.Name == "" || f.NameEn == "" || f.VisualKeywords == "" {
		return fmt.Errorf("food %s: missing name, name_en or visual_keywords", f.ID)
	}
	return nil
}

type Emotion struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NameEn           string    `json:"name_en"`
	Category         *string   `json:"category"`
	Description      *string   `json:"description"`
	ActionKeywords   string    `json:"action_keywords"`
	FacialExpression string    `json:"facial_expression"`
	BodyLanguage     *string   `json:"body_language"`
	Emoji            *string   `json:"emoji"`
	Intensity        int       `json:"intensity"`
	IsActive         bool      `json:"is_active"`
	SortOrder        int       `json:"sort_order"`
	UseCount         int       `json:"use_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (e *Emotion) Validate() error {
	if e.Name == "" || e.ActionKeywords == "" || e.FacialExpression == "" {
		return fmt.Errorf("emotion %s: missing name, action_keywords or facial_expression", e.ID)
	}
	return nil
}

type Scene struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NameEn           string    `json:"name_en"`
	Description      *string   `json:"description"`
	VisualKeywords   string    `json:"visual_keywords"`
	LightingKeywords *string   `json:"lighting_keywords"`
	CameraAngle      *string   `json:"camera_angle"`
	Atmosphere       *string   `json:"atmosphere"`
	ThumbnailURL     *string   `json:"thumbnail_url"`
	IsPremium        bool      `json:"is_premium"`
	IsActive         bool      `json:"is_active"`
	SortOrder        int       `json:"sort_order"`
	UseCount         int       `json:"use_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *Scene) Validate() error {
	if s.Name == "" || s.VisualKeywords == "" {
		return fmt.Errorf("scene %s: missing name or visual_keywords", s.ID)
	}
	return nil
}
