package models

import "github.com/google/uuid"

// GeneratePromptRequest is the body of POST /api/generate-prompt.
type GeneratePromptRequest struct {
	GenerateType         string          `json:"generateType"`
	CatID                *uuid.UUID      `json:"catId"`
	CustomCat            *CustomCatInput `json:"customCat"`
	CustomCatDescription string          `json:"customCatDescription"`
	StyleID              *uuid.UUID      `json:"styleId"`
	FoodIDs              []uuid.UUID     `json:"foodIds"`
	CustomFoods          []string        `json:"customFoods"`
	EmotionID            *uuid.UUID      `json:"emotionId"`
	SceneID              *uuid.UUID      `json:"sceneId"`
	CustomSceneDetails   string          `json:"customSceneDetails"`
	ExtraRequirements    string          `json:"extraRequirements"`
	TemplateID           *uuid.UUID      `json:"templateId"`
}

// GenerateData is the generated payload plus the persisted history row ID.
type GenerateData struct {
	ImagePrompt     string    `json:"imagePrompt"`
	VideoPrompt     string    `json:"videoPrompt"`
	Explanation     string    `json:"explanation"`
	Tips            string    `json:"tips,omitempty"`
	SoundSuggestion string    `json:"soundSuggestion"`
	HistoryID       uuid.UUID `json:"historyId"`
}

// GenerateOutcome is the success body of POST /api/generate-prompt.
type GenerateOutcome struct {
	Mode         string       `json:"mode"`
	TemplateName string       `json:"templateName,omitempty"`
	Data         GenerateData `json:"data"`
}

// GenerateVideoPromptRequest is the body of POST /api/generate-video-prompt.
type GenerateVideoPromptRequest struct {
	FrameDescription  string `json:"frameDescription"`
	ActionDescription string `json:"actionDescription"`
	SoundOption       string `json:"soundOption"`
}
