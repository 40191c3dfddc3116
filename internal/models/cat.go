package models

import (
	"time"

	"github.com/google/uuid"
)

// Cat is either an admin-seeded preset (is_preset, no owner), a user-owned
// custom record, or an ephemeral value built from free text when the user
// skips presets entirely. Ephemeral cats have a nil ID and are never persisted;
// CustomDescription is only set on them.
type Cat struct {
	ID                *uuid.UUID `json:"id"`
	UserID            *uuid.UUID `json:"user_id"`
	Name              string     `json:"name"`
	Breed             string     `json:"breed"`
	BreedEn           *string    `json:"breed_en"`
	BodyType          string     `json:"body_type"`
	BodyTypeEn        *string    `json:"body_type_en"`
	FurColor          *string    `json:"fur_color"`
	FurColorEn        *string    `json:"fur_color_en"`
	FurTexture        *string    `json:"fur_texture"`
	FurTextureEn      *string    `json:"fur_texture_en"`
	SpecialFeatures   *string    `json:"special_features"`
	SpecialFeaturesEn *string    `json:"special_features_en"`
	Personality       *string    `json:"personality"`
	PersonalityEn     *string    `json:"personality_en"`
	DefaultStyleID    *uuid.UUID `json:"default_style_id"`
	AvatarURL         *string    `json:"avatar_url"`
	IsPreset          bool       `json:"is_preset"`
	IsPublic          bool       `json:"is_public"`
	UseCount          int        `json:"use_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	CustomDescription string `json:"custom_description,omitempty"`
}

// CustomCatInput is the structured custom-cat form from the create page.
type CustomCatInput struct {
	Breed           string `json:"breed"`
	BodyType        string `json:"bodyType"`
	FurColor        string `json:"furColor"`
	Personality     string `json:"personality"`
	SpecialFeatures string `json:"specialFeatures"`
}

func (c CustomCatInput) Valid() bool {
	return c.Breed != "" && c.BodyType != ""
}

// FormatCustomCat builds an ephemeral Cat from the structured custom form.
func FormatCustomCat(in CustomCatInput) *Cat {
	now := time.Now()
	return &Cat{
		Name:              "自定义猫咪",
		Breed:             in.Breed,
		BreedEn:           strPtr(in.Breed),
		BodyType:          in.BodyType,
		BodyTypeEn:        strPtr(in.BodyType),
		FurColor:          strPtr(in.FurColor),
		FurColorEn:        strPtr(in.FurColor),
		SpecialFeatures:   strPtr(in.SpecialFeatures),
		SpecialFeaturesEn: strPtr(in.SpecialFeatures),
		Personality:       strPtr(in.Personality),
		PersonalityEn:     strPtr(in.Personality),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// DescribedCat builds an ephemeral Cat from a free-text description.
func DescribedCat(description string) *Cat {
	now := time.Now()
	return &Cat{
		Name:              "自定义猫咪",
		Breed:             "自定义",
		BreedEn:           strPtr("custom cat"),
		BodyType:          "自定义",
		BodyTypeEn:        strPtr("custom"),
		CustomDescription: description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func strPtr(s string) *string { return &s }
