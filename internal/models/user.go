package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan tiers controlling the daily generation quota and template access.
const (
	PlanFree = "free"
	PlanPro  = "pro"
	PlanVIP  = "vip"
)

func ValidPlanType(plan string) bool {
	return plan == PlanFree || plan == PlanPro || plan == PlanVIP
}

// IsPremiumPlan reports whether the plan unlocks the professional prompt mode.
func IsPremiumPlan(plan string) bool {
	return plan == PlanPro || plan == PlanVIP
}

type UserProfile struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Nickname            *string    `json:"nickname"`
	AvatarURL           *string    `json:"avatar_url"`
	PlanType            string     `json:"plan_type"`
	PlanExpiresAt       *time.Time `json:"plan_expires_at"`
	DailyUsage          int        `json:"daily_usage"`
	UsageResetAt        time.Time  `json:"usage_reset_at"`
	TotalGenerations    int        `json:"total_generations"`
	DefaultStyleID      *uuid.UUID `json:"default_style_id"`
	PreferredTemplateID *uuid.UUID `json:"preferred_template_id"`
	IsAdmin             bool       `json:"is_admin"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UsageInfo is the quota payload returned by the usage gate and on 429s.
type UsageInfo struct {
	Used        int  `json:"used"`
	Limit       int  `json:"limit"`
	IsUnlimited bool `json:"isUnlimited"`
}
