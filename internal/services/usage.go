package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mukbang-backend/internal/models"
)

// Daily generation allowance per plan. -1 means unlimited.
var planLimits = map[string]int{
	models.PlanFree: 3,
	models.PlanPro:  5,
	models.PlanVIP:  -1,
}

// PlanLimit returns the daily allowance for a plan, defaulting unknown
// plans to the free tier.
func PlanLimit(plan string) int {
	if limit, ok := planLimits[plan]; ok {
		return limit
	}
	return planLimits[models.PlanFree]
}

type usageUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	ConsumeDailyUsage(ctx context.Context, userID uuid.UUID, limit int, reset bool) (int, error)
}

type UsageService struct {
	users usageUserRepo
}

func NewUsageService(users usageUserRepo) *UsageService {
	return &UsageService{users: users}
}

// Day boundaries follow Beijing time regardless of server timezone.
var beijingOffset = 8 * time.Hour

func isNewDay(lastReset, now time.Time) bool {
	last := lastReset.UTC().Add(beijingOffset).Format("2006-01-02")
	current := now.UTC().Add(beijingOffset).Format("2006-01-02")
	return last != current
}

// CheckAndConsume verifies the user's remaining daily allowance and, if
// allowed, consumes one generation. Denied requests never mutate the
// counters. On a lost race with a concurrent request it denies rather
// than exceed the quota.
func (s *UsageService) CheckAndConsume(ctx context.Context, userID uuid.UUID) (models.UsageInfo, error) {
	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.UsageInfo{}, fmt.Errorf("load profile: %w", err)
	}

	limit := PlanLimit(profile.PlanType)
	reset := isNewDay(profile.UsageResetAt, time.Now())

	denyMessage := "今日次数已达上限，明天再来吧"
	if profile.PlanType == models.PlanFree {
		denyMessage = fmt.Sprintf("免费用户每天可生成%d次，升级到 Pro 解锁更多次数", limit)
	}

	if limit < 0 {
		used, err := s.users.ConsumeDailyUsage(ctx, userID, limit, reset)
		if err != nil {
			return models.UsageInfo{}, err
		}
		return models.UsageInfo{Used: used, Limit: -1, IsUnlimited: true}, nil
	}

	if !reset && profile.DailyUsage >= limit {
		return models.UsageInfo{}, &QuotaExceededError{
			Message: denyMessage,
			Usage:   models.UsageInfo{Used: profile.DailyUsage, Limit: limit},
		}
	}

	used, err := s.users.ConsumeDailyUsage(ctx, userID, limit, reset)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UsageInfo{}, &QuotaExceededError{
				Message: denyMessage,
				Usage:   models.UsageInfo{Used: limit, Limit: limit},
			}
		}
		return models.UsageInfo{}, err
	}

	return models.UsageInfo{Used: used, Limit: limit}, nil
}

// GetUsageInfo reports today's usage without consuming anything.
func (s *UsageService) GetUsageInfo(ctx context.Context, userID uuid.UUID) (models.UsageInfo, error) {
	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.UsageInfo{}, err
	}

	limit := PlanLimit(profile.PlanType)
	if limit < 0 {
		return models.UsageInfo{Used: profile.DailyUsage, Limit: -1, IsUnlimited: true}, nil
	}

	used := profile.DailyUsage
	if isNewDay(profile.UsageResetAt, time.Now()) {
		used = 0
	}
	return models.UsageInfo{Used: used, Limit: limit}, nil
}
