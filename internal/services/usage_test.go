package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mukbang-backend/internal/models"
)

type fakeUsageRepo struct {
	profile    *models.UserProfile
	consumeErr error

	consumed   bool
	gotLimit   int
	gotReset   bool
	usageAfter int
}

func (f *fakeUsageRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeUsageRepo) ConsumeDailyUsage(_ context.Context, _ uuid.UUID, limit int, reset bool) (int, error) {
	f.consumed = true
	f.gotLimit = limit
	f.gotReset = reset
	if f.consumeErr != nil {
		return 0, f.consumeErr
	}
	if reset {
		f.usageAfter = 1
	} else {
		f.usageAfter = f.profile.DailyUsage + 1
	}
	return f.usageAfter, nil
}

func profileWith(plan string, usage int, resetAt time.Time) *models.UserProfile {
	return &models.UserProfile{
		ID:           uuid.New(),
		PlanType:     plan,
		DailyUsage:   usage,
		UsageResetAt: resetAt,
	}
}

func TestCheckAndConsume_FreeUnderLimit(t *testing.T) {
	repo := &fakeUsageRepo{profile: profileWith(models.PlanFree, 2, time.Now())}
	svc := NewUsageService(repo)

	usage, err := svc.CheckAndConsume(context.Background(), repo.profile.ID)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if !repo.consumed {
		t.Fatalf("Expected a consume call")
	}
	if usage.Used != 3 || usage.Limit != 3 {
		t.Errorf("Expected 3/3 after third generation, got %d/%d", usage.Used, usage.Limit)
	}
	if usage.IsUnlimited {
		t.Errorf("Expected free plan to be limited")
	}
}

func TestCheckAndConsume_FreeAtLimitDeniedWithoutConsume(t *testing.T) {
	repo := &fakeUsageRepo{profile: profileWith(models.PlanFree, 3, time.Now())}
	svc := NewUsageService(repo)

	_, err := svc.CheckAndConsume(context.Background(), repo.profile.ID)

	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("Expected QuotaExceededError, got %v", err)
	}
	if repo.consumed {
		t.Errorf("Expected no counter mutation on a denied request")
	}
	if quotaErr.Usage.Used != 3 || quotaErr.Usage.Limit != 3 {
		t.Errorf("Expected usage 3/3 in the denial, got %d/%d", quotaErr.Usage.Used, quotaErr.Usage.Limit)
	}
	if quotaErr.Message != "免费用户每天可生成3次，升级到 Pro 解锁更多次数" {
		t.Errorf("Expected free-tier upgrade nudge, got %q", quotaErr.Message)
	}
}

func TestCheckAndConsume_ProAtLimitDenied(t *testing.T) {
	repo := &fakeUsageRepo{profile: profileWith(models.PlanPro, 5, time.Now())}
	svc := NewUsageService(repo)

	_, err := svc.CheckAndConsume(context.Background(), repo.profile.ID)

	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("Expected QuotaExceededError, got %v", err)
	}
	if quotaErr.Message != "今日次数已达上限，明天再来吧" {
		t.Errorf("Expected generic limit message for paid plans, got %q", quotaErr.Message)
	}
}

func TestCheckAndConsume_NewDayResets(t *testing.T) {
	// Last reset two days ago guarantees a day-boundary crossing under the
	// UTC+8 calendar regardless of when the test runs.
	repo := &fakeUsageRepo{profile: profileWith(models.PlanFree, 3, time.Now().Add(-48*time.Hour))}
	svc := NewUsageService(repo)

	usage, err := svc.CheckAndConsume(context.Background(), repo.profile.ID)
	if err != nil {
		t.Fatalf("Expected a fresh allowance on a new day, got %v", err)
	}
	if !repo.gotReset {
		t.Errorf("Expected reset flag passed to the repository")
	}
	if usage.Used != 1 {
		t.Errorf("Expected counter restarted at 1, got %d", usage.Used)
	}
}

func TestCheckAndConsume_VIPUnlimited(t *testing.T) {
	repo := &fakeUsageRepo{profile: profileWith(models.PlanVIP, 9000, time.Now())}
	svc := NewUsageService(repo)

	usage, err := svc.CheckAndConsume(context.Background(), repo.profile.ID)
	if err != nil {
		t.Fatalf("Expected vip to never be denied, got %v", err)
	}
	if !usage.IsUnlimited || usage.Limit != -1 {
		t.Errorf("Expected unlimited usage info, got %+v", usage)
	}
	if !repo.consumed {
		t.Errorf("Expected vip usage still counted for statistics")
	}
}

func TestCheckAndConsume_LostRaceDenies(t *testing.T) {
	// The profile read saw remaining allowance but the conditional update
	// matched no row: a concurrent request took the last slot.
	repo := &fakeUsageRepo{
		profile:    profileWith(models.PlanFree, 2, time.Now()),
		consumeErr: pgx.ErrNoRows,
	}
	svc := NewUsageService(repo)

	_, err := svc.CheckAndConsume(context.Background(), repo.profile.ID)

	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("Expected QuotaExceededError after losing the race, got %v", err)
	}
	if quotaErr.Usage.Used != 3 || quotaErr.Usage.Limit != 3 {
		t.Errorf("Expected usage reported at the limit, got %+v", quotaErr.Usage)
	}
}

func TestGetUsageInfo_NewDayReportsZero(t *testing.T) {
	repo := &fakeUsageRepo{profile: profileWith(models.PlanFree, 3, time.Now().Add(-48*time.Hour))}
	svc := NewUsageService(repo)

	usage, err := svc.GetUsageInfo(context.Background(), repo.profile.ID)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if usage.Used != 0 || usage.Limit != 3 {
		t.Errorf("Expected 0/3 after the boundary, got %d/%d", usage.Used, usage.Limit)
	}
	if repo.consumed {
		t.Errorf("Expected read-only usage query to not consume")
	}
}

func TestPlanLimit(t *testing.T) {
	tests := []struct {
		plan string
		want int
	}{
		{models.PlanFree, 3},
		{models.PlanPro, 5},
		{models.PlanVIP, -1},
		{"enterprise", 3},
		{"", 3},
	}

	for _, tc := range tests {
		if got := PlanLimit(tc.plan); got != tc.want {
			t.Errorf("PlanLimit(%q): expected %d, got %d", tc.plan, tc.want, got)
		}
	}
}
