package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mukbang-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const profileColumns = `id, email, password_hash, nickname, avatar_url, plan_type, plan_expires_at,
	daily_usage, usage_reset_at, total_generations, default_style_id, preferred_template_id,
	is_admin, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Nickname, &p.AvatarURL, &p.PlanType, &p.PlanExpiresAt,
		&p.DailyUsage, &p.UsageResetAt, &p.TotalGenerations, &p.DefaultStyleID, &p.PreferredTemplateID,
		&p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *UserRepo) Create(ctx context.Context, p *models.UserProfile) error {
	p.ID = uuid.New()
	p.PlanType = models.PlanFree

	query := `
		INSERT INTO user_profiles (id, email, password_hash, nickname, plan_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING usage_reset_at, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.Nickname, p.PlanType,
	).Scan(&p.UsageResetAt, &p.CreatedAt, &p.UpdatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE email = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepo) Update(ctx context.Context, p *models.UserProfile) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET nickname = $1, avatar_url = $2, default_style_id = $3,
		 preferred_template_id = $4, updated_at = NOW() WHERE id = $5`,
		p.Nickname, p.AvatarURL, p.DefaultStyleID, p.PreferredTemplateID, p.ID,
	)
	return err
}

func (r *UserRepo) UpdatePlan(ctx context.Context, userID uuid.UUID, planType string, expiresAt *time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET plan_type = $1, plan_expires_at = $2, updated_at = NOW() WHERE id = $3`,
		planType, expiresAt, userID,
	)
	return err
}

func (r *UserRepo) SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET is_admin = $1, updated_at = NOW() WHERE id = $2`, isAdmin, userID)
	return err
}

func (r *UserRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.UserProfile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_profiles WHERE $1 = '' OR email ILIKE '%' || $1 || '%'`,
		search,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM user_profiles
		 WHERE $1 = '' OR email ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		search, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := make([]*models.UserProfile, 0)
	for rows.Next() {
		p, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

// ConsumeDailyUsage takes one generation slot in a single conditional update.
// When reset is true the stale counter restarts at 1 and usage_reset_at moves
// to now. limit < 0 means unlimited. Returns pgx.ErrNoRows when a concurrent
// request took the last slot between the caller's read and this update.
func (r *UserRepo) ConsumeDailyUsage(ctx context.Context, userID uuid.UUID, limit int, reset bool) (int, error) {
	var newUsage int
	err := r.pool.QueryRow(ctx, `
		UPDATE user_profiles
		SET daily_usage = CASE WHEN $2 THEN 1 ELSE daily_usage + 1 END,
		    usage_reset_at = CASE WHEN $2 THEN NOW() ELSE usage_reset_at END,
		    total_generations = total_generations + 1,
		    updated_at = NOW()
		WHERE id = $1 AND ($2 OR $3 < 0 OR daily_usage < $3)
		RETURNING daily_usage
	`, userID, reset, limit).Scan(&newUsage)
	if err != nil {
		return 0, err
	}
	return newUsage, nil
}
