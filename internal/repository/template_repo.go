package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mukbang-backend/internal/models"
)

type TemplateRepo struct {
	pool *pgxpool.Pool
}

func NewTemplateRepo(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

const templateColumns = `id, name, description, version, image_prompt_template, video_prompt_template,
	system_prompt, include_tips, include_sound_suggestion, tips_template, min_plan_type, is_active,
	is_default, use_count, success_rate, created_by, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.PromptTemplate, error) {
	t := &models.PromptTemplate{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Version, &t.ImagePromptTemplate, &t.VideoPromptTemplate,
		&t.SystemPrompt, &t.IncludeTips, &t.IncludeSoundSuggestion, &t.TipsTemplate, &t.MinPlanType,
		&t.IsActive, &t.IsDefault, &t.UseCount, &t.SuccessRate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID only returns active templates; callers treat an inactive
// template the same as a missing one.
func (r *TemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PromptTemplate, error) {
	return scanTemplate(r.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM prompt_templates WHERE id = $1 AND is_active`, id))
}

func (r *TemplateRepo) GetDefault(ctx context.Context) (*models.PromptTemplate, error) {
	return scanTemplate(r.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM prompt_templates WHERE is_default AND is_active LIMIT 1`))
}

func (r *TemplateRepo) List(ctx context.Context, activeOnly bool) ([]*models.PromptTemplate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+templateColumns+` FROM prompt_templates WHERE NOT $1 OR is_active ORDER BY created_at DESC`,
		activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*models.PromptTemplate, 0)
	for rows.Next() {
		t, scanErr := scanTemplate(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepo) Create(ctx context.Context, t *models.PromptTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO prompt_templates (id, name, description, version, image_prompt_template,
			video_prompt_template, system_prompt, include_tips, include_sound_suggestion,
			tips_template, min_plan_type, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Description, t.Version, t.ImagePromptTemplate,
		t.VideoPromptTemplate, t.SystemPrompt, t.IncludeTips, t.IncludeSoundSuggestion,
		t.TipsTemplate, t.MinPlanType, t.IsActive, t.CreatedBy,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *TemplateRepo) Update(ctx context.Context, t *models.PromptTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE prompt_templates SET name = $1, description = $2, version = $3,
			image_prompt_template = $4, video_prompt_template = $5, system_prompt = $6,
			include_tips = $7, include_sound_suggestion = $8, tips_template = $9,
			min_plan_type = $10, is_active = $11, updated_at = NOW()
		WHERE id = $12`,
		t.Name, t.Description, t.Version,
		t.ImagePromptTemplate, t.VideoPromptTemplate, t.SystemPrompt,
		t.IncludeTips, t.IncludeSoundSuggestion, t.TipsTemplate,
		t.MinPlanType, t.IsActive, t.ID,
	)
	return err
}

func (r *TemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM prompt_templates WHERE id = $1", id)
	return err
}

// SetDefault clears the current default and promotes the given template in
// one transaction. The partial unique index on is_default backs this up.
func (r *TemplateRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE prompt_templates SET is_default = FALSE WHERE is_default"); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		"UPDATE prompt_templates SET is_default = TRUE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *TemplateRepo) IncrementUse(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE prompt_templates SET use_count = use_count + 1 WHERE id = $1", id)
	return err
}
