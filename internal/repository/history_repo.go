package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mukbang-backend/internal/models"
)

type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

const historyColumns = `id, user_id, prompt_type, cat_id, style_id, emotion_id, scene_id, template_id,
	food_ids, custom_foods, generation_mode, image_prompt, video_prompt, explanation, tips,
	sound_suggestion, input_snapshot, created_at`

func scanHistory(row interface{ Scan(...any) error }) (*models.PromptHistory, error) {
	h := &models.PromptHistory{}
	err := row.Scan(
		&h.ID, &h.UserID, &h.PromptType, &h.CatID, &h.StyleID, &h.EmotionID, &h.SceneID, &h.TemplateID,
		&h.FoodIDs, &h.CustomFoods, &h.GenerationMode, &h.ImagePrompt, &h.VideoPrompt, &h.Explanation,
		&h.Tips, &h.SoundSuggestion, &h.InputSnapshot, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HistoryRepo) Create(ctx context.Context, h *models.PromptHistory) error {
	h.ID = uuid.New()
	if h.FoodIDs == nil {
		h.FoodIDs = []uuid.UUID{}
	}
	if h.CustomFoods == nil {
		h.CustomFoods = []string{}
	}
	if len(h.InputSnapshot) == 0 {
		h.InputSnapshot = []byte("{}")
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO prompts_history (id, user_id, prompt_type, cat_id, style_id, emotion_id, scene_id,
			template_id, food_ids, custom_foods, generation_mode, image_prompt, video_prompt,
			explanation, tips, sound_suggestion, input_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at`,
		h.ID, h.UserID, h.PromptType, h.CatID, h.StyleID, h.EmotionID, h.SceneID,
		h.TemplateID, h.FoodIDs, h.CustomFoods, h.GenerationMode, h.ImagePrompt, h.VideoPrompt,
		h.Explanation, h.Tips, h.SoundSuggestion, h.InputSnapshot,
	).Scan(&h.CreatedAt)
}

// ListByUser returns a page of the user's history, newest first, along with
// the total row count for pagination.
func (r *HistoryRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.PromptHistory, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM prompts_history WHERE user_id = $1", userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+historyColumns+` FROM prompts_history
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]*models.PromptHistory, 0)
	for rows.Next() {
		h, scanErr := scanHistory(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		entries = append(entries, h)
	}
	return entries, total, rows.Err()
}

// GetByID scopes by user so one user cannot read another's history.
func (r *HistoryRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PromptHistory, error) {
	return scanHistory(r.pool.QueryRow(ctx,
		`SELECT `+historyColumns+` FROM prompts_history WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *HistoryRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM prompts_history WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
