package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mukbang-backend/internal/models"
)

// CatalogRepo covers the four keyword catalogs (styles, foods, emotions,
// scenes). Reads validate each row at the boundary so malformed keyword
// strings never reach the instruction builder.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// Visual styles

const styleColumns = `id, name, name_en, description, prompt_keywords, example_prompt, thumbnail_url,
	recommended_for, sort_order, is_active, is_premium, use_count, created_at, updated_at`

func scanStyle(row interface{ Scan(...any) error }) (*models.VisualStyle, error) {
	s := &models.VisualStyle{}
	err := row.Scan(
		&s.ID, &s.Name, &s.NameEn, &s.Description, &s.PromptKeywords, &s.ExamplePrompt, &s.ThumbnailURL,
		&s.RecommendedFor, &s.SortOrder, &s.IsActive, &s.IsPremium, &s.UseCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("malformed row: %w", err)
	}
	return s, nil
}

func (r *CatalogRepo) GetStyleByID(ctx context.Context, id uuid.UUID) (*models.VisualStyle, error) {
	return scanStyle(r.pool.QueryRow(ctx, `SELECT `+styleColumns+` FROM visual_styles WHERE id = $1`, id))
}

func (r *CatalogRepo) ListStyles(ctx context.Context, activeOnly bool) ([]*models.VisualStyle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+styleColumns+` FROM visual_styles WHERE NOT $1 OR is_active ORDER BY sort_order, created_at`,
		activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	styles := make([]*models.VisualStyle, 0)
	for rows.Next() {
		s, scanErr := scanStyle(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		styles = append(styles, s)
	}
	return styles, rows.Err()
}

func (r *CatalogRepo) CreateStyle(ctx context.Context, s *models.VisualStyle) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO visual_styles (id, name, name_en, description, prompt_keywords, example_prompt,
			thumbnail_url, recommended_for, sort_order, is_active, is_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.NameEn, s.Description, s.PromptKeywords, s.ExamplePrompt,
		s.ThumbnailURL, s.RecommendedFor, s.SortOrder, s.IsActive, s.IsPremium,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *CatalogRepo) UpdateStyle(ctx context.Context, s *models.VisualStyle) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE visual_styles SET name = $1, name_en = $2, description = $3, prompt_keywords = $4,
			example_prompt = $5, thumbnail_url = $6, recommended_for = $7, sort_order = $8,
			is_active = $9, is_premium = $10, updated_at = NOW()
		WHERE id = $11`,
		s.Name, s.NameEn, s.Description, s.PromptKeywords,
		s.ExamplePrompt, s.ThumbnailURL, s.RecommendedFor, s.SortOrder,
		s.IsActive, s.IsPremium, s.ID,
	)
	return err
}

func (r *CatalogRepo) DeleteStyle(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM visual_styles WHERE id = $1", id)
	return err
}

func (r *CatalogRepo) IncrementStyleUse(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE visual_styles SET use_count = use_count + 1 WHERE id = $1", id)
	return err
}

// Foods

const foodColumns = `id, name, name_en, category, heat_level, difficulty, visual_keywords, texture_keywords,
	sound_keywords, emoji, thumbnail_url, is_premium, is_active, sort_order, use_count, created_at, updated_at`

func scanFood(row interface{ Scan(...any) error }) (*models.Food, error) {
	f := &models.Food{}
	err := row.Scan(
		&f.ID, &f.Name, &f.NameEn, &f.Category, &f.HeatLevel, &f.Difficulty, &f.VisualKeywords, &f.TextureKeywords,
		&f.SoundKeywords, &f.Emoji, &f.ThumbnailURL, &f.IsPremium, &f.IsActive, &f.SortOrder, &f.UseCount,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("malformed row: %w", err)
	}
	return f, nil
}

func (r *CatalogRepo) GetFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	return scanFood(r.pool.QueryRow(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = $1`, id))
}

// GetFoodsByIDs keeps the caller's selection order.
func (r *CatalogRepo) GetFoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Food, error) {
	if len(ids) == 0 {
		return []*models.Food{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*models.Food, len(ids))
	for rows.Next() {
		f, scanErr := scanFood(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		byID[f.ID] = f
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	foods := make([]*models.Food, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			foods = append(foods, f)
		}
	}
	return foods, nil
}

func (r *CatalogRepo) ListFoods(ctx context.Context, activeOnly bool) ([]*models.Food, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE NOT $1 OR is_active ORDER BY sort_order, created_at`,
		activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := make([]*models.Food, 0)
	for rows.Next() {
		f, scanErr := scanFood(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (r *CatalogRepo) CreateFood(ctx context.Context, f *models.Food) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO foods (id, name, name_en, category, heat_level, difficulty, visual_keywords,
			texture_keywords, sound_keywords, emoji, thumbnail_url, is_premium, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		f.ID, f.Name, f.NameEn, f.Category, f.HeatLevel, f.Difficulty, f.VisualKeywords,
		f.TextureKeywords, f.SoundKeywords, f.Emoji, f.ThumbnailURL, f.IsPremium, f.IsActive, f.SortOrder,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
}

func (r *CatalogRepo) UpdateFood(ctx context.Context, f *models.Food) error {
	if err := f.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE foods SET name = $1, name_en = $2, category = $3, heat_level = $4, difficulty = $5,
			visual_keywords = $6, texture_keywords = $7, sound_keywords = $8, emoji = $9,
			thumbnail_url = $10, is_premium = $11, is_active = $12, sort_order = $13, updated_at = NOW()
		WHERE id = $14`,
		f.Name, f.NameEn, f.Category, f.HeatLevel, f.Difficulty,
		f.VisualKeywords, f.TextureKeywords, f.SoundKeywords, f.Emoji,
		f.ThumbnailURL, f.IsPremium, f.IsActive, f.SortOrder, f.ID,
	)
	return err
}

func (r *CatalogRepo) DeleteFood(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM foods WHERE id = $1", id)
	return err
}

func (r *CatalogRepo) IncrementFoodUse(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, "UPDATE foods SET use_count = use_count + 1 WHERE id = ANY($1)", ids)
	return err
}

// Emotions

const emotionColumns = `id, name, name_en, category, description, action_keywords, facial_expression,
	body_language, emoji, intensity, is_active, sort_order, use_count, created_at, updated_at`

func scanEmotion(row interface{ Scan(...any) error }) (*models.Emotion, error) {
	e := &models.Emotion{}
	err := row.Scan(
		&e.ID, &e.Name, &e.NameEn, &e.Category, &e.Description, &e.ActionKeywords, &e.FacialExpression,
		&e.BodyLanguage, &e.Emoji, &e.Intensity, &e.IsActive, &e.SortOrder, &e.UseCount,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("malformed row: %w", err)
	}
	return e, nil
}

func (r *CatalogRepo) GetEmotionByID(ctx context.Context, id uuid.UUID) (*models.Emotion, error) {
	return scanEmotion(r.pool.QueryRow(ctx, `SELECT `+emotionColumns+` FROM emotions WHERE id = $1`, id))
}

func (r *CatalogRepo) ListEmotions(ctx context.Context, activeOnly bool) ([]*models.Emotion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+emotionColumns+` FROM emotions WHERE NOT $1 OR is_active ORDER BY sort_order, created_at`,
		activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emotions := make([]*models.Emotion, 0)
	for rows.Next() {
		e, scanErr := scanEmotion(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		emotions = append(emotions, e)
	}
	return emotions, rows.Err()
}

func (r *CatalogRepo) CreateEmotion(ctx context.Context, e *models.Emotion) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO emotions (id, name, name_en, category, description, action_keywords,
			facial_expression, body_language, emoji, intensity, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		e.ID, e.Name, e.NameEn, e.Category, e.Description, e.ActionKeywords,
		e.FacialExpression, e.BodyLanguage, e.Emoji, e.Intensity, e.IsActive, e.SortOrder,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *CatalogRepo) UpdateEmotion(ctx context.Context, e *models.Emotion) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE emotions SET name = $1, name_en = $2, category = $3, description = $4,
			action_keywords = $5, facial_expression = $6, body_language = $7, emoji = $8,
			intensity = $9, is_active = $10, sort_order = $11, updated_at = NOW()
		WHERE id = $12`,
		e.Name, e.NameEn, e.Category, e.Description,
		e.ActionKeywords, e.FacialExpression, e.BodyLanguage, e.Emoji,
		e.Intensity, e.IsActive, e.SortOrder, e.ID,
	)
	return err
}

func (r *CatalogRepo) DeleteEmotion(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM emotions WHERE id = $1", id)
	return err
}

func (r *CatalogRepo) IncrementEmotionUse(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE emotions SET use_count = use_count + 1 WHERE id = $1", id)
	return err
}

// Scenes

const sceneColumns = `id, name, name_en, description, visual_keywords, lighting_keywords, camera_angle,
	atmosphere, thumbnail_url, is_premium, is_active, sort_order, use_count, created_at, updated_at`

func scanScene(row interface{ Scan(...any) error }) (*models.Scene, error) {
	s := &models.Scene{}
	err := row.Scan(
		&s.ID, &s.Name, &s.NameEn, &s.Description, &s.VisualKeywords, &s.LightingKeywords, &s.CameraAngle,
		&s.Atmosphere, &s.ThumbnailURL, &s.IsPremium, &s.IsActive, &s.SortOrder, &s.UseCount,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("malformed row: %w", err)
	}
	return s, nil
}

func (r *CatalogRepo) GetSceneByID(ctx context.Context, id uuid.UUID) (*models.Scene, error) {
	return scanScene(r.pool.QueryRow(ctx, `SELECT `+sceneColumns+` FROM scenes WHERE id = $1`, id))
}

func (r *CatalogRepo) ListScenes(ctx context.Context, activeOnly bool) ([]*models.Scene, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sceneColumns+` FROM scenes WHERE NOT $1 OR is_active ORDER BY sort_order, created_at`,
		activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := make([]*models.Scene, 0)
	for rows.Next() {
		s, scanErr := scanScene(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		scenes = append(scenes, s)
	}
	return scenes, rows.Err()
}

func (r *CatalogRepo) CreateScene(ctx context.Context, s *models.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO scenes (id, name, name_en, description, visual_keywords, lighting_keywords,
			camera_angle, atmosphere, thumbnail_url, is_premium, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.NameEn, s.Description, s.VisualKeywords, s.LightingKeywords,
		s.CameraAngle, s.Atmosphere, s.ThumbnailURL, s.IsPremium, s.IsActive, s.SortOrder,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *CatalogRepo) UpdateScene(ctx context.Context, s *models.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE scenes SET name = $1, name_en = $2, description = $3, visual_keywords = $4,
			lighting_keywords = $5, camera_angle = $6, atmosphere = $7, thumbnail_url = $8,
			is_premium = $9, is_active = $10, sort_order = $11, updated_at = NOW()
		WHERE id = $12`,
		s.Name, s.NameEn, s.Description, s.VisualKeywords,
		s.LightingKeywords, s.CameraAngle, s.Atmosphere, s.ThumbnailURL,
		s.IsPremium, s.IsActive, s.SortOrder, s.ID,
	)
	return err
}

func (r *CatalogRepo) DeleteScene(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM scenes WHERE id = $1", id)
	return err
}

func (r *CatalogRepo) IncrementSceneUse(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE scenes SET use_count = use_count + 1 WHERE id = $1", id)
	return err
}
