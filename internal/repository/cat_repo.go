package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mukbang-backend/internal/models"
)

type CatRepo struct {
	pool *pgxpool.Pool
}

func NewCatRepo(pool *pgxpool.Pool) *CatRepo {
	return &CatRepo{pool: pool}
}

const catColumns = `id, user_id, name, breed, breed_en, body_type, body_type_en, fur_color, fur_color_en,
	fur_texture, fur_texture_en, special_features, special_features_en, personality, personality_en,
	default_style_id, avatar_url, is_preset, is_public, use_count, created_at, updated_at`

func scanCat(row interface{ Scan(...any) error }) (*models.Cat, error) {
	c := &models.Cat{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Breed, &c.BreedEn, &c.BodyType, &c.BodyTypeEn, &c.FurColor, &c.FurColorEn,
		&c.FurTexture, &c.FurTextureEn, &c.SpecialFeatures, &c.SpecialFeaturesEn, &c.Personality, &c.PersonalityEn,
		&c.DefaultStyleID, &c.AvatarURL, &c.IsPreset, &c.IsPublic, &c.UseCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cat, error) {
	query := `SELECT ` + catColumns + ` FROM cats WHERE id = $1`
	return scanCat(r.pool.QueryRow(ctx, query, id))
}

// ListForUser returns presets plus the user's own cats, presets first.
func (r *CatRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Cat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+catColumns+` FROM cats
		 WHERE is_preset OR user_id = $1
		 ORDER BY is_preset DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]*models.Cat, 0)
	for rows.Next() {
		c, scanErr := scanCat(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CatRepo) Create(ctx context.Context, c *models.Cat) error {
	id := uuid.New()
	c.ID = &id

	query := `
		INSERT INTO cats (id, user_id, name, breed, breed_en, body_type, body_type_en, fur_color, fur_color_en,
			fur_texture, fur_texture_en, special_features, special_features_en, personality, personality_en,
			default_style_id, avatar_url, is_preset, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.UserID, c.Name, c.Breed, c.BreedEn, c.BodyType, c.BodyTypeEn, c.FurColor, c.FurColorEn,
		c.FurTexture, c.FurTextureEn, c.SpecialFeatures, c.SpecialFeaturesEn, c.Personality, c.PersonalityEn,
		c.DefaultStyleID, c.AvatarURL, c.IsPreset, c.IsPublic,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *CatRepo) Update(ctx context.Context, c *models.Cat) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE cats SET name = $1, breed = $2, breed_en = $3, body_type = $4, body_type_en = $5,
			fur_color = $6, fur_color_en = $7, fur_texture = $8, fur_texture_en = $9,
			special_features = $10, special_features_en = $11, personality = $12, personality_en = $13,
			default_style_id = $14, avatar_url = $15, is_public = $16, updated_at = NOW()
		WHERE id = $17`,
		c.Name, c.Breed, c.BreedEn, c.BodyType, c.BodyTypeEn,
		c.FurColor, c.FurColorEn, c.FurTexture, c.FurTextureEn,
		c.SpecialFeatures, c.SpecialFeaturesEn, c.Personality, c.PersonalityEn,
		c.DefaultStyleID, c.AvatarURL, c.IsPublic, c.ID,
	)
	return err
}

// Delete removes a user-owned cat. Presets and other users' cats are
// untouched.
func (r *CatRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM cats WHERE id = $1 AND user_id = $2 AND NOT is_preset", id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CatRepo) IncrementUse(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE cats SET use_count = use_count + 1 WHERE id = $1", id)
	return err
}
