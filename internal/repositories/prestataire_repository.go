package repositories

import (
	"context"
	"database/sql"
	"errors"

	"mariageBack/internal/models"
)

type PrestataireRepository struct {
	DB *sql.DB
}

const prestataireColumns = `
	id, user_id, business_name, category, description, service_locations, region,
	price_min, price_max, capacity_min, capacity_max,
	cultural_specialties, languages, dietary_options, style_tags,
	rating, portfolio_images, is_ambassador, created_at, updated_at`

func scanPrestataire(scan func(dest ...interface{}) error) (models.PrestataireProfile, error) {
	var p models.PrestataireProfile
	var locations, cultural, languages, dietary, styles, portfolio []byte
	err := scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.Category, &p.Description, &locations, &p.Region,
		&p.PriceMin, &p.PriceMax, &p.CapacityMin, &p.CapacityMax,
		&cultural, &languages, &dietary, &styles,
		&p.Rating, &portfolio, &p.IsAmbassador, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.PrestataireProfile{}, err
	}

	pairs := []struct {
		raw []byte
		dst interface{}
	}{
		{locations, &p.ServiceLocations},
		{cultural, &p.CulturalSpecialties},
		{languages, &p.Languages},
		{dietary, &p.DietaryOptions},
		{styles, &p.StyleTags},
		{portfolio, &p.PortfolioImages},
	}
	for _, pair := range pairs {
		if err := unmarshalJSON(pair.raw, pair.dst); err != nil {
			return models.PrestataireProfile{}, err
		}
	}
	return p, nil
}

func (r *PrestataireRepository) prestataireArgs(p models.PrestataireProfile) ([]interface{}, error) {
	jsonFields := make([]interface{}, 0, 6)
	for _, v := range []interface{}{
		p.ServiceLocations, p.CulturalSpecialties, p.Languages,
		p.DietaryOptions, p.StyleTags, p.PortfolioImages,
	} {
		raw, err := marshalJSON(v)
		if err != nil {
			return nil, err
		}
		jsonFields = append(jsonFields, raw)
	}

	args := []interface{}{p.UserID, p.BusinessName, p.Category, p.Description}
	args = append(args, jsonFields[0], p.Region, p.PriceMin, p.PriceMax, p.CapacityMin, p.CapacityMax)
	args = append(args, jsonFields[1], jsonFields[2], jsonFields[3], jsonFields[4], jsonFields[5])
	return args, nil
}

func (r *PrestataireRepository) CreatePrestataire(ctx context.Context, p models.PrestataireProfile) (models.PrestataireProfile, error) {
	args, err := r.prestataireArgs(p)
	if err != nil {
		return models.PrestataireProfile{}, err
	}
	query := `
INSERT INTO prestataire_profiles (
	user_id, business_name, category, description, service_locations, region,
	price_min, price_max, capacity_min, capacity_max,
	cultural_specialties, languages, dietary_options, style_tags, portfolio_images,
	rating, is_ambassador, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 0, FALSE, NOW())
RETURNING id, created_at
	`
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return models.PrestataireProfile{}, err
	}
	return p, nil
}

func (r *PrestataireRepository) GetPrestataireByID(ctx context.Context, id int) (models.PrestataireProfile, error) {
	query := `SELECT ` + prestataireColumns + ` FROM prestataire_profiles WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	p, err := scanPrestataire(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PrestataireProfile{}, models.ErrPrestataireNotFound
	}
	return p, err
}

func (r *PrestataireRepository) GetPrestataireByUserID(ctx context.Context, userID int) (models.PrestataireProfile, error) {
	query := `SELECT ` + prestataireColumns + ` FROM prestataire_profiles WHERE user_id = $1`
	row := r.DB.QueryRowContext(ctx, query, userID)
	p, err := scanPrestataire(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PrestataireProfile{}, models.ErrPrestataireNotFound
	}
	return p, err
}

func (r *PrestataireRepository) GetPrestatairesByCategory(ctx context.Context, category string) ([]models.PrestataireProfile, error) {
	query := `SELECT ` + prestataireColumns + `
		FROM prestataire_profiles
		WHERE category = $1
		ORDER BY rating DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.PrestataireProfile{}
	for rows.Next() {
		p, err := scanPrestataire(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *PrestataireRepository) UpdatePrestataire(ctx context.Context, p models.PrestataireProfile) error {
	args, err := r.prestataireArgs(p)
	if err != nil {
		return err
	}
	args = append(args, p.ID)
	query := `
UPDATE prestataire_profiles SET
	user_id = $1, business_name = $2, category = $3, description = $4,
	service_locations = $5, region = $6,
	price_min = $7, price_max = $8, capacity_min = $9, capacity_max = $10,
	cultural_specialties = $11, languages = $12, dietary_options = $13,
	style_tags = $14, portfolio_images = $15,
	updated_at = NOW()
WHERE id = $16
	`
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// RefreshRating recomputes the derived 0-5 average from reviews.
func (r *PrestataireRepository) RefreshRating(ctx context.Context, prestataireID int) error {
	query := `
UPDATE prestataire_profiles
SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE prestataire_id = $1), 0)
WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, prestataireID)
	return err
}

func (r *PrestataireRepository) SetAmbassador(ctx context.Context, prestataireID int, code string) error {
	query := `
UPDATE prestataire_profiles
SET is_ambassador = TRUE, referral_code = $2, updated_at = NOW()
WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, prestataireID, code)
	return err
}

// FindAmbassadorByCode resolves a referral code to the owning prestataire.
func (r *PrestataireRepository) FindAmbassadorByCode(ctx context.Context, code string) (int, error) {
	var id int
	query := `SELECT id FROM prestataire_profiles WHERE referral_code = $1 AND is_ambassador = TRUE`
	err := r.DB.QueryRowContext(ctx, query, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrReferralCodeNotFound
	}
	return id, err
}

func (r *PrestataireRepository) GetPublicPrestataire(ctx context.Context, id int) (models.PublicPrestataire, error) {
	var p models.PublicPrestataire
	query := `SELECT id, business_name, category FROM prestataire_profiles WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.BusinessName, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PublicPrestataire{}, models.ErrPrestataireNotFound
	}
	return p, err
}
