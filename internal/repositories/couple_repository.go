package repositories

import (
	"context"
	"database/sql"
	"errors"

	"mariageBack/internal/models"
)

type CoupleRepository struct {
	DB *sql.DB
}

const coupleColumns = `
	id, user_id, to_char(wedding_date, 'YYYY-MM-DD'), wedding_city, wedding_region,
	latitude, longitude, budget_min, budget_max, guest_count,
	cultural_backgrounds, languages, religions, style_preferences, dietary_needs,
	category_priorities, category_budgets,
	date_flexible, budget_flexible, location_flexible, is_active, created_at, updated_at`

func (r *CoupleRepository) scanCouple(row *sql.Row) (models.CoupleProfile, error) {
	var c models.CoupleProfile
	var cultural, languages, religions, styles, dietary, priorities, budgets []byte
	err := row.Scan(
		&c.ID, &c.UserID, &c.WeddingDate, &c.WeddingCity, &c.WeddingRegion,
		&c.Latitude, &c.Longitude, &c.BudgetMin, &c.BudgetMax, &c.GuestCount,
		&cultural, &languages, &religions, &styles, &dietary,
		&priorities, &budgets,
		&c.DateFlexible, &c.BudgetFlexible, &c.LocationFlexible, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CoupleProfile{}, models.ErrCoupleNotFound
	}
	if err != nil {
		return models.CoupleProfile{}, err
	}

	pairs := []struct {
		raw []byte
		dst interface{}
	}{
		{cultural, &c.CulturalBackgrounds},
		{languages, &c.Languages},
		{religions, &c.Religions},
		{styles, &c.StylePreferences},
		{dietary, &c.DietaryNeeds},
		{priorities, &c.CategoryPriorities},
		{budgets, &c.CategoryBudgets},
	}
	for _, pair := range pairs {
		if err := unmarshalJSON(pair.raw, pair.dst); err != nil {
			return models.CoupleProfile{}, err
		}
	}
	return c, nil
}

func (r *CoupleRepository) coupleArgs(c models.CoupleProfile) ([]interface{}, error) {
	jsonFields := make([]interface{}, 0, 7)
	for _, v := range []interface{}{
		c.CulturalBackgrounds, c.Languages, c.Religions,
		c.StylePreferences, c.DietaryNeeds,
		c.CategoryPriorities, c.CategoryBudgets,
	} {
		raw, err := marshalJSON(v)
		if err != nil {
			return nil, err
		}
		jsonFields = append(jsonFields, raw)
	}

	args := []interface{}{
		c.UserID, c.WeddingDate, c.WeddingCity, c.WeddingRegion,
		c.Latitude, c.Longitude, c.BudgetMin, c.BudgetMax, c.GuestCount,
	}
	args = append(args, jsonFields...)
	args = append(args, c.DateFlexible, c.BudgetFlexible, c.LocationFlexible)
	return args, nil
}

func (r *CoupleRepository) CreateCouple(ctx context.Context, c models.CoupleProfile) (models.CoupleProfile, error) {
	args, err := r.coupleArgs(c)
	if err != nil {
		return models.CoupleProfile{}, err
	}
	query := `
INSERT INTO couple_profiles (
	user_id, wedding_date, wedding_city, wedding_region, latitude, longitude,
	budget_min, budget_max, guest_count,
	cultural_backgrounds, languages, religions, style_preferences, dietary_needs,
	category_priorities, category_budgets,
	date_flexible, budget_flexible, location_flexible, is_active, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, TRUE, NOW())
RETURNING id, created_at
	`
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return models.CoupleProfile{}, err
	}
	c.IsActive = true
	return c, nil
}

func (r *CoupleRepository) GetCoupleByID(ctx context.Context, id int) (models.CoupleProfile, error) {
	query := `SELECT ` + coupleColumns + ` FROM couple_profiles WHERE id = $1`
	return r.scanCouple(r.DB.QueryRowContext(ctx, query, id))
}

func (r *CoupleRepository) GetCoupleByUserID(ctx context.Context, userID int) (models.CoupleProfile, error) {
	query := `SELECT ` + coupleColumns + ` FROM couple_profiles WHERE user_id = $1`
	return r.scanCouple(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *CoupleRepository) UpdateCouple(ctx context.Context, c models.CoupleProfile) error {
	args, err := r.coupleArgs(c)
	if err != nil {
		return err
	}
	args = append(args, c.ID)
	query := `
UPDATE couple_profiles SET
	user_id = $1, wedding_date = $2, wedding_city = $3, wedding_region = $4,
	latitude = $5, longitude = $6, budget_min = $7, budget_max = $8, guest_count = $9,
	cultural_backgrounds = $10, languages = $11, religions = $12,
	style_preferences = $13, dietary_needs = $14,
	category_priorities = $15, category_budgets = $16,
	date_flexible = $17, budget_flexible = $18, location_flexible = $19,
	updated_at = NOW()
WHERE id = $20
	`
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// DeactivateCouple flips is_active off. Couple profiles are never deleted.
func (r *CoupleRepository) DeactivateCouple(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE couple_profiles SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCoupleNotFound
	}
	return nil
}

func (r *CoupleRepository) UpsertBillingInfo(ctx context.Context, info models.CoupleBillingInfo) (models.CoupleBillingInfo, error) {
	query := `
INSERT INTO couple_billing_info (couple_id, legal_name, address_line, postal_code, city, country, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
ON CONFLICT (couple_id) DO UPDATE SET
	legal_name = $2, address_line = $3, postal_code = $4, city = $5, country = $6, updated_at = NOW()
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		info.CoupleID, info.LegalName, info.AddressLine, info.PostalCode, info.City, info.Country,
	).Scan(&info.ID, &info.CreatedAt)
	return info, err
}

func (r *CoupleRepository) HasBillingInfo(ctx context.Context, coupleID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM couple_billing_info WHERE couple_id = $1`, coupleID).Scan(&count)
	return count > 0, err
}
