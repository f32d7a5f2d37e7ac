package repositories

import (
	"context"
	"database/sql"
	"errors"

	"mariageBack/internal/models"
)

type AvailabilityRepository struct {
	DB *sql.DB
}

func (r *AvailabilityRepository) CreateSlot(ctx context.Context, slot models.AvailabilitySlot) (models.AvailabilitySlot, error) {
	query := `
INSERT INTO provider_availability (prestataire_id, start_date, end_date, status, note, is_public, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		slot.PrestataireID, slot.StartDate, slot.EndDate, slot.Status, slot.Note, slot.IsPublic,
	).Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.AvailabilitySlot{}, models.ErrPrestataireNotFound
		}
		return models.AvailabilitySlot{}, err
	}
	return slot, nil
}

func (r *AvailabilityRepository) GetSlotByID(ctx context.Context, id int) (models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	query := `
		SELECT id, prestataire_id, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       status, note, is_public, created_at, updated_at
		FROM provider_availability WHERE id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&slot.ID, &slot.PrestataireID, &slot.StartDate, &slot.EndDate,
		&slot.Status, &slot.Note, &slot.IsPublic, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AvailabilitySlot{}, models.ErrSlotNotFound
	}
	return slot, err
}

func (r *AvailabilityRepository) GetSlotsByPrestataire(ctx context.Context, prestataireID int) ([]models.AvailabilitySlot, error) {
	query := `
		SELECT id, prestataire_id, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       status, note, is_public, created_at, updated_at
		FROM provider_availability
		WHERE prestataire_id = $1
		ORDER BY start_date
	`
	return r.querySlots(ctx, query, prestataireID)
}

// GetPublicSlotsInWindow runs the interval-overlap test against public rows
// only: start_date <= to AND end_date >= from.
func (r *AvailabilityRepository) GetPublicSlotsInWindow(ctx context.Context, prestataireID int, from, to string) ([]models.AvailabilitySlot, error) {
	query := `
		SELECT id, prestataire_id, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       status, note, is_public, created_at, updated_at
		FROM provider_availability
		WHERE prestataire_id = $1 AND is_public = TRUE
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`
	return r.querySlots(ctx, query, prestataireID, from, to)
}

func (r *AvailabilityRepository) querySlots(ctx context.Context, query string, args ...interface{}) ([]models.AvailabilitySlot, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []models.AvailabilitySlot{}
	for rows.Next() {
		var slot models.AvailabilitySlot
		err := rows.Scan(
			&slot.ID, &slot.PrestataireID, &slot.StartDate, &slot.EndDate,
			&slot.Status, &slot.Note, &slot.IsPublic, &slot.CreatedAt, &slot.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *AvailabilityRepository) UpdateSlot(ctx context.Context, slot models.AvailabilitySlot) error {
	query := `
		UPDATE provider_availability
		SET start_date = $1, end_date = $2, status = $3, note = $4, is_public = $5, updated_at = NOW()
		WHERE id = $6 AND prestataire_id = $7
	`
	result, err := r.DB.ExecContext(ctx, query,
		slot.StartDate, slot.EndDate, slot.Status, slot.Note, slot.IsPublic,
		slot.ID, slot.PrestataireID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrSlotNotFound
	}
	return nil
}

func (r *AvailabilityRepository) DeleteSlot(ctx context.Context, id, prestataireID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM provider_availability WHERE id = $1 AND prestataire_id = $2`, id, prestataireID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrSlotNotFound
	}
	return nil
}
