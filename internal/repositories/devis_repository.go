package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"mariageBack/internal/models"
)

type DevisRepository struct {
	DB *sql.DB
}

func (r *DevisRepository) CreateDevis(ctx context.Context, devis models.Devis) (models.Devis, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Devis{}, err
	}
	defer tx.Rollback()

	devis.ID = uuid.New()
	devis.Status = models.DevisStatusDraft
	if devis.Currency == "" {
		devis.Currency = "EUR"
	}
	total := 0.0
	for _, item := range devis.Items {
		total += item.LineTotal()
	}
	devis.TotalHT = total

	query := `
INSERT INTO devis (id, prestataire_id, couple_id, status, total_ht, currency, valid_until, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query,
		devis.ID, devis.PrestataireID, devis.CoupleID, devis.Status,
		devis.TotalHT, devis.Currency, devis.ValidUntil,
	).Scan(&devis.CreatedAt)
	if err != nil {
		return models.Devis{}, err
	}

	for i, item := range devis.Items {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO devis_items (devis_id, description, quantity, unit_price) VALUES ($1, $2, $3, $4) RETURNING id`,
			devis.ID, item.Description, item.Quantity, item.UnitPrice,
		).Scan(&devis.Items[i].ID)
		if err != nil {
			return models.Devis{}, err
		}
		devis.Items[i].DevisID = devis.ID
	}

	if err = tx.Commit(); err != nil {
		return models.Devis{}, err
	}
	return devis, nil
}

func (r *DevisRepository) GetDevisByID(ctx context.Context, id uuid.UUID) (models.Devis, error) {
	var devis models.Devis
	query := `
		SELECT id, prestataire_id, couple_id, status, total_ht, currency,
		       valid_until, converted_at, created_at, updated_at
		FROM devis WHERE id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&devis.ID, &devis.PrestataireID, &devis.CoupleID, &devis.Status,
		&devis.TotalHT, &devis.Currency, &devis.ValidUntil, &devis.ConvertedAt,
		&devis.CreatedAt, &devis.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Devis{}, models.ErrDevisNotFound
	}
	if err != nil {
		return models.Devis{}, err
	}

	itemRows, err := r.DB.QueryContext(ctx,
		`SELECT id, devis_id, description, quantity, unit_price FROM devis_items WHERE devis_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Devis{}, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item models.DevisItem
		if err := itemRows.Scan(&item.ID, &item.DevisID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return models.Devis{}, err
		}
		devis.Items = append(devis.Items, item)
	}
	return devis, itemRows.Err()
}

// UpdateStatus moves a devis between lifecycle states. The expected current
// status is part of the WHERE clause so concurrent transitions cannot race
// each other.
func (r *DevisRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.DevisStatus) error {
	query := `UPDATE devis SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	result, err := r.DB.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrDevisNotSent
	}
	return nil
}

func (r *DevisRepository) ListDevisByCouple(ctx context.Context, coupleID int) ([]models.Devis, error) {
	return r.listDevis(ctx, `couple_id`, coupleID)
}

func (r *DevisRepository) ListDevisByPrestataire(ctx context.Context, prestataireID int) ([]models.Devis, error) {
	return r.listDevis(ctx, `prestataire_id`, prestataireID)
}

func (r *DevisRepository) listDevis(ctx context.Context, column string, ownerID int) ([]models.Devis, error) {
	query := `
		SELECT id, prestataire_id, couple_id, status, total_ht, currency,
		       valid_until, converted_at, created_at, updated_at
		FROM devis
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Devis{}
	for rows.Next() {
		var devis models.Devis
		err := rows.Scan(
			&devis.ID, &devis.PrestataireID, &devis.CoupleID, &devis.Status,
			&devis.TotalHT, &devis.Currency, &devis.ValidUntil, &devis.ConvertedAt,
			&devis.CreatedAt, &devis.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, devis)
	}
	return list, rows.Err()
}
