package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mariageBack/internal/models"
)

type FactureRepository struct {
	DB *sql.DB
}

func (r *FactureRepository) ExistsForDevis(ctx context.Context, devisID uuid.UUID) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM factures WHERE devis_id = $1`, devisID).Scan(&count)
	return count > 0, err
}

// CreateFromDevis converts an accepted devis into its one facture. The insert
// and the devis converted_at stamp run in a single transaction, and the
// UNIQUE(devis_id) constraint on factures is the backstop against concurrent
// conversions: the loser of the race gets ErrFactureExists and nothing is
// written.
func (r *FactureRepository) CreateFromDevis(ctx context.Context, devis models.Devis, tvaRate float64, dueDate time.Time, onlinePayment bool) (models.Facture, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Facture{}, err
	}
	defer tx.Rollback()

	facture := models.Facture{
		ID:                   uuid.New(),
		DevisID:              devis.ID,
		PrestataireID:        devis.PrestataireID,
		CoupleID:             devis.CoupleID,
		Status:               models.FactureStatusSent,
		TotalHT:              devis.TotalHT,
		TVARate:              tvaRate,
		TotalTVA:             devis.TotalHT * tvaRate,
		Currency:             devis.Currency,
		OnlinePaymentEnabled: onlinePayment,
		DueDate:              dueDate,
	}
	facture.TotalTTC = facture.TotalHT + facture.TotalTVA
	facture.Number = fmt.Sprintf("FAC-%d-%.8s", time.Now().Year(), facture.ID)

	query := `
INSERT INTO factures (
	id, devis_id, prestataire_id, couple_id, number, status,
	total_ht, tva_rate, total_tva, total_ttc, amount_paid, currency,
	online_payment_enabled, due_date, issued_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13, NOW())
RETURNING issued_at
	`
	err = tx.QueryRowContext(ctx, query,
		facture.ID, facture.DevisID, facture.PrestataireID, facture.CoupleID,
		facture.Number, facture.Status,
		facture.TotalHT, facture.TVARate, facture.TotalTVA, facture.TotalTTC,
		facture.Currency, facture.OnlinePaymentEnabled, facture.DueDate,
	).Scan(&facture.IssuedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Facture{}, models.ErrFactureExists
		}
		return models.Facture{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE devis SET converted_at = NOW(), updated_at = NOW() WHERE id = $1`, devis.ID)
	if err != nil {
		return models.Facture{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Facture{}, err
	}
	return facture, nil
}

const factureColumns = `
	id, devis_id, prestataire_id, couple_id, number, status,
	total_ht, tva_rate, total_tva, total_ttc, amount_paid, currency,
	online_payment_enabled, due_date, issued_at, paid_at`

func scanFacture(scan func(dest ...interface{}) error) (models.Facture, error) {
	var f models.Facture
	err := scan(
		&f.ID, &f.DevisID, &f.PrestataireID, &f.CoupleID, &f.Number, &f.Status,
		&f.TotalHT, &f.TVARate, &f.TotalTVA, &f.TotalTTC, &f.AmountPaid, &f.Currency,
		&f.OnlinePaymentEnabled, &f.DueDate, &f.IssuedAt, &f.PaidAt,
	)
	return f, err
}

func (r *FactureRepository) GetFactureByID(ctx context.Context, id uuid.UUID) (models.Facture, error) {
	query := `SELECT ` + factureColumns + ` FROM factures WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	f, err := scanFacture(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Facture{}, models.ErrFactureNotFound
	}
	return f, err
}

func (r *FactureRepository) ListFacturesByCouple(ctx context.Context, coupleID int) ([]models.Facture, error) {
	return r.listFactures(ctx, `couple_id`, coupleID)
}

func (r *FactureRepository) ListFacturesByPrestataire(ctx context.Context, prestataireID int) ([]models.Facture, error) {
	return r.listFactures(ctx, `prestataire_id`, prestataireID)
}

func (r *FactureRepository) listFactures(ctx context.Context, column string, ownerID int) ([]models.Facture, error) {
	query := `SELECT ` + factureColumns + ` FROM factures WHERE ` + column + ` = $1 ORDER BY issued_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factures := []models.Facture{}
	for rows.Next() {
		f, err := scanFacture(rows.Scan)
		if err != nil {
			return nil, err
		}
		factures = append(factures, f)
	}
	return factures, rows.Err()
}

// SyncOverdue flips every still-collectible sent facture whose due date has
// passed to overdue and reports how many rows changed. Running it again
// without newly elapsed due dates touches nothing, so callers may invoke it
// as often as they like.
func (r *FactureRepository) SyncOverdue(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE factures
		SET status = 'overdue'
		WHERE status = 'sent' AND due_date < $1 AND amount_paid < total_ttc
	`
	result, err := r.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

// RecordPayment adds to amount_paid and settles the facture in the same
// statement once the total is covered.
func (r *FactureRepository) RecordPayment(ctx context.Context, id uuid.UUID, amount float64, now time.Time) (models.Facture, error) {
	query := `
		UPDATE factures
		SET amount_paid = amount_paid + $2,
		    status = CASE WHEN amount_paid + $2 >= total_ttc THEN 'paid' ELSE status END,
		    paid_at = CASE WHEN amount_paid + $2 >= total_ttc THEN $3 ELSE paid_at END
		WHERE id = $1
		RETURNING ` + factureColumns + `
	`
	row := r.DB.QueryRowContext(ctx, query, id, amount, now)
	f, err := scanFacture(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Facture{}, models.ErrFactureNotFound
	}
	return f, err
}
