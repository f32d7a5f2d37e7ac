package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"mariageBack/internal/models"
)

type BillingConsentRepository struct {
	DB *sql.DB
}

func (r *BillingConsentRepository) CreateConsent(ctx context.Context, req models.BillingConsentRequest) (models.BillingConsentRequest, error) {
	req.ID = uuid.New()
	req.Status = models.ConsentStatusPending
	query := `
INSERT INTO billing_consent_requests (id, couple_id, prestataire_id, status, message, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		req.ID, req.CoupleID, req.PrestataireID, req.Status, req.Message, req.ExpiresAt,
	).Scan(&req.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.BillingConsentRequest{}, models.ErrCoupleNotFound
		}
		return models.BillingConsentRequest{}, err
	}
	return req, nil
}

func (r *BillingConsentRepository) GetConsentByID(ctx context.Context, id uuid.UUID) (models.BillingConsentRequest, error) {
	var req models.BillingConsentRequest
	query := `
		SELECT id, couple_id, prestataire_id, status, message, expires_at, responded_at, created_at
		FROM billing_consent_requests WHERE id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CoupleID, &req.PrestataireID, &req.Status, &req.Message,
		&req.ExpiresAt, &req.RespondedAt, &req.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BillingConsentRequest{}, models.ErrConsentNotFound
	}
	return req, err
}

// MarkResponded performs the single pending→approved|rejected transition.
// The WHERE status = 'pending' clause makes the transition atomic: a second
// responder finds zero affected rows and gets ErrConsentAlreadyProcessed.
func (r *BillingConsentRepository) MarkResponded(ctx context.Context, id uuid.UUID, status models.ConsentStatus, respondedAt time.Time) error {
	query := `
		UPDATE billing_consent_requests
		SET status = $2, responded_at = $3
		WHERE id = $1 AND status = 'pending'
	`
	result, err := r.DB.ExecContext(ctx, query, id, status, respondedAt)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrConsentAlreadyProcessed
	}
	return nil
}

func (r *BillingConsentRepository) ListConsentsByCouple(ctx context.Context, coupleID int) ([]models.BillingConsentRequest, error) {
	return r.listConsents(ctx, `couple_id`, coupleID)
}

func (r *BillingConsentRepository) ListConsentsByPrestataire(ctx context.Context, prestataireID int) ([]models.BillingConsentRequest, error) {
	return r.listConsents(ctx, `prestataire_id`, prestataireID)
}

func (r *BillingConsentRepository) listConsents(ctx context.Context, column string, ownerID int) ([]models.BillingConsentRequest, error) {
	query := `
		SELECT id, couple_id, prestataire_id, status, message, expires_at, responded_at, created_at
		FROM billing_consent_requests
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []models.BillingConsentRequest{}
	for rows.Next() {
		var req models.BillingConsentRequest
		err := rows.Scan(
			&req.ID, &req.CoupleID, &req.PrestataireID, &req.Status, &req.Message,
			&req.ExpiresAt, &req.RespondedAt, &req.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
