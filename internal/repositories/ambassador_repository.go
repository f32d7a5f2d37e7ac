package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mariageBack/internal/models"
)

type AmbassadorRepository struct {
	DB *sql.DB
}

func (r *AmbassadorRepository) CreateReferralUsage(ctx context.Context, usage models.ReferralUsage) (models.ReferralUsage, error) {
	query := `
INSERT INTO referral_usages (ambassador_id, referred_user_id, code, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		usage.AmbassadorID, usage.ReferredUserID, usage.Code,
	).Scan(&usage.ID, &usage.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ReferralUsage{}, models.ErrAlreadyReferred
		}
		return models.ReferralUsage{}, err
	}
	return usage, nil
}

// GetUsageByReferredUser answers "who referred this user", zero value when
// nobody did.
func (r *AmbassadorRepository) GetUsageByReferredUser(ctx context.Context, referredUserID int) (models.ReferralUsage, error) {
	var usage models.ReferralUsage
	query := `
		SELECT id, ambassador_id, referred_user_id, code, created_at
		FROM referral_usages WHERE referred_user_id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, referredUserID).Scan(
		&usage.ID, &usage.AmbassadorID, &usage.ReferredUserID, &usage.Code, &usage.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReferralUsage{}, nil
	}
	return usage, err
}

func (r *AmbassadorRepository) CreateEarning(ctx context.Context, earning models.AmbassadorEarning) (models.AmbassadorEarning, error) {
	earning.Status = models.EarningStatusPending
	query := `
INSERT INTO ambassador_earnings (ambassador_id, referral_usage_id, amount, type, status, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		earning.AmbassadorID, earning.ReferralUsageID, earning.Amount, earning.Type, earning.Status,
	).Scan(&earning.ID, &earning.CreatedAt)
	if err != nil {
		return models.AmbassadorEarning{}, err
	}
	return earning, nil
}

func (r *AmbassadorRepository) ListEarningsByAmbassador(ctx context.Context, ambassadorID int) ([]models.AmbassadorEarning, error) {
	query := `
		SELECT id, ambassador_id, referral_usage_id, amount, type, status,
		       validated_at, paid_at, created_at
		FROM ambassador_earnings
		WHERE ambassador_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ambassadorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earnings := []models.AmbassadorEarning{}
	for rows.Next() {
		var e models.AmbassadorEarning
		err := rows.Scan(
			&e.ID, &e.AmbassadorID, &e.ReferralUsageID, &e.Amount, &e.Type, &e.Status,
			&e.ValidatedAt, &e.PaidAt, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		earnings = append(earnings, e)
	}
	return earnings, rows.Err()
}

func (r *AmbassadorRepository) GetEarningByID(ctx context.Context, id int) (models.AmbassadorEarning, error) {
	var e models.AmbassadorEarning
	query := `
		SELECT id, ambassador_id, referral_usage_id, amount, type, status,
		       validated_at, paid_at, created_at
		FROM ambassador_earnings WHERE id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.AmbassadorID, &e.ReferralUsageID, &e.Amount, &e.Type, &e.Status,
		&e.ValidatedAt, &e.PaidAt, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AmbassadorEarning{}, models.ErrEarningNotFound
	}
	return e, err
}

// AdvanceEarning performs one forward status transition, stamping the
// matching timestamp in the same UPDATE. The previous status sits in the
// WHERE clause so each transition is atomic and can never run backward.
func (r *AmbassadorRepository) AdvanceEarning(ctx context.Context, id int, from, to models.EarningStatus, now time.Time) error {
	var query string
	switch to {
	case models.EarningStatusValidated:
		query = `UPDATE ambassador_earnings SET status = $3, validated_at = $4 WHERE id = $1 AND status = $2`
	case models.EarningStatusPaid:
		query = `UPDATE ambassador_earnings SET status = $3, paid_at = $4 WHERE id = $1 AND status = $2`
	default:
		return models.ErrEarningBadTransition
	}

	result, err := r.DB.ExecContext(ctx, query, id, from, to, now)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrEarningBadTransition
	}
	return nil
}

// SummaryByAmbassador aggregates amounts by status for the dashboard.
func (r *AmbassadorRepository) SummaryByAmbassador(ctx context.Context, ambassadorID int) (models.EarningsSummary, error) {
	query := `
		SELECT status, COALESCE(SUM(amount), 0)
		FROM ambassador_earnings
		WHERE ambassador_id = $1
		GROUP BY status
	`
	rows, err := r.DB.QueryContext(ctx, query, ambassadorID)
	if err != nil {
		return models.EarningsSummary{}, err
	}
	defer rows.Close()

	var summary models.EarningsSummary
	for rows.Next() {
		var status models.EarningStatus
		var sum float64
		if err := rows.Scan(&status, &sum); err != nil {
			return models.EarningsSummary{}, err
		}
		switch status {
		case models.EarningStatusPending:
			summary.Pending = sum
		case models.EarningStatusValidated:
			summary.Validated = sum
		case models.EarningStatusPaid:
			summary.Paid = sum
		}
		summary.Total += sum
	}
	return summary, rows.Err()
}
