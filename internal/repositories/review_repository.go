package repositories

import (
	"context"
	"database/sql"

	"mariageBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE couple_id = $1 AND prestataire_id = $2`,
		rev.CoupleID, rev.PrestataireID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	query := `
INSERT INTO reviews (couple_id, prestataire_id, rating, review, created_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		rev.CoupleID, rev.PrestataireID, rev.Rating, rev.Review,
	).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) GetReviewsByPrestataireID(ctx context.Context, prestataireID int) ([]models.Review, error) {
	query := `
		SELECT r.id, r.couple_id, r.prestataire_id, r.rating, r.review,
		       u.name, r.created_at, r.updated_at
		FROM reviews r
		JOIN couple_profiles c ON r.couple_id = c.id
		JOIN users u ON c.user_id = u.id
		WHERE r.prestataire_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, prestataireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.CoupleID, &rev.PrestataireID, &rev.Rating, &rev.Review,
			&rev.CoupleName, &rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}
