package services

import (
	"context"
	"log"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

type ReviewService struct {
	ReviewRepo      *repositories.ReviewRepository
	PrestataireRepo *repositories.PrestataireRepository
}

func (s *ReviewService) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	created, err := s.ReviewRepo.CreateReview(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	// The profile rating is derived state; a refresh failure only delays it.
	if err := s.PrestataireRepo.RefreshRating(ctx, review.PrestataireID); err != nil {
		log.Printf("review: rating refresh for prestataire %d failed: %v", review.PrestataireID, err)
	}
	return created, nil
}

func (s *ReviewService) GetReviewsByPrestataireID(ctx context.Context, prestataireID int) ([]models.Review, error) {
	return s.ReviewRepo.GetReviewsByPrestataireID(ctx, prestataireID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id, prestataireID int) error {
	if err := s.ReviewRepo.DeleteReview(ctx, id); err != nil {
		return err
	}
	if err := s.PrestataireRepo.RefreshRating(ctx, prestataireID); err != nil {
		log.Printf("review: rating refresh for prestataire %d failed: %v", prestataireID, err)
	}
	return nil
}
