package services

import (
	"context"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

type PrestataireService struct {
	PrestataireRepo *repositories.PrestataireRepository
}

func (s *PrestataireService) CreatePrestataire(ctx context.Context, p models.PrestataireProfile) (models.PrestataireProfile, error) {
	return s.PrestataireRepo.CreatePrestataire(ctx, p)
}

func (s *PrestataireService) GetPrestataireByID(ctx context.Context, id int) (models.PrestataireProfile, error) {
	return s.PrestataireRepo.GetPrestataireByID(ctx, id)
}

func (s *PrestataireService) GetPrestataireByUserID(ctx context.Context, userID int) (models.PrestataireProfile, error) {
	return s.PrestataireRepo.GetPrestataireByUserID(ctx, userID)
}

func (s *PrestataireService) GetPrestatairesByCategory(ctx context.Context, category string) ([]models.PrestataireProfile, error) {
	return s.PrestataireRepo.GetPrestatairesByCategory(ctx, category)
}

func (s *PrestataireService) UpdatePrestataire(ctx context.Context, p models.PrestataireProfile) error {
	existing, err := s.PrestataireRepo.GetPrestataireByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.UserID != p.UserID {
		return models.ErrPrestataireNotFound
	}
	return s.PrestataireRepo.UpdatePrestataire(ctx, p)
}

// AddPortfolioImage appends an uploaded image URL to the profile.
func (s *PrestataireService) AddPortfolioImage(ctx context.Context, prestataireID, userID int, url string) error {
	p, err := s.PrestataireRepo.GetPrestataireByID(ctx, prestataireID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return models.ErrPrestataireNotFound
	}
	p.PortfolioImages = append(p.PortfolioImages, url)
	return s.PrestataireRepo.UpdatePrestataire(ctx, p)
}
