package services

import (
	"context"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

type CoupleService struct {
	CoupleRepo *repositories.CoupleRepository
}

func (s *CoupleService) CreateCouple(ctx context.Context, couple models.CoupleProfile) (models.CoupleProfile, error) {
	return s.CoupleRepo.CreateCouple(ctx, couple)
}

func (s *CoupleService) GetCoupleByUserID(ctx context.Context, userID int) (models.CoupleProfile, error) {
	return s.CoupleRepo.GetCoupleByUserID(ctx, userID)
}

func (s *CoupleService) UpdateCouple(ctx context.Context, couple models.CoupleProfile) error {
	existing, err := s.CoupleRepo.GetCoupleByID(ctx, couple.ID)
	if err != nil {
		return err
	}
	if existing.UserID != couple.UserID {
		return models.ErrCoupleNotFound
	}
	return s.CoupleRepo.UpdateCouple(ctx, couple)
}

func (s *CoupleService) DeactivateCouple(ctx context.Context, id, userID int) error {
	existing, err := s.CoupleRepo.GetCoupleByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrCoupleNotFound
	}
	return s.CoupleRepo.DeactivateCouple(ctx, id)
}

func (s *CoupleService) UpsertBillingInfo(ctx context.Context, info models.CoupleBillingInfo) (models.CoupleBillingInfo, error) {
	return s.CoupleRepo.UpsertBillingInfo(ctx, info)
}
