package services

import (
	"context"
	"time"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

// signupEarningAmount is credited to the ambassador for each signup made
// with their code.
const signupEarningAmount = 10.0

type AmbassadorService struct {
	AmbassadorRepo  *repositories.AmbassadorRepository
	PrestataireRepo *repositories.PrestataireRepository
}

// RecordReferredSignup resolves the code, records the usage and books the
// pending signup earning in one go.
func (s *AmbassadorService) RecordReferredSignup(ctx context.Context, code string, referredUserID int) error {
	ambassadorID, err := s.PrestataireRepo.FindAmbassadorByCode(ctx, code)
	if err != nil {
		return err
	}
	usage, err := s.AmbassadorRepo.CreateReferralUsage(ctx, models.ReferralUsage{
		AmbassadorID:   ambassadorID,
		ReferredUserID: referredUserID,
		Code:           code,
	})
	if err != nil {
		return err
	}
	_, err = s.AmbassadorRepo.CreateEarning(ctx, models.AmbassadorEarning{
		AmbassadorID:    ambassadorID,
		ReferralUsageID: usage.ID,
		Amount:          signupEarningAmount,
		Type:            models.EarningTypeSignup,
	})
	return err
}

func (s *AmbassadorService) ListEarnings(ctx context.Context, ambassadorID int) ([]models.AmbassadorEarning, error) {
	return s.AmbassadorRepo.ListEarningsByAmbassador(ctx, ambassadorID)
}

func (s *AmbassadorService) Summary(ctx context.Context, ambassadorID int) (models.EarningsSummary, error) {
	return s.AmbassadorRepo.SummaryByAmbassador(ctx, ambassadorID)
}

// AdvanceEarnings applies the admin's bulk status advance. Each ID succeeds
// or fails on its own; a bad ID never blocks the rest of the batch.
func (s *AmbassadorService) AdvanceEarnings(ctx context.Context, req models.AdvanceEarningsRequest) (models.AdvanceEarningsResult, error) {
	result := models.AdvanceEarningsResult{Advanced: []int{}, Failed: map[int]string{}}
	now := time.Now()

	for _, id := range req.EarningIDs {
		earning, err := s.AmbassadorRepo.GetEarningByID(ctx, id)
		if err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		if !earning.Status.CanAdvanceTo(req.Status) {
			result.Failed[id] = models.ErrEarningBadTransition.Error()
			continue
		}
		if err := s.AmbassadorRepo.AdvanceEarning(ctx, id, earning.Status, req.Status, now); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Advanced = append(result.Advanced, id)
	}
	return result, nil
}

// EnrollAmbassador turns a prestataire into an ambassador with the given
// referral code.
func (s *AmbassadorService) EnrollAmbassador(ctx context.Context, prestataireID int, code string) error {
	return s.PrestataireRepo.SetAmbassador(ctx, prestataireID, code)
}
