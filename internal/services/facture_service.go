package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

const (
	defaultTVARate     = 0.20
	defaultPaymentTerm = 30 * 24 * time.Hour

	// conversionEarningRate is the ambassador's cut when a facture issued by
	// a prestataire they referred is settled.
	conversionEarningRate = 0.02
)

type FactureService struct {
	FactureRepo     *repositories.FactureRepository
	DevisRepo       *repositories.DevisRepository
	AmbassadorRepo  *repositories.AmbassadorRepository
	PrestataireRepo *repositories.PrestataireRepository
}

// ConvertFromDevis is the guarded one-time devis→facture transition. The
// existence pre-check is only a fast path; the UNIQUE(devis_id) constraint in
// the repository is what actually guarantees one facture per devis under
// concurrent calls.
func (s *FactureService) ConvertFromDevis(ctx context.Context, prestataireID int, devisID uuid.UUID, tvaRate *float64, onlinePayment bool) (models.Facture, error) {
	devis, err := s.DevisRepo.GetDevisByID(ctx, devisID)
	if err != nil {
		return models.Facture{}, err
	}
	if devis.PrestataireID != prestataireID {
		return models.Facture{}, models.ErrNotDevisOwner
	}
	if devis.Status != models.DevisStatusAccepted {
		return models.Facture{}, models.ErrDevisNotAccepted
	}

	exists, err := s.FactureRepo.ExistsForDevis(ctx, devisID)
	if err != nil {
		return models.Facture{}, err
	}
	if exists {
		return models.Facture{}, models.ErrFactureExists
	}

	rate := defaultTVARate
	if tvaRate != nil && *tvaRate >= 0 {
		rate = *tvaRate
	}
	dueDate := time.Now().Add(defaultPaymentTerm)

	return s.FactureRepo.CreateFromDevis(ctx, devis, rate, dueDate, onlinePayment)
}

func (s *FactureService) GetFactureByID(ctx context.Context, id uuid.UUID) (models.Facture, error) {
	return s.FactureRepo.GetFactureByID(ctx, id)
}

func (s *FactureService) ListForCouple(ctx context.Context, coupleID int) ([]models.Facture, error) {
	return s.FactureRepo.ListFacturesByCouple(ctx, coupleID)
}

func (s *FactureService) ListForPrestataire(ctx context.Context, prestataireID int) ([]models.Facture, error) {
	return s.FactureRepo.ListFacturesByPrestataire(ctx, prestataireID)
}

// SyncOverdue is safe to run from the endpoint and the background sweeper
// alike; re-running with no newly elapsed due dates reports 0.
func (s *FactureService) SyncOverdue(ctx context.Context, now time.Time) (int, error) {
	return s.FactureRepo.SyncOverdue(ctx, now)
}

// RecordPayment checks pay-button eligibility, applies the amount, and books
// the ambassador conversion earning when the facture settles.
func (s *FactureService) RecordPayment(ctx context.Context, id uuid.UUID, coupleID int, amount float64) (models.Facture, error) {
	facture, err := s.FactureRepo.GetFactureByID(ctx, id)
	if err != nil {
		return models.Facture{}, err
	}
	if facture.CoupleID != coupleID {
		return models.Facture{}, models.ErrNotDevisOwner
	}
	if !facture.PaymentEligible() {
		return models.Facture{}, models.ErrPaymentNotAllowed
	}

	now := time.Now()
	paid, err := s.FactureRepo.RecordPayment(ctx, id, amount, now)
	if err != nil {
		return models.Facture{}, err
	}

	if paid.Status == models.FactureStatusPaid {
		s.bookConversionEarning(ctx, paid)
	}
	return paid, nil
}

// bookConversionEarning credits the referring ambassador when a facture of a
// referred prestataire is fully paid. Best effort: a failure here must not
// undo the payment.
func (s *FactureService) bookConversionEarning(ctx context.Context, facture models.Facture) {
	p, err := s.PrestataireRepo.GetPrestataireByID(ctx, facture.PrestataireID)
	if err != nil {
		return
	}
	usage, err := s.AmbassadorRepo.GetUsageByReferredUser(ctx, p.UserID)
	if err != nil || usage.ID == 0 {
		return
	}
	_, _ = s.AmbassadorRepo.CreateEarning(ctx, models.AmbassadorEarning{
		AmbassadorID:    usage.AmbassadorID,
		ReferralUsageID: usage.ID,
		Amount:          facture.TotalTTC * conversionEarningRate,
		Type:            models.EarningTypeConversion,
	})
}
