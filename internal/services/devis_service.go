package services

import (
	"context"

	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

type DevisService struct {
	DevisRepo      *repositories.DevisRepository
	ConsentService *BillingConsentService
	Notifier       *NotificationService
	CoupleRepo     *repositories.CoupleRepository
}

// CreateDevis requires an approved billing consent between the pair; a devis
// without consent never exists.
func (s *DevisService) CreateDevis(ctx context.Context, devis models.Devis) (models.Devis, error) {
	allowed, err := s.ConsentService.HasApprovedConsent(ctx, devis.PrestataireID, devis.CoupleID)
	if err != nil {
		return models.Devis{}, err
	}
	if !allowed {
		return models.Devis{}, models.ErrConsentNotFound
	}
	return s.DevisRepo.CreateDevis(ctx, devis)
}

func (s *DevisService) GetDevisByID(ctx context.Context, id uuid.UUID) (models.Devis, error) {
	return s.DevisRepo.GetDevisByID(ctx, id)
}

// SendDevis moves draft→sent and notifies the couple.
func (s *DevisService) SendDevis(ctx context.Context, id uuid.UUID, prestataireID int) (models.Devis, error) {
	devis, err := s.DevisRepo.GetDevisByID(ctx, id)
	if err != nil {
		return models.Devis{}, err
	}
	if devis.PrestataireID != prestataireID {
		return models.Devis{}, models.ErrNotDevisOwner
	}
	if devis.Status != models.DevisStatusDraft {
		return models.Devis{}, models.ErrDevisNotSent
	}
	if err := s.DevisRepo.UpdateStatus(ctx, id, models.DevisStatusDraft, models.DevisStatusSent); err != nil {
		return models.Devis{}, err
	}
	devis.Status = models.DevisStatusSent

	if couple, err := s.CoupleRepo.GetCoupleByID(ctx, devis.CoupleID); err == nil {
		s.Notifier.SendToUser(ctx, couple.UserID,
			"Nouveau devis reçu",
			"Un prestataire vous a envoyé un devis.",
			map[string]string{"devis_id": devis.ID.String()})
	}
	return devis, nil
}

// RespondDevis applies the couple's accept/reject decision on a sent devis.
func (s *DevisService) RespondDevis(ctx context.Context, id uuid.UUID, coupleID int, accepted bool) (models.Devis, error) {
	devis, err := s.DevisRepo.GetDevisByID(ctx, id)
	if err != nil {
		return models.Devis{}, err
	}
	if devis.CoupleID != coupleID {
		return models.Devis{}, models.ErrNotDevisOwner
	}
	if devis.Status != models.DevisStatusSent {
		return models.Devis{}, models.ErrDevisNotSent
	}

	to := models.DevisStatusRejected
	if accepted {
		to = models.DevisStatusAccepted
	}
	if err := s.DevisRepo.UpdateStatus(ctx, id, models.DevisStatusSent, to); err != nil {
		return models.Devis{}, err
	}
	devis.Status = to
	return devis, nil
}

func (s *DevisService) ListForCouple(ctx context.Context, coupleID int) ([]models.Devis, error) {
	return s.DevisRepo.ListDevisByCouple(ctx, coupleID)
}

func (s *DevisService) ListForPrestataire(ctx context.Context, prestataireID int) ([]models.Devis, error) {
	return s.DevisRepo.ListDevisByPrestataire(ctx, prestataireID)
}
