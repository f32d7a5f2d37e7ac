package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

const defaultConsentTTL = 14 * 24 * time.Hour

// BillingConsentService guards the consent state machine: a request leaves
// pending exactly once, only at the hands of the couple it names, and only
// before it expires.
type BillingConsentService struct {
	ConsentRepo *repositories.BillingConsentRepository
	CoupleRepo  *repositories.CoupleRepository
	Notifier    *NotificationService
}

func (s *BillingConsentService) CreateConsent(ctx context.Context, prestataireID, coupleID int, message string) (models.BillingConsentRequest, error) {
	couple, err := s.CoupleRepo.GetCoupleByID(ctx, coupleID)
	if err != nil {
		return models.BillingConsentRequest{}, err
	}
	if !couple.IsActive {
		return models.BillingConsentRequest{}, models.ErrProfileDeactivated
	}

	req := models.BillingConsentRequest{
		CoupleID:      coupleID,
		PrestataireID: prestataireID,
		Message:       message,
		ExpiresAt:     time.Now().Add(defaultConsentTTL),
	}
	created, err := s.ConsentRepo.CreateConsent(ctx, req)
	if err != nil {
		return models.BillingConsentRequest{}, err
	}

	s.Notifier.SendToUser(ctx, couple.UserID,
		"Nouvelle demande de facturation",
		"Un prestataire souhaite pouvoir vous facturer.",
		map[string]string{"consent_request_id": created.ID.String()})
	return created, nil
}

// Respond applies the couple's decision. Guard order matters: existence,
// ownership, already-processed, expiry — each violation maps to its own HTTP
// status in the handler.
func (s *BillingConsentService) Respond(ctx context.Context, requestID uuid.UUID, coupleID int, approved bool) (models.ConsentRespondResponse, error) {
	req, err := s.ConsentRepo.GetConsentByID(ctx, requestID)
	if err != nil {
		return models.ConsentRespondResponse{}, err
	}
	if req.CoupleID != coupleID {
		return models.ConsentRespondResponse{}, models.ErrNotConsentOwner
	}
	if req.Status != models.ConsentStatusPending {
		return models.ConsentRespondResponse{}, models.ErrConsentAlreadyProcessed
	}
	now := time.Now()
	if req.Expired(now) {
		return models.ConsentRespondResponse{}, models.ErrConsentExpired
	}

	status := models.ConsentStatusRejected
	if approved {
		status = models.ConsentStatusApproved
	}
	if err := s.ConsentRepo.MarkResponded(ctx, requestID, status, now); err != nil {
		return models.ConsentRespondResponse{}, err
	}

	req.Status = status
	req.RespondedAt = &now

	needsBillingInfo := false
	if approved {
		has, err := s.CoupleRepo.HasBillingInfo(ctx, coupleID)
		if err != nil {
			return models.ConsentRespondResponse{}, err
		}
		needsBillingInfo = !has
	}

	return models.ConsentRespondResponse{
		Success:          true,
		ConsentRequest:   req,
		NeedsBillingInfo: needsBillingInfo,
	}, nil
}

// GetForCouple re-checks expiry at read time; expired pending requests are
// reported as expired without being rewritten.
func (s *BillingConsentService) GetForCouple(ctx context.Context, requestID uuid.UUID, coupleID int) (models.BillingConsentRequest, error) {
	req, err := s.ConsentRepo.GetConsentByID(ctx, requestID)
	if err != nil {
		return models.BillingConsentRequest{}, err
	}
	if req.CoupleID != coupleID {
		return models.BillingConsentRequest{}, models.ErrNotConsentOwner
	}
	if req.Status == models.ConsentStatusPending && req.Expired(time.Now()) {
		return models.BillingConsentRequest{}, models.ErrConsentExpired
	}
	return req, nil
}

// HasApprovedConsent reports whether the prestataire may bill the couple.
func (s *BillingConsentService) HasApprovedConsent(ctx context.Context, prestataireID, coupleID int) (bool, error) {
	requests, err := s.ConsentRepo.ListConsentsByPrestataire(ctx, prestataireID)
	if err != nil {
		return false, err
	}
	for _, req := range requests {
		if req.CoupleID == coupleID && req.Status == models.ConsentStatusApproved {
			return true, nil
		}
	}
	return false, nil
}

func (s *BillingConsentService) ListForCouple(ctx context.Context, coupleID int) ([]models.BillingConsentRequest, error) {
	return s.ConsentRepo.ListConsentsByCouple(ctx, coupleID)
}

func (s *BillingConsentService) ListForPrestataire(ctx context.Context, prestataireID int) ([]models.BillingConsentRequest, error) {
	return s.ConsentRepo.ListConsentsByPrestataire(ctx, prestataireID)
}
