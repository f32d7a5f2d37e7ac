package models

import (
	"time"

	"github.com/google/uuid"
)

type ConsentStatus string

const (
	ConsentStatusPending  ConsentStatus = "pending"
	ConsentStatusApproved ConsentStatus = "approved"
	ConsentStatusRejected ConsentStatus = "rejected"
)

// BillingConsentRequest is a prestataire asking a couple for permission to
// bill them. It leaves pending exactly once; expiry is checked when the
// request is read or responded to, never by a background job.
type BillingConsentRequest struct {
	ID            uuid.UUID     `json:"id"`
	CoupleID      int           `json:"couple_id"`
	PrestataireID int           `json:"prestataire_id"`
	Status        ConsentStatus `json:"status"`
	Message       string        `json:"message,omitempty"`
	ExpiresAt     time.Time     `json:"expires_at"`
	RespondedAt   *time.Time    `json:"responded_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (c BillingConsentRequest) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

type ConsentRespondRequest struct {
	Approved bool `json:"approved"`
}

type ConsentRespondResponse struct {
	Success          bool                  `json:"success"`
	ConsentRequest   BillingConsentRequest `json:"consentRequest"`
	NeedsBillingInfo bool                  `json:"needsBillingInfo"`
}
