package models

import (
	"time"

	"github.com/google/uuid"
)

type FactureStatus string

const (
	FactureStatusSent    FactureStatus = "sent"
	FactureStatusOverdue FactureStatus = "overdue"
	FactureStatusPaid    FactureStatus = "paid"
)

// Facture is generated once and only once from an accepted devis. The
// factures table carries UNIQUE(devis_id); the application-level duplicate
// check is an optimistic fast path on top of that constraint.
type Facture struct {
	ID                   uuid.UUID     `json:"id"`
	DevisID              uuid.UUID     `json:"devis_id"`
	PrestataireID        int           `json:"prestataire_id"`
	CoupleID             int           `json:"couple_id"`
	Number               string        `json:"number"`
	Status               FactureStatus `json:"status"`
	TotalHT              float64       `json:"total_ht"`
	TVARate              float64       `json:"tva_rate"`
	TotalTVA             float64       `json:"total_tva"`
	TotalTTC             float64       `json:"total_ttc"`
	AmountPaid           float64       `json:"amount_paid"`
	Currency             string        `json:"currency"`
	OnlinePaymentEnabled bool          `json:"online_payment_enabled"`
	DueDate              time.Time     `json:"due_date"`
	IssuedAt             time.Time     `json:"issued_at"`
	PaidAt               *time.Time    `json:"paid_at,omitempty"`
}

// PaymentEligible gates the pay button: online payment must be enabled and
// the facture must still be collectible.
func (f Facture) PaymentEligible() bool {
	if !f.OnlinePaymentEnabled {
		return false
	}
	return f.Status == FactureStatusSent || f.Status == FactureStatusOverdue
}

type FactureFromDevisRequest struct {
	DevisID uuid.UUID `json:"devis_id"`
	TVARate *float64  `json:"tva_rate,omitempty"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}
