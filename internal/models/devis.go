package models

import (
	"time"

	"github.com/google/uuid"
)

type DevisStatus string

const (
	DevisStatusDraft    DevisStatus = "draft"
	DevisStatusSent     DevisStatus = "sent"
	DevisStatusAccepted DevisStatus = "accepted"
	DevisStatusRejected DevisStatus = "rejected"
)

type Devis struct {
	ID            uuid.UUID   `json:"id"`
	PrestataireID int         `json:"prestataire_id"`
	CoupleID      int         `json:"couple_id"`
	Status        DevisStatus `json:"status"`
	Items         []DevisItem `json:"items,omitempty"`
	TotalHT       float64     `json:"total_ht"`
	Currency      string      `json:"currency"`
	ValidUntil    *time.Time  `json:"valid_until,omitempty"`
	ConvertedAt   *time.Time  `json:"converted_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
}

type DevisItem struct {
	ID          int       `json:"id"`
	DevisID     uuid.UUID `json:"devis_id,omitempty"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// LineTotal applies quantity to the unit price. Discounts live at devis
// level, not per line.
func (i DevisItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
