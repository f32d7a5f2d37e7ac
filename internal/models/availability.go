package models

import (
	"time"
)

type SlotStatus string

const (
	SlotStatusUnavailable SlotStatus = "unavailable"
	SlotStatusTentative   SlotStatus = "tentative"
)

// AvailabilitySlot is a prestataire-declared date range during which they are
// not bookable. Dates are naive calendar days (YYYY-MM-DD), end inclusive.
type AvailabilitySlot struct {
	ID            int        `json:"id"`
	PrestataireID int        `json:"prestataire_id"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Status        SlotStatus `json:"status"`
	Note          string     `json:"note,omitempty"`
	IsPublic      bool       `json:"is_public"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// PublicAvailabilitySlot is the anonymous projection served without auth.
type PublicAvailabilitySlot struct {
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Status    SlotStatus `json:"status"`
}

type AvailabilityPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type PublicAvailabilityResponse struct {
	Prestataire PublicPrestataire        `json:"provider"`
	Slots       []PublicAvailabilitySlot `json:"slots"`
	Period      AvailabilityPeriod       `json:"period"`
}

type PublicPrestataire struct {
	ID           int    `json:"id"`
	BusinessName string `json:"business_name"`
	Category     string `json:"category"`
}
