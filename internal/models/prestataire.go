package models

import (
	"time"
)

// PrestataireProfile carries the fields the matching engine reads
// (category, locations, price band, capacity band, cultural data) plus the
// presentational bits of a provider page.
type PrestataireProfile struct {
	ID                  int        `json:"id"`
	UserID              int        `json:"user_id"`
	BusinessName        string     `json:"business_name"`
	Category            string     `json:"category"`
	Description         string     `json:"description,omitempty"`
	ServiceLocations    []string   `json:"service_locations,omitempty"`
	Region              string     `json:"region,omitempty"`
	PriceMin            float64    `json:"price_min"`
	PriceMax            float64    `json:"price_max"`
	CapacityMin         int        `json:"capacity_min"`
	CapacityMax         int        `json:"capacity_max"`
	CulturalSpecialties []string   `json:"cultural_specialties,omitempty"`
	Languages           []string   `json:"languages,omitempty"`
	DietaryOptions      []string   `json:"dietary_options,omitempty"`
	StyleTags           []string   `json:"style_tags,omitempty"`
	Rating              float64    `json:"rating"`
	PortfolioImages     []string   `json:"portfolio_images,omitempty"`
	IsAmbassador        bool       `json:"is_ambassador"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

type Review struct {
	ID            int        `json:"id"`
	CoupleID      int        `json:"couple_id,omitempty"`
	PrestataireID int        `json:"prestataire_id,omitempty"`
	Rating        float64    `json:"rating"`
	Review        string     `json:"review"`
	CoupleName    string     `json:"couple_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
