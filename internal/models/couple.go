package models

import (
	"time"
)

// CoupleProfile is created at onboarding and only ever deactivated, never
// deleted. Wedding date is a naive calendar day (YYYY-MM-DD).
type CoupleProfile struct {
	ID                  int            `json:"id"`
	UserID              int            `json:"user_id"`
	WeddingDate         *string        `json:"wedding_date,omitempty"`
	WeddingCity         string         `json:"wedding_city"`
	WeddingRegion       string         `json:"wedding_region,omitempty"`
	Latitude            *float64       `json:"latitude,omitempty"`
	Longitude           *float64       `json:"longitude,omitempty"`
	BudgetMin           float64        `json:"budget_min"`
	BudgetMax           float64        `json:"budget_max"`
	GuestCount          int            `json:"guest_count"`
	CulturalBackgrounds []string       `json:"cultural_backgrounds,omitempty"`
	Languages           []string       `json:"languages,omitempty"`
	Religions           []string       `json:"religions,omitempty"`
	StylePreferences    []string       `json:"style_preferences,omitempty"`
	DietaryNeeds        []string       `json:"dietary_needs,omitempty"`
	CategoryPriorities  map[string]int `json:"category_priorities,omitempty"`
	CategoryBudgets     map[string]float64 `json:"category_budgets,omitempty"`
	DateFlexible        bool           `json:"date_flexible"`
	BudgetFlexible      bool           `json:"budget_flexible"`
	LocationFlexible    bool           `json:"location_flexible"`
	IsActive            bool           `json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           *time.Time     `json:"updated_at,omitempty"`
}

// BudgetFor returns the budget band allocated to one service category.
// A per-category envelope wins over the global band when the couple set one.
func (c CoupleProfile) BudgetFor(category string) (min, max float64) {
	if amount, ok := c.CategoryBudgets[category]; ok && amount > 0 {
		return 0, amount
	}
	return c.BudgetMin, c.BudgetMax
}

type CoupleBillingInfo struct {
	ID          int        `json:"id"`
	CoupleID    int        `json:"couple_id"`
	LegalName   string     `json:"legal_name"`
	AddressLine string     `json:"address_line"`
	PostalCode  string     `json:"postal_code"`
	City        string     `json:"city"`
	Country     string     `json:"country"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
