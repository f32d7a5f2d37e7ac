package models

import (
	"time"
)

type EarningType string

const (
	EarningTypeSignup     EarningType = "signup"
	EarningTypeConversion EarningType = "conversion"
	EarningTypeMilestone  EarningType = "milestone"
)

type EarningStatus string

const (
	EarningStatusPending   EarningStatus = "pending"
	EarningStatusValidated EarningStatus = "validated"
	EarningStatusPaid      EarningStatus = "paid"
)

// earningRank orders statuses for the monotonic pending→validated→paid rule.
func earningRank(s EarningStatus) int {
	switch s {
	case EarningStatusPending:
		return 0
	case EarningStatusValidated:
		return 1
	case EarningStatusPaid:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether a transition moves strictly forward.
func (s EarningStatus) CanAdvanceTo(next EarningStatus) bool {
	from, to := earningRank(s), earningRank(next)
	return from >= 0 && to >= 0 && to == from+1
}

// ReferralUsage records one signup made with an ambassador's code.
type ReferralUsage struct {
	ID             int       `json:"id"`
	AmbassadorID   int       `json:"ambassador_id"`
	ReferredUserID int       `json:"referred_user_id"`
	Code           string    `json:"code"`
	CreatedAt      time.Time `json:"created_at"`
}

type AmbassadorEarning struct {
	ID              int           `json:"id"`
	AmbassadorID    int           `json:"ambassador_id"`
	ReferralUsageID int           `json:"referral_usage_id"`
	Amount          float64       `json:"amount"`
	Type            EarningType   `json:"type"`
	Status          EarningStatus `json:"status"`
	ValidatedAt     *time.Time    `json:"validated_at,omitempty"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type EarningsSummary struct {
	Total     float64 `json:"total"`
	Pending   float64 `json:"pending"`
	Validated float64 `json:"validated"`
	Paid      float64 `json:"paid"`
}

type AdvanceEarningsRequest struct {
	EarningIDs []int         `json:"earning_ids"`
	Status     EarningStatus `json:"status"`
}

type AdvanceEarningsResult struct {
	Advanced []int          `json:"advanced"`
	Failed   map[int]string `json:"failed,omitempty"`
}
