package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mariageBack/internal/models"
)

// statusForError translates the domain sentinel errors into HTTP status
// codes so handlers stay out of the guessing business. Unknown errors
// fall through to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrCoupleNotFound),
		errors.Is(err, models.ErrPrestataireNotFound),
		errors.Is(err, models.ErrSlotNotFound),
		errors.Is(err, models.ErrConsentNotFound),
		errors.Is(err, models.ErrDevisNotFound),
		errors.Is(err, models.ErrFactureNotFound),
		errors.Is(err, models.ErrEarningNotFound),
		errors.Is(err, models.ErrChatNotFound),
		errors.Is(err, models.ErrReviewNotFound),
		errors.Is(err, models.ErrBillingInfoNotFound),
		errors.Is(err, models.ErrReferralCodeNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrNoRecord):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotSlotOwner),
		errors.Is(err, models.ErrNotConsentOwner),
		errors.Is(err, models.ErrNotDevisOwner):
		return http.StatusForbidden
	case errors.Is(err, models.ErrConsentAlreadyProcessed),
		errors.Is(err, models.ErrFactureExists),
		errors.Is(err, models.ErrAlreadyReferred),
		errors.Is(err, models.ErrAlreadyReviewed),
		errors.Is(err, models.ErrEarningBadTransition),
		errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrDuplicatePhone),
		errors.Is(err, models.ErrDevisNotAccepted),
		errors.Is(err, models.ErrDevisNotSent),
		errors.Is(err, models.ErrPaymentNotAllowed):
		return http.StatusConflict
	case errors.Is(err, models.ErrConsentExpired):
		return http.StatusGone
	case errors.Is(err, models.ErrProfileDeactivated),
		errors.Is(err, models.ErrInvalidPassword):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON sets the content type and encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// serviceError sends the mapped status with the error message as body,
// matching the plain-text style of http.Error.
func serviceError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}
