package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"mariageBack/internal/models"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrConsentNotFound, http.StatusNotFound},
		{models.ErrDevisNotFound, http.StatusNotFound},
		{models.ErrFactureNotFound, http.StatusNotFound},
		{models.ErrNotConsentOwner, http.StatusForbidden},
		{models.ErrNotDevisOwner, http.StatusForbidden},
		{models.ErrConsentAlreadyProcessed, http.StatusConflict},
		{models.ErrFactureExists, http.StatusConflict},
		{models.ErrAlreadyReferred, http.StatusConflict},
		{models.ErrDevisNotAccepted, http.StatusConflict},
		{models.ErrDevisNotSent, http.StatusConflict},
		{models.ErrPaymentNotAllowed, http.StatusConflict},
		{models.ErrConsentExpired, http.StatusGone},
		{models.ErrProfileDeactivated, http.StatusUnprocessableEntity},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := statusForError(c.err); got != c.status {
			t.Errorf("statusForError(%v) = %d, want %d", c.err, got, c.status)
		}
	}
}

func TestStatusForWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("responding to consent: %w", models.ErrConsentExpired)
	if got := statusForError(wrapped); got != http.StatusGone {
		t.Errorf("wrapped error lost its status, got %d", got)
	}
}
