package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidDay(t *testing.T) {
	valid := []string{"2026-01-01", "2025-06-15", "2024-02-29"}
	for _, s := range valid {
		if !validDay(s) {
			t.Errorf("validDay(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2026-1-1", "15/06/2025", "2026-13-01", "2025-02-30", "20260101", "demain"}
	for _, s := range invalid {
		if validDay(s) {
			t.Errorf("validDay(%q) = true, want false", s)
		}
	}
}

// Malformed window parameters are rejected before any lookup happens, so a
// handler with no backing service must still answer 400.
func TestGetPublicAvailabilityRejectsBadWindow(t *testing.T) {
	h := &AvailabilityHandler{}

	cases := []struct {
		name  string
		query string
	}{
		{"bad from", "?from=junk&to=2026-06-30"},
		{"bad to", "?from=2026-06-01&to=junk"},
		{"inverted window", "?from=2026-06-30&to=2026-06-01"},
		{"european format", "?from=01/06/2026&to=30/06/2026"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/provider-availability/public/7"+c.query, nil)
			q := r.URL.Query()
			q.Set(":prestataire_id", "7")
			r.URL.RawQuery = q.Encode()

			w := httptest.NewRecorder()
			h.GetPublicAvailability(w, r)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestGetPublicAvailabilityRejectsBadID(t *testing.T) {
	h := &AvailabilityHandler{}

	r := httptest.NewRequest(http.MethodGet, "/api/provider-availability/public/abc", nil)
	q := r.URL.Query()
	q.Set(":prestataire_id", "abc")
	r.URL.RawQuery = q.Encode()

	w := httptest.NewRecorder()
	h.GetPublicAvailability(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCheckDateRequiresDate(t *testing.T) {
	h := &AvailabilityHandler{}

	r := httptest.NewRequest(http.MethodGet, "/api/provider-availability/check/7", nil)
	q := r.URL.Query()
	q.Set(":prestataire_id", "7")
	r.URL.RawQuery = q.Encode()

	w := httptest.NewRecorder()
	h.CheckDate(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
