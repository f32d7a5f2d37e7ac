package handlers

import (
	"encoding/json"
	"net/http"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type AmbassadorHandler struct {
	Service     *services.AmbassadorService
	Prestataire *services.PrestataireService
}

type enrollRequest struct {
	Code string `json:"code"`
}

// Enroll turns the calling prestataire into an ambassador with a referral code.
func (h *AmbassadorHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	profile, err := h.Prestataire.GetPrestataireByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		http.Error(w, "Missing referral code", http.StatusBadRequest)
		return
	}

	if err := h.Service.EnrollAmbassador(r.Context(), profile.ID, req.Code); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": req.Code})
}

func (h *AmbassadorHandler) ListEarnings(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	profile, err := h.Prestataire.GetPrestataireByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	earnings, err := h.Service.ListEarnings(r.Context(), profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, earnings)
}

func (h *AmbassadorHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	profile, err := h.Prestataire.GetPrestataireByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	summary, err := h.Service.Summary(r.Context(), profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// AdvanceEarnings moves a batch of earnings one step forward in the
// pending, validated, paid progression. Admin only. Each ID succeeds or
// fails on its own; the response lists both sides.
func (h *AmbassadorHandler) AdvanceEarnings(w http.ResponseWriter, r *http.Request) {
	var req models.AdvanceEarningsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.EarningIDs) == 0 {
		http.Error(w, "Missing earning_ids", http.StatusBadRequest)
		return
	}
	if req.Status != models.EarningStatusValidated && req.Status != models.EarningStatusPaid {
		http.Error(w, "Status must be validated or paid", http.StatusBadRequest)
		return
	}

	result, err := h.Service.AdvanceEarnings(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
