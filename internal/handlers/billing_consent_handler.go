package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type BillingConsentHandler struct {
	Service     *services.BillingConsentService
	Couple      *services.CoupleService
	Prestataire *services.PrestataireService
}

type createConsentRequest struct {
	CoupleID int    `json:"couple_id"`
	Message  string `json:"message,omitempty"`
}

// CreateConsent lets a prestataire ask a couple for permission to bill them.
func (h *BillingConsentHandler) CreateConsent(w http.ResponseWriter, r *http.Request) {
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

	var req createConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CoupleID == 0 {
		http.Error(w, "Missing couple_id", http.StatusBadRequest)
		return
	}

	consent, err := h.Service.CreateConsent(r.Context(), profile.ID, req.CoupleID, req.Message)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, consent)
}

// RespondConsent records the couple's decision. Only the addressed couple
// may answer, and only while the request is still pending and unexpired.
func (h *BillingConsentHandler) RespondConsent(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	couple, err := h.Couple.GetCoupleByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	requestID, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid consent request ID", http.StatusBadRequest)
		return
	}

	var req models.ConsentRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.Respond(r.Context(), requestID, couple.ID, req.Approved)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BillingConsentHandler) GetConsent(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	couple, err := h.Couple.GetCoupleByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	requestID, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid consent request ID", http.StatusBadRequest)
		return
	}

	consent, err := h.Service.GetForCouple(r.Context(), requestID, couple.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, consent)
}

func (h *BillingConsentHandler) ListForCouple(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	couple, err := h.Couple.GetCoupleByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	consents, err := h.Service.ListForCouple(r.Context(), couple.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, consents)
}

func (h *BillingConsentHandler) ListForPrestataire(w http.ResponseWriter, r *http.Request) {
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

	consents, err := h.Service.ListForPrestataire(r.Context(), profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, consents)
}
