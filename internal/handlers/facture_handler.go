package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type FactureHandler struct {
	Service     *services.FactureService
	Couple      *services.CoupleService
	Prestataire *services.PrestataireService
}

type factureFromDevisRequest struct {
	DevisID              uuid.UUID `json:"devis_id"`
	TVARate              *float64  `json:"tva_rate,omitempty"`
	OnlinePaymentEnabled bool      `json:"online_payment_enabled"`
}

// ConvertFromDevis issues the facture for an accepted devis. A devis can
// only ever produce one facture; repeated calls get 409.
func (h *FactureHandler) ConvertFromDevis(w http.ResponseWriter, r *http.Request) {
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

	var req factureFromDevisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.DevisID == uuid.Nil {
		http.Error(w, "Missing devis_id", http.StatusBadRequest)
		return
	}
	if req.TVARate != nil && (*req.TVARate < 0 || *req.TVARate > 1) {
		http.Error(w, "tva_rate must be between 0 and 1", http.StatusBadRequest)
		return
	}

	facture, err := h.Service.ConvertFromDevis(r.Context(), profile.ID, req.DevisID, req.TVARate, req.OnlinePaymentEnabled)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, facture)
}

func (h *FactureHandler) GetFactureByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid facture ID", http.StatusBadRequest)
		return
	}

	facture, err := h.Service.GetFactureByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facture)
}

func (h *FactureHandler) ListForCouple(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Service.ListForCouple(r.Context(), couple.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *FactureHandler) ListForPrestataire(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Service.ListForPrestataire(r.Context(), profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// RecordPayment registers a couple's online payment on their facture.
func (h *FactureHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
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

	id, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid facture ID", http.StatusBadRequest)
		return
	}

	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}

	facture, err := h.Service.RecordPayment(r.Context(), id, couple.ID, req.Amount)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facture)
}

// SyncOverdue flips every sent, past-due, unpaid facture to overdue.
// Admin only; the background sweeper calls the same service method.
func (h *FactureHandler) SyncOverdue(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.SyncOverdue(r.Context(), time.Now())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": count})
}
