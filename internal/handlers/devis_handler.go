package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type DevisHandler struct {
	Service     *services.DevisService
	Couple      *services.CoupleService
	Prestataire *services.PrestataireService
}

// CreateDevis drafts a quote. The service refuses it when the couple never
// approved billing from this prestataire.
func (h *DevisHandler) CreateDevis(w http.ResponseWriter, r *http.Request) {
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

	var devis models.Devis
	if err := json.NewDecoder(r.Body).Decode(&devis); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if devis.CoupleID == 0 || len(devis.Items) == 0 {
		http.Error(w, "couple_id and at least one item are required", http.StatusBadRequest)
		return
	}
	for _, item := range devis.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			http.Error(w, "Item quantities must be positive and prices non-negative", http.StatusBadRequest)
			return
		}
	}
	devis.PrestataireID = profile.ID

	created, err := h.Service.CreateDevis(r.Context(), devis)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DevisHandler) SendDevis(w http.ResponseWriter, r *http.Request) {
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

	id, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid devis ID", http.StatusBadRequest)
		return
	}

	devis, err := h.Service.SendDevis(r.Context(), id, profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devis)
}

type devisRespondRequest struct {
	Accepted bool `json:"accepted"`
}

// RespondDevis records the couple's accept or reject decision on a sent devis.
func (h *DevisHandler) RespondDevis(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "Invalid devis ID", http.StatusBadRequest)
		return
	}

	var req devisRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	devis, err := h.Service.RespondDevis(r.Context(), id, couple.ID, req.Accepted)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devis)
}

func (h *DevisHandler) GetDevisByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid devis ID", http.StatusBadRequest)
		return
	}

	devis, err := h.Service.GetDevisByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devis)
}

func (h *DevisHandler) ListForCouple(w http.ResponseWriter, r *http.Request) {
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

func (h *DevisHandler) ListForPrestataire(w http.ResponseWriter, r *http.Request) {
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
