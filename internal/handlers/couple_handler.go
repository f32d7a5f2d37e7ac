package handlers

import (
	"encoding/json"
	"net/http"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type CoupleHandler struct {
	Service *services.CoupleService
}

func (h *CoupleHandler) CreateCouple(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var couple models.CoupleProfile
	if err := json.NewDecoder(r.Body).Decode(&couple); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	couple.UserID = userID

	created, err := h.Service.CreateCouple(r.Context(), couple)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CoupleHandler) GetMyCouple(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	couple, err := h.Service.GetCoupleByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, couple)
}

func (h *CoupleHandler) UpdateCouple(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid couple ID", http.StatusBadRequest)
		return
	}

	var couple models.CoupleProfile
	if err := json.NewDecoder(r.Body).Decode(&couple); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	couple.ID = id
	couple.UserID = userID

	if err := h.Service.UpdateCouple(r.Context(), couple); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, couple)
}

func (h *CoupleHandler) DeactivateCouple(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid couple ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeactivateCouple(r.Context(), id, userID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoupleHandler) UpsertBillingInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	couple, err := h.Service.GetCoupleByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	var info models.CoupleBillingInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	info.CoupleID = couple.ID

	saved, err := h.Service.UpsertBillingInfo(r.Context(), info)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
