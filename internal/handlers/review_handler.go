package handlers

import (
	"encoding/json"
	"net/http"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
	Couple  *services.CoupleService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
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

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if review.PrestataireID == 0 {
		http.Error(w, "Missing prestataire_id", http.StatusBadRequest)
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}
	review.CoupleID = couple.ID

	created, err := h.Service.CreateReview(r.Context(), review)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) GetReviewsByPrestataire(w http.ResponseWriter, r *http.Request) {
	prestataireID, ok := getIntParam(r, "prestataire_id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	reviews, err := h.Service.GetReviewsByPrestataireID(r.Context(), prestataireID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}
	prestataireID, ok := getIntParam(r, "prestataire_id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteReview(r.Context(), id, prestataireID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
