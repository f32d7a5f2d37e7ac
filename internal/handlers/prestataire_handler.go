package handlers

import (
	"encoding/json"
	"net/http"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
	"mariageBack/utils"
)

type PrestataireHandler struct {
	Service *services.PrestataireService
	Storage *utils.StorageClient
}

func (h *PrestataireHandler) CreatePrestataire(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile models.PrestataireProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if profile.BusinessName == "" || profile.Category == "" {
		http.Error(w, "Business name and category are required", http.StatusBadRequest)
		return
	}
	profile.UserID = userID

	created, err := h.Service.CreatePrestataire(r.Context(), profile)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PrestataireHandler) GetPrestataireByID(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	profile, err := h.Service.GetPrestataireByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *PrestataireHandler) GetMyPrestataire(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.Service.GetPrestataireByUserID(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *PrestataireHandler) GetPrestatairesByCategory(w http.ResponseWriter, r *http.Request) {
	category := getParam(r, "category")
	if category == "" {
		http.Error(w, "Missing category", http.StatusBadRequest)
		return
	}

	profiles, err := h.Service.GetPrestatairesByCategory(r.Context(), category)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *PrestataireHandler) UpdatePrestataire(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	var profile models.PrestataireProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	profile.ID = id
	profile.UserID = userID

	if err := h.Service.UpdatePrestataire(r.Context(), profile); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UploadPortfolioImage receives a multipart file, pushes it to object
// storage and appends the resulting URL to the profile portfolio.
func (h *PrestataireHandler) UploadPortfolioImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadFile(r.Context(), file, header.Filename, "portfolio")
	if err != nil {
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	if err := h.Service.AddPortfolioImage(r.Context(), id, userID, url); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
