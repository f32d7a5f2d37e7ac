package handlers

import (
	"net/http"
	"strconv"

	"mariageBack/internal/services"
)

type MatchingHandler struct {
	Service *services.MatchingService
}

// FindMatches scores every prestataire of the requested category against
// the calling couple's profile and returns them ranked, best first.
func (h *MatchingHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	category := getParam(r, "category")
	if category == "" {
		http.Error(w, "Missing category", http.StatusBadRequest)
		return
	}

	matches, err := h.Service.FindMatches(r.Context(), userID, category)
	if err != nil {
		serviceError(w, err)
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		if limit < len(matches) {
			matches = matches[:limit]
		}
	}

	writeJSON(w, http.StatusOK, matches)
}

type explainResponse struct {
	Match       services.Match `json:"match"`
	Explanation string         `json:"explanation"`
}

// ExplainMatch returns one prestataire's score with a short generated
// explanation in French.
func (h *MatchingHandler) ExplainMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prestataireID, ok := getIntParam(r, "prestataire_id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	match, explanation, err := h.Service.ExplainForUser(r.Context(), userID, prestataireID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, explainResponse{Match: match, Explanation: explanation})
}
