package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"mariageBack/internal/availability"
	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type AvailabilityHandler struct {
	Service     *services.AvailabilityService
	Prestataire *services.PrestataireService
}

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validDay(s string) bool {
	if !dayPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(availability.DayLayout, s)
	return err == nil
}

func (h *AvailabilityHandler) callerProfile(r *http.Request) (models.PrestataireProfile, bool) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		return models.PrestataireProfile{}, false
	}
	profile, err := h.Prestataire.GetPrestataireByUserID(r.Context(), userID)
	if err != nil {
		return models.PrestataireProfile{}, false
	}
	return profile, true
}

func (h *AvailabilityHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var slot models.AvailabilitySlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validDay(slot.StartDate) || !validDay(slot.EndDate) {
		http.Error(w, "Dates must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if slot.EndDate < slot.StartDate {
		http.Error(w, "end_date must not precede start_date", http.StatusBadRequest)
		return
	}
	if slot.Status != models.SlotStatusUnavailable && slot.Status != models.SlotStatusTentative {
		http.Error(w, "Status must be unavailable or tentative", http.StatusBadRequest)
		return
	}
	slot.PrestataireID = profile.ID

	created, err := h.Service.CreateSlot(r.Context(), slot)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AvailabilityHandler) GetMySlots(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	slots, err := h.Service.GetSlots(r.Context(), profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// GetMyCalendar returns the per-day merged view, one status per date,
// with unavailable winning over tentative when slots overlap.
func (h *AvailabilityHandler) GetMyCalendar(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	calendar, err := h.Service.GetCalendar(r.Context(), profile.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendar)
}

func (h *AvailabilityHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid slot ID", http.StatusBadRequest)
		return
	}

	var slot models.AvailabilitySlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validDay(slot.StartDate) || !validDay(slot.EndDate) || slot.EndDate < slot.StartDate {
		http.Error(w, "Dates must be YYYY-MM-DD and ordered", http.StatusBadRequest)
		return
	}
	slot.ID = id
	slot.PrestataireID = profile.ID

	if err := h.Service.UpdateSlot(r.Context(), slot); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.callerProfile(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid slot ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteSlot(r.Context(), id, profile.ID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPublicAvailability serves the anonymous calendar of one prestataire.
// The window defaults to the next twelve months when from/to are omitted.
func (h *AvailabilityHandler) GetPublicAvailability(w http.ResponseWriter, r *http.Request) {
	prestataireID, ok := getIntParam(r, "prestataire_id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}

	now := time.Now()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" {
		from = now.Format(availability.DayLayout)
	}
	if to == "" {
		to = now.AddDate(1, 0, 0).Format(availability.DayLayout)
	}
	if !validDay(from) || !validDay(to) {
		http.Error(w, "from and to must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if to < from {
		http.Error(w, "to must not precede from", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.GetPublicAvailability(r.Context(), prestataireID, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CheckDate answers whether a single date is free for the prestataire.
func (h *AvailabilityHandler) CheckDate(w http.ResponseWriter, r *http.Request) {
	prestataireID, ok := getIntParam(r, "prestataire_id")
	if !ok {
		http.Error(w, "Invalid prestataire ID", http.StatusBadRequest)
		return
	}
	day := r.URL.Query().Get("date")
	if !validDay(day) {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	status, blocked, err := h.Service.StatusOnDate(r.Context(), prestataireID, day)
	if err != nil {
		serviceError(w, err)
		return
	}

	resp := map[string]interface{}{"date": day, "available": !blocked}
	if blocked {
		resp["status"] = status
	}
	writeJSON(w, http.StatusOK, resp)
}
