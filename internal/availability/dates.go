// Package availability implements calendar-day set operations over
// prestataire availability slots. Dates are timezone-naive YYYY-MM-DD
// strings; callers validate the format before handing anything here.
package availability

import (
	"time"

	"mariageBack/internal/models"
)

const DayLayout = "2006-01-02"

// ExpandSlotDates enumerates every calendar day covered by the slot, start
// and end inclusive. An end before the start yields an empty list.
func ExpandSlotDates(slot models.AvailabilitySlot) []string {
	start, err := time.Parse(DayLayout, slot.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DayLayout, slot.EndDate)
	if err != nil {
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayLayout))
	}
	return days
}

// BuildDateMap folds a set of slots into per-day occupancy. When two slots
// cover the same day, "unavailable" wins over "tentative" no matter the
// input order, so the result is identical for any permutation of slots.
func BuildDateMap(slots []models.AvailabilitySlot) map[string]models.SlotStatus {
	dateMap := make(map[string]models.SlotStatus)
	for _, slot := range slots {
		for _, day := range ExpandSlotDates(slot) {
			existing, ok := dateMap[day]
			if ok && existing == models.SlotStatusUnavailable {
				continue
			}
			if !ok || slot.Status == models.SlotStatusUnavailable {
				dateMap[day] = slot.Status
			}
		}
	}
	return dateMap
}

// StatusOn answers a point-in-time query. The empty status means no slot
// covers the day, i.e. the prestataire is bookable.
func StatusOn(slots []models.AvailabilitySlot, day string) (models.SlotStatus, bool) {
	status, ok := BuildDateMap(slots)[day]
	return status, ok
}

// Overlaps is the standard closed-interval overlap test used by the public
// availability window query.
func Overlaps(slot models.AvailabilitySlot, from, to string) bool {
	return slot.StartDate <= to && slot.EndDate >= from
}

// FilterWindow keeps the slots intersecting [from, to].
func FilterWindow(slots []models.AvailabilitySlot, from, to string) []models.AvailabilitySlot {
	kept := []models.AvailabilitySlot{}
	for _, slot := range slots {
		if Overlaps(slot, from, to) {
			kept = append(kept, slot)
		}
	}
	return kept
}
