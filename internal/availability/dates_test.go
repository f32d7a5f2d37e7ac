package availability

import (
	"reflect"
	"testing"

	"mariageBack/internal/models"
)

func slot(start, end string, status models.SlotStatus) models.AvailabilitySlot {
	return models.AvailabilitySlot{StartDate: start, EndDate: end, Status: status}
}

func TestExpandSlotDates(t *testing.T) {
	days := ExpandSlotDates(slot("2025-06-01", "2025-06-03", models.SlotStatusUnavailable))
	want := []string{"2025-06-01", "2025-06-02", "2025-06-03"}
	if !reflect.DeepEqual(days, want) {
		t.Fatalf("expected %v, got %v", want, days)
	}
}

func TestExpandSlotDates_SingleDay(t *testing.T) {
	days := ExpandSlotDates(slot("2025-06-01", "2025-06-01", models.SlotStatusTentative))
	if len(days) != 1 || days[0] != "2025-06-01" {
		t.Fatalf("expected one day, got %v", days)
	}
}

func TestExpandSlotDates_MonthBoundary(t *testing.T) {
	days := ExpandSlotDates(slot("2025-02-27", "2025-03-02", models.SlotStatusUnavailable))
	want := []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if !reflect.DeepEqual(days, want) {
		t.Fatalf("expected %v, got %v", want, days)
	}
}

func TestBuildDateMap_UnavailableWins(t *testing.T) {
	unavailableFirst := []models.AvailabilitySlot{
		slot("2025-06-01", "2025-06-03", models.SlotStatusUnavailable),
		slot("2025-06-02", "2025-06-05", models.SlotStatusTentative),
	}
	tentativeFirst := []models.AvailabilitySlot{
		slot("2025-06-02", "2025-06-05", models.SlotStatusTentative),
		slot("2025-06-01", "2025-06-03", models.SlotStatusUnavailable),
	}

	a := BuildDateMap(unavailableFirst)
	b := BuildDateMap(tentativeFirst)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("merge must be order-independent: %v vs %v", a, b)
	}
	if a["2025-06-02"] != models.SlotStatusUnavailable {
		t.Fatalf("expected unavailable to win on 2025-06-02, got %q", a["2025-06-02"])
	}
	if a["2025-06-05"] != models.SlotStatusTentative {
		t.Fatalf("expected tentative on 2025-06-05, got %q", a["2025-06-05"])
	}
}

func TestBuildDateMap_Idempotent(t *testing.T) {
	slots := []models.AvailabilitySlot{
		slot("2025-06-01", "2025-06-03", models.SlotStatusUnavailable),
		slot("2025-06-10", "2025-06-10", models.SlotStatusTentative),
	}
	if !reflect.DeepEqual(BuildDateMap(slots), BuildDateMap(slots)) {
		t.Fatal("expected identical maps on repeated calls")
	}
}

func TestStatusOn(t *testing.T) {
	slots := []models.AvailabilitySlot{
		slot("2025-06-01", "2025-06-03", models.SlotStatusUnavailable),
	}

	status, covered := StatusOn(slots, "2025-06-02")
	if !covered || status != models.SlotStatusUnavailable {
		t.Fatalf("expected unavailable on 2025-06-02, got %q covered=%v", status, covered)
	}

	if _, covered := StatusOn(slots, "2025-06-04"); covered {
		t.Fatal("expected 2025-06-04 to be free of any slot")
	}
}

func TestOverlaps(t *testing.T) {
	s := slot("2025-06-10", "2025-06-20", models.SlotStatusUnavailable)

	cases := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"inside", "2025-06-12", "2025-06-15", true},
		{"touching start", "2025-06-01", "2025-06-10", true},
		{"touching end", "2025-06-20", "2025-06-30", true},
		{"before", "2025-05-01", "2025-06-09", false},
		{"after", "2025-06-21", "2025-07-01", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(s, tc.from, tc.to); got != tc.want {
				t.Fatalf("Overlaps(%s..%s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestFilterWindow(t *testing.T) {
	slots := []models.AvailabilitySlot{
		slot("2025-06-01", "2025-06-03", models.SlotStatusUnavailable),
		slot("2025-08-01", "2025-08-02", models.SlotStatusTentative),
	}
	kept := FilterWindow(slots, "2025-06-01", "2025-06-30")
	if len(kept) != 1 || kept[0].StartDate != "2025-06-01" {
		t.Fatalf("expected only the June slot, got %v", kept)
	}
}
