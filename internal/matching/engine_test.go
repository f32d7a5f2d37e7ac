package matching

import (
	"reflect"
	"testing"

	"mariageBack/internal/models"
)

func parisCouple() models.CoupleProfile {
	return models.CoupleProfile{
		WeddingCity:         "Paris",
		GuestCount:          150,
		BudgetMin:           10000,
		BudgetMax:           45000,
		CategoryBudgets:     map[string]float64{"photography": 4000},
		CulturalBackgrounds: []string{"maghrébin"},
	}
}

func TestCalculateOverallCompatibility_StrongMatch(t *testing.T) {
	couple := parisCouple()
	p := models.PrestataireProfile{
		BusinessName:        "Atelier Lumière",
		Category:            "photography",
		ServiceLocations:    []string{"Paris"},
		PriceMin:            3500,
		PriceMax:            4500,
		CapacityMin:         100,
		CapacityMax:         200,
		CulturalSpecialties: []string{"maghrébin"},
	}

	res := CalculateOverallCompatibility(couple, p, "photography")
	if res.Overall < 85 {
		t.Fatalf("expected overall >= 85, got %d (breakdown %+v)", res.Overall, res.Breakdown)
	}
	if res.Breakdown.Location != 100 {
		t.Errorf("expected location 100 for same city, got %d", res.Breakdown.Location)
	}
	if res.Breakdown.Capacity != 100 {
		t.Errorf("expected capacity 100 inside band, got %d", res.Breakdown.Capacity)
	}
	if res.Reason == "" {
		t.Error("expected a non-empty reason")
	}
}

func TestCalculateOverallCompatibility_WeakMatch(t *testing.T) {
	couple := parisCouple()
	p := models.PrestataireProfile{
		BusinessName:        "Studio Presqu'île",
		Category:            "photography",
		ServiceLocations:    []string{"Lyon"},
		PriceMin:            2000,
		PriceMax:            3000,
		CapacityMin:         50,
		CapacityMax:         100,
		CulturalSpecialties: []string{"japonais"},
	}

	res := CalculateOverallCompatibility(couple, p, "photography")
	if res.Overall < 40 || res.Overall > 70 {
		t.Fatalf("expected overall in [40,70], got %d (breakdown %+v)", res.Overall, res.Breakdown)
	}
	if res.Breakdown.Location >= 50 {
		t.Errorf("expected location < 50 for a different city, got %d", res.Breakdown.Location)
	}
	if res.Breakdown.Capacity >= 50 {
		t.Errorf("expected capacity < 50 for 150 guests vs [50,100], got %d", res.Breakdown.Capacity)
	}
}

func TestCalculateOverallCompatibility_Deterministic(t *testing.T) {
	couple := parisCouple()
	couple.Languages = []string{"français", "arabe"}
	couple.StylePreferences = []string{"bohème", "champêtre"}
	p := models.PrestataireProfile{
		ServiceLocations:    []string{"paris"},
		PriceMin:            3000,
		PriceMax:            5000,
		CapacityMin:         80,
		CapacityMax:         180,
		CulturalSpecialties: []string{"Maghrébin", "oriental"},
		Languages:           []string{"Français"},
		StyleTags:           []string{"bohème"},
	}

	first := CalculateOverallCompatibility(couple, p, "photography")
	second := CalculateOverallCompatibility(couple, p, "photography")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v then %+v", first, second)
	}
}

func TestCalculateOverallCompatibility_Bounded(t *testing.T) {
	profiles := []models.PrestataireProfile{
		{},
		{PriceMin: 100000, PriceMax: 200000, CapacityMin: 500, CapacityMax: 1000},
		{ServiceLocations: []string{"Paris"}, PriceMin: 1, PriceMax: 2, CapacityMin: 1, CapacityMax: 2},
	}
	couples := []models.CoupleProfile{
		{},
		parisCouple(),
		{WeddingCity: "Paris", GuestCount: 10000, BudgetMax: 1},
	}

	for _, couple := range couples {
		for _, p := range profiles {
			res := CalculateOverallCompatibility(couple, p, "photography")
			scores := []int{
				res.Overall,
				res.Breakdown.Budget, res.Breakdown.Location,
				res.Breakdown.Capacity, res.Breakdown.Cultural, res.Breakdown.Style,
			}
			for _, s := range scores {
				if s < 0 || s > 100 {
					t.Fatalf("score %d out of [0,100] for couple %+v vs %+v", s, couple, p)
				}
			}
		}
	}
}

func TestBudgetScore_MonotonicInOverlap(t *testing.T) {
	// Fixed provider band, growing couple ceiling: the score must never drop.
	prev := -1.0
	for ceiling := 1000.0; ceiling <= 6000; ceiling += 250 {
		score := budgetScore(3500, 4500, 0, ceiling)
		if score < prev {
			t.Fatalf("budget score decreased from %.1f to %.1f at ceiling %.0f", prev, score, ceiling)
		}
		prev = score
	}
}

func TestBudgetScore_DisjointDecay(t *testing.T) {
	near := budgetScore(4500, 5000, 0, 4000)
	far := budgetScore(7000, 8000, 0, 4000)
	if near <= far {
		t.Fatalf("closer miss must score higher: near %.1f, far %.1f", near, far)
	}
	if beyond := budgetScore(50000, 60000, 0, 4000); beyond != 0 {
		t.Fatalf("far-disjoint ranges must score 0, got %.1f", beyond)
	}
}

func TestCulturalScore_MissingFieldsNeutral(t *testing.T) {
	couple := models.CoupleProfile{WeddingCity: "Paris"}
	p := models.PrestataireProfile{CulturalSpecialties: []string{"oriental"}}
	res := CalculateOverallCompatibility(couple, p, "photography")
	if res.Breakdown.Cultural != 50 {
		t.Fatalf("expected neutral cultural score, got %d", res.Breakdown.Cultural)
	}
	if res.Breakdown.Style != 50 {
		t.Fatalf("expected neutral style score, got %d", res.Breakdown.Style)
	}
}

func TestWeightsFor_PriorityProfiles(t *testing.T) {
	t.Run("no priority falls back to defaults", func(t *testing.T) {
		if w := weightsFor(nil, "photography"); w != defaultWeights {
			t.Fatalf("expected default weights, got %+v", w)
		}
	})

	t.Run("high priority lowers price sensitivity", func(t *testing.T) {
		w := weightsFor(map[string]int{"photography": 9}, "photography")
		if w.Budget >= defaultWeights.Budget {
			t.Fatalf("expected lower budget weight, got %+v", w)
		}
	})

	t.Run("low priority raises price sensitivity", func(t *testing.T) {
		w := weightsFor(map[string]int{"photography": 2}, "photography")
		if w.Budget <= defaultWeights.Budget {
			t.Fatalf("expected higher budget weight, got %+v", w)
		}
	})
}
