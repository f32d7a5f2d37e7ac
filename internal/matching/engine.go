// Package matching scores a couple against a prestataire on five criteria
// (budget, location, capacity, cultural affinity, style) and aggregates them
// into a weighted 0-100 compatibility score. Everything here is a pure
// function over already-fetched profiles: no I/O, no randomness, identical
// inputs always produce identical output.
package matching

import (
	"math"
	"strings"

	"mariageBack/internal/models"
)

// neutralScore is used when a criterion cannot be judged because one side
// never filled in the relevant fields. Neither a bonus nor a penalty.
const neutralScore = 50.0

// budgetDecayTolerance is the relative distance between disjoint price and
// budget ranges beyond which the budget score bottoms out at zero. A provider
// priced 50% above the couple's ceiling scores 0.
const budgetDecayTolerance = 0.5

type Breakdown struct {
	Budget   int `json:"budget"`
	Location int `json:"location"`
	Capacity int `json:"capacity"`
	Cultural int `json:"cultural"`
	Style    int `json:"style"`
}

type Result struct {
	Overall   int       `json:"overall"`
	Breakdown Breakdown `json:"breakdown"`
	Reason    string    `json:"reason"`
}

// CalculateOverallCompatibility computes the weighted compatibility of one
// couple/prestataire pair for a service category.
func CalculateOverallCompatibility(couple models.CoupleProfile, p models.PrestataireProfile, category string) Result {
	budgetMin, budgetMax := couple.BudgetFor(category)

	budget := budgetScore(p.PriceMin, p.PriceMax, budgetMin, budgetMax)
	location := locationScore(couple, p)
	capacity := capacityScore(couple.GuestCount, p.CapacityMin, p.CapacityMax)
	cultural := culturalScore(couple, p)
	style := overlapScore(couple.StylePreferences, p.StyleTags)

	w := weightsFor(couple.CategoryPriorities, category)
	overall := w.Budget*budget +
		w.Location*location +
		w.Capacity*capacity +
		w.Cultural*cultural +
		w.Style*style

	breakdown := Breakdown{
		Budget:   roundScore(budget),
		Location: roundScore(location),
		Capacity: roundScore(capacity),
		Cultural: roundScore(cultural),
		Style:    roundScore(style),
	}

	return Result{
		Overall:   roundScore(overall),
		Breakdown: breakdown,
		Reason:    buildReason(breakdown),
	}
}

// budgetScore measures how well the prestataire's price band fits the
// couple's budget band for the category. Overlapping bands score 60-100,
// growing with the overlapped share of the narrower band. Disjoint bands
// decay linearly from 60 to 0 with the relative gap between them.
func budgetScore(priceMin, priceMax, budgetMin, budgetMax float64) float64 {
	if priceMax <= 0 || budgetMax <= 0 {
		return neutralScore
	}

	overlap := math.Min(priceMax, budgetMax) - math.Max(priceMin, budgetMin)
	if overlap >= 0 {
		span := math.Min(priceMax-priceMin, budgetMax-budgetMin)
		if span <= 0 {
			return 100
		}
		return 60 + 40*clamp01(overlap/span)
	}

	var gap, edge float64
	if priceMin > budgetMax {
		gap, edge = priceMin-budgetMax, budgetMax
	} else {
		gap, edge = budgetMin-priceMax, budgetMin
	}
	if edge <= 0 {
		return 0
	}
	rel := gap / edge
	return clampScore(60 * (1 - rel/budgetDecayTolerance))
}

// locationScore gives full credit for an exact city match against any of the
// prestataire's service locations, partial credit for a shared region.
func locationScore(couple models.CoupleProfile, p models.PrestataireProfile) float64 {
	city := strings.TrimSpace(couple.WeddingCity)
	if city == "" {
		return neutralScore
	}
	for _, loc := range p.ServiceLocations {
		if strings.EqualFold(strings.TrimSpace(loc), city) {
			return 100
		}
	}
	if couple.WeddingRegion != "" && strings.EqualFold(couple.WeddingRegion, p.Region) {
		return 60
	}
	return 20
}

// capacityScore is 100 inside the prestataire's guest band and decays
// linearly with the relative distance outside it. Overshooting the ceiling by
// two thirds of the band edge is already a zero.
func capacityScore(guestCount, capMin, capMax int) float64 {
	if guestCount <= 0 || capMax <= 0 {
		return neutralScore
	}
	if guestCount >= capMin && guestCount <= capMax {
		return 100
	}

	var rel float64
	if guestCount > capMax {
		rel = float64(guestCount-capMax) / float64(capMax)
	} else {
		rel = float64(capMin-guestCount) / float64(capMin)
	}
	return clampScore(100 - 150*rel)
}

// culturalScore folds the primary cultural-background overlap with languages
// and dietary options as secondary signals.
func culturalScore(couple models.CoupleProfile, p models.PrestataireProfile) float64 {
	if len(couple.CulturalBackgrounds) == 0 {
		return neutralScore
	}
	primary := overlapScore(couple.CulturalBackgrounds, p.CulturalSpecialties)
	languages := overlapScore(couple.Languages, p.Languages)
	dietary := overlapScore(couple.DietaryNeeds, p.DietaryOptions)
	return 0.70*primary + 0.15*languages + 0.15*dietary
}

// overlapScore is the shared normalized set-intersection metric: the share of
// the couple's tags the prestataire covers, case-insensitive. Either side
// empty means the criterion cannot be judged.
func overlapScore(wanted, offered []string) float64 {
	if len(wanted) == 0 || len(offered) == 0 {
		return neutralScore
	}
	offeredSet := make(map[string]struct{}, len(offered))
	for _, tag := range offered {
		offeredSet[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}
	matched := 0
	for _, tag := range wanted {
		if _, ok := offeredSet[strings.ToLower(strings.TrimSpace(tag))]; ok {
			matched++
		}
	}
	return 100 * float64(matched) / float64(len(wanted))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func roundScore(v float64) int {
	return int(math.Round(clampScore(v)))
}
