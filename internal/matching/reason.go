package matching

import (
	"fmt"
	"sort"
)

type criterionScore struct {
	label string
	score int
}

// buildReason names the strongest contributing criteria in a short French
// sentence. Ties break on the fixed criterion order so the output stays
// deterministic.
func buildReason(b Breakdown) string {
	criteria := []criterionScore{
		{"budget", b.Budget},
		{"localisation", b.Location},
		{"capacité d'accueil", b.Capacity},
		{"affinité culturelle", b.Cultural},
		{"style", b.Style},
	}
	sort.SliceStable(criteria, func(i, j int) bool {
		return criteria[i].score > criteria[j].score
	})

	first, second := criteria[0], criteria[1]
	switch {
	case first.score >= 80 && second.score >= 80:
		return fmt.Sprintf("%s et %s excellents", capitalize(first.label), second.label)
	case first.score >= 80:
		return fmt.Sprintf("%s excellent", capitalize(first.label))
	case first.score >= 55:
		return fmt.Sprintf("Bonne correspondance : %s", first.label)
	default:
		return "Correspondance partielle avec vos critères"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	// criterion labels are plain ASCII-leading words
	return string(s[0]-32) + s[1:]
}
