package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mariageBack/internal/matching"
	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

// Match pairs a prestataire with the couple's compatibility result.
type Match struct {
	Prestataire models.PrestataireProfile `json:"prestataire"`
	Result      matching.Result           `json:"result"`
}

type MatchingService struct {
	CoupleRepo      *repositories.CoupleRepository
	PrestataireRepo *repositories.PrestataireRepository
	AI              *OpenAIClient
	AIModel         string
}

// FindMatches scores every prestataire of the category against the couple
// and returns them best first. Scoring itself is pure; this method only does
// the fetching around it.
func (s *MatchingService) FindMatches(ctx context.Context, coupleUserID int, category string) ([]Match, error) {
	couple, err := s.CoupleRepo.GetCoupleByUserID(ctx, coupleUserID)
	if err != nil {
		return nil, err
	}
	if !couple.IsActive {
		return nil, models.ErrProfileDeactivated
	}

	profiles, err := s.PrestataireRepo.GetPrestatairesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(profiles))
	for _, p := range profiles {
		matches = append(matches, Match{
			Prestataire: p,
			Result:      matching.CalculateOverallCompatibility(couple, p, category),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Overall > matches[j].Result.Overall
	})
	return matches, nil
}

// ExplainForUser scores a single prestataire against the caller's couple
// profile and returns the match with a personalised explanation.
func (s *MatchingService) ExplainForUser(ctx context.Context, coupleUserID, prestataireID int) (Match, string, error) {
	couple, err := s.CoupleRepo.GetCoupleByUserID(ctx, coupleUserID)
	if err != nil {
		return Match{}, "", err
	}
	prestataire, err := s.PrestataireRepo.GetPrestataireByID(ctx, prestataireID)
	if err != nil {
		return Match{}, "", err
	}
	match := Match{
		Prestataire: prestataire,
		Result:      matching.CalculateOverallCompatibility(couple, prestataire, prestataire.Category),
	}
	return match, s.ExplainMatch(ctx, couple, match), nil
}

// ExplainMatch asks the language model for a short personalised explanation
// of one match. When the client is unconfigured or errors, the engine's
// templated reason is returned instead — the raw score never depends on AI.
func (s *MatchingService) ExplainMatch(ctx context.Context, couple models.CoupleProfile, match Match) string {
	if s.AI == nil {
		return match.Result.Reason
	}

	prompt := fmt.Sprintf(
		"Explique en deux phrases, en français, pourquoi le prestataire %q (catégorie %s) correspond à un mariage à %s pour %d invités. Scores: budget %d, localisation %d, capacité %d, culture %d, style %d.",
		match.Prestataire.BusinessName, match.Prestataire.Category,
		couple.WeddingCity, couple.GuestCount,
		match.Result.Breakdown.Budget, match.Result.Breakdown.Location,
		match.Result.Breakdown.Capacity, match.Result.Breakdown.Cultural,
		match.Result.Breakdown.Style,
	)

	resp, err := s.AI.Complete(ctx, ChatCompletionRequest{
		Model:       s.AIModel,
		Temperature: 0.4,
		Messages: []ChatMessage{
			{Role: "system", Content: "Tu es l'assistant d'une place de marché de prestataires de mariage."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return match.Result.Reason
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return match.Result.Reason
	}
	return text
}
