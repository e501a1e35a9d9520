package dispatch

import (
	"fmt"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/notifications/domain"
)

const (
	toExistingFormat = "🎯 Project Match Alert! Your project '%s' has a %s%% similarity with '%s' by %s. This could be a great collaboration opportunity!"
	toNewFormat      = "🎯 Similar Project Found! Your project '%s' matches %s%% with '%s' by %s. Consider connecting for potential collaboration!"
)

// BuildIntents returns the two intents of a match between a newly created
// project and an existing one: the existing owner first, then the new owner.
func BuildIntents(created, existing matching.Project, score matching.Score) [2]domain.Intent {
	pct := percentText(score)
	similarity := fraction(score)

	return [2]domain.Intent{
		{
			Recipient:  existing.Creator,
			Title:      domain.MatchTitle,
			Message:    fmt.Sprintf(toExistingFormat, existing.Name, pct, created.Name, created.Creator.DisplayName()),
			Type:       domain.TypeProjectMatch,
			Direction:  domain.ToExistingOwner,
			Project:    existing,
			Match:      created,
			Similarity: similarity,
		},
		{
			Recipient:  created.Creator,
			Title:      domain.MatchTitle,
			Message:    fmt.Sprintf(toNewFormat, created.Name, pct, existing.Name, existing.Creator.DisplayName()),
			Type:       domain.TypeProjectMatch,
			Direction:  domain.ToNewOwner,
			Project:    created,
			Match:      existing,
			Similarity: similarity,
		},
	}
}

func fraction(s matching.Score) float64 {
	if s.Unit == matching.UnitPercent {
		return s.Value / 100
	}
	return s.Value
}

func percentText(s matching.Score) string {
	return fmt.Sprintf("%.0f", fraction(s)*100)
}
