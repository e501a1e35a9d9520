// Package scoring holds the pairwise similarity strategies used by the
// matching engine.
package scoring

import "github.com/collabhub/project-match/internal/matching/domain"

// Scorer rates how similar candidate is to subject. Every score a Scorer
// returns is expressed in the Scorer's Unit.
type Scorer interface {
	Score(subject, candidate domain.Project) domain.Score
	Unit() domain.Unit
}
