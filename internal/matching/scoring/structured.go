package scoring

import "github.com/collabhub/project-match/internal/matching/domain"

// Field weights of the structured scorer. They sum to 1.
const (
	DescriptionWeight = 0.5
	NameWeight        = 0.3
	CountryWeight     = 0.1
	LanguageWeight    = 0.1
)

// StructuredScorer compares two persisted projects field by field and
// returns a fraction in [0,1]. It is symmetric.
type StructuredScorer struct{}

func NewStructuredScorer() StructuredScorer {
	return StructuredScorer{}
}

func (StructuredScorer) Unit() domain.Unit { return domain.UnitFraction }

func (StructuredScorer) Score(subject, candidate domain.Project) domain.Score {
	s := Jaccard(subject.Description, candidate.Description)*DescriptionWeight +
		Jaccard(subject.Name, candidate.Name)*NameWeight +
		ExactMatch(subject.Country, candidate.Country)*CountryWeight +
		ExactMatch(subject.Language, candidate.Language)*LanguageWeight
	return domain.Fraction(s)
}

// Breakdown returns the unweighted field similarities, for logging.
func (StructuredScorer) Breakdown(subject, candidate domain.Project) map[string]float64 {
	return map[string]float64{
		"description": Jaccard(subject.Description, candidate.Description),
		"name":        Jaccard(subject.Name, candidate.Name),
		"country":     ExactMatch(subject.Country, candidate.Country),
		"language":    ExactMatch(subject.Language, candidate.Language),
	}
}
