package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/matching/tokenizer"
)

// Weights of the free-text scorer, in percentage points.
const (
	DomainWeight         = 40.0
	TechnologyWeight     = 35.0
	SimpleDescWeight     = 25.0
	WordOverlapWeight    = 70.0
	PhraseOverlapWeight  = 30.0
	DescriptionBonus     = 10.0
	phrasePrefixLen      = 20
	bonusMinLen          = 20
	bonusSimilarity      = 0.6
	fuzzyWordSimilarity  = 0.75
	minPhraseCommonWords = 3
)

var techSplit = regexp.MustCompile(`[,\s]+`)

// DescriptionMode selects how descriptions are compared.
type DescriptionMode int

const (
	// DescriptionRich uses word overlap with fuzzy matching, phrase overlap
	// and the whole-description bonus.
	DescriptionRich DescriptionMode = iota
	// DescriptionSimple counts exact shared words longer than three
	// characters, for a maximum of 25 points.
	DescriptionSimple
)

// ParseDescriptionMode maps "rich" and "simple" to a mode.
func ParseDescriptionMode(s string) DescriptionMode {
	if strings.EqualFold(strings.TrimSpace(s), "simple") {
		return DescriptionSimple
	}
	return DescriptionRich
}

// FreeTextScorer rates a draft project against a persisted one using
// domain, technology and description similarity. The result is an integer
// percent in [0,100]. It is directional: Score(a, b) may differ from
// Score(b, a) because each subject token is matched at most once against
// the candidate's tokens.
type FreeTextScorer struct {
	mode DescriptionMode
}

func NewFreeTextScorer(mode DescriptionMode) FreeTextScorer {
	return FreeTextScorer{mode: mode}
}

func (FreeTextScorer) Unit() domain.Unit { return domain.UnitPercent }

func (f FreeTextScorer) Score(subject, candidate domain.Project) domain.Score {
	total := domainScore(subject.Domain, candidate.Domain) +
		technologyScore(subject.TechnologiesUsed, candidate.TechnologiesUsed)

	if f.mode == DescriptionSimple {
		total += simpleDescriptionScore(subject.Description, candidate.Description)
	} else {
		total += wordOverlapScore(subject.Description, candidate.Description) +
			phraseOverlapScore(subject.Description, candidate.Description) +
			descriptionBonus(subject.Description, candidate.Description)
	}

	if total > 100 {
		total = 100
	}
	return domain.Percent(int(total))
}

func domainScore(in, other string) float64 {
	in = strings.ToLower(strings.TrimSpace(in))
	other = strings.ToLower(strings.TrimSpace(other))
	if in == "" || other == "" {
		return 0
	}
	if in == other {
		return DomainWeight
	}
	if strings.Contains(in, other) || strings.Contains(other, in) {
		return DomainWeight / 2
	}
	return 0
}

func splitTechnologies(s string) []string {
	parts := techSplit.Split(strings.ToLower(s), -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func technologyScore(in, other string) float64 {
	inTech, otherTech := splitTechnologies(in), splitTechnologies(other)
	if len(inTech) == 0 || len(otherTech) == 0 {
		return 0
	}

	common := 0
	for _, t1 := range inTech {
		for _, t2 := range otherTech {
			if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
				common++
				break
			}
		}
	}
	return TechnologyWeight * float64(common) / float64(max(len(inTech), len(otherTech)))
}

func simpleDescriptionScore(in, other string) float64 {
	inWords := strings.Fields(strings.ToLower(in))
	otherWords := strings.Fields(strings.ToLower(other))
	if len(inWords) == 0 || len(otherWords) == 0 {
		return 0
	}

	common := 0
	for _, w1 := range inWords {
		if len(w1) <= 3 {
			continue
		}
		for _, w2 := range otherWords {
			if w1 == w2 {
				common++
				break
			}
		}
	}
	return SimpleDescWeight * float64(common) / float64(max(len(inWords), len(otherWords)))
}

func wordsMatch(w1, w2 string) bool {
	if w1 == w2 {
		return true
	}
	if len(w1) > 4 && len(w2) > 4 && (strings.Contains(w1, w2) || strings.Contains(w2, w1)) {
		return true
	}
	return len(w1) > 3 && len(w2) > 3 && similarAbove(w1, w2, fuzzyWordSimilarity)
}

func wordOverlapScore(in, other string) float64 {
	inWords := tokenizer.Words(in, 3)
	otherWords := tokenizer.Words(other, 3)
	if len(inWords) == 0 || len(otherWords) == 0 {
		return 0
	}

	matched := 0
	for _, w1 := range inWords {
		for _, w2 := range otherWords {
			if wordsMatch(w1, w2) {
				matched++
				break
			}
		}
	}
	return WordOverlapWeight * float64(matched) / float64(max(len(inWords), len(otherWords)))
}

func prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func phraseOverlapScore(in, other string) float64 {
	in = strings.ToLower(strings.TrimSpace(in))
	other = strings.ToLower(strings.TrimSpace(other))
	if in == "" || other == "" {
		return 0
	}
	if strings.Contains(other, prefix(in, phrasePrefixLen)) || strings.Contains(in, prefix(other, phrasePrefixLen)) {
		return PhraseOverlapWeight
	}

	inSentences := tokenizer.SplitSentences(in)
	otherSentences := tokenizer.SplitSentences(other)
	if len(inSentences) == 0 || len(otherSentences) == 0 {
		return 0
	}

	otherSets := make([]tokenizer.TokenSet, len(otherSentences))
	for i, s := range otherSentences {
		otherSets[i] = meaningfulWords(s)
	}

	common := 0
	for _, s := range inSentences {
		words := meaningfulWords(s)
		for _, o := range otherSets {
			if words.Intersect(o) >= minPhraseCommonWords {
				common++
				break
			}
		}
	}
	return PhraseOverlapWeight * float64(common) / float64(max(len(inSentences), len(otherSentences)))
}

func meaningfulWords(sentence string) tokenizer.TokenSet {
	set := make(tokenizer.TokenSet)
	for _, w := range tokenizer.Words(sentence, 4) {
		set[w] = struct{}{}
	}
	return set
}

func descriptionBonus(in, other string) float64 {
	in = strings.ToLower(strings.TrimSpace(in))
	other = strings.ToLower(strings.TrimSpace(other))
	if utf8.RuneCountInString(in) <= bonusMinLen || utf8.RuneCountInString(other) <= bonusMinLen {
		return 0
	}
	if similarAbove(in, other, bonusSimilarity) {
		return DescriptionBonus
	}
	return 0
}
