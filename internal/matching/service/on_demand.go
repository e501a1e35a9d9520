package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/collabhub/project-match/config"
	"github.com/collabhub/project-match/internal/logging"
	"github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/matching/finder"
	"github.com/collabhub/project-match/internal/matching/scoring"
)

// Draft is an unsaved project description submitted for matching.
type Draft struct {
	Name             string `json:"name"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Domain           string `json:"domain"`
	TechnologiesUsed string `json:"technologiesUsed"`
}

// Project converts the draft to a scoring subject owned by creator. Name
// takes precedence over title.
func (d Draft) Project(creator domain.Creator) domain.Project {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = strings.TrimSpace(d.Title)
	}
	return domain.Project{
		Name:             name,
		Description:      d.Description,
		Domain:           d.Domain,
		TechnologiesUsed: d.TechnologiesUsed,
		Creator:          creator,
	}
}

// OnDemandMatcher answers ai-matching requests with the free-text scorer.
// It never sends notifications.
type OnDemandMatcher struct {
	corpus    CorpusSource
	scorer    scoring.FreeTextScorer
	threshold domain.Score
	limit     int
	maxCorpus int
}

func NewOnDemandMatcher(corpus CorpusSource, cfg config.MatchingConfig) *OnDemandMatcher {
	return &OnDemandMatcher{
		corpus:    corpus,
		scorer:    scoring.NewFreeTextScorer(scoring.ParseDescriptionMode(cfg.AIDescriptionMode)),
		threshold: domain.Percent(cfg.AIThreshold),
		limit:     cfg.AILimit,
		maxCorpus: cfg.MaxCorpus,
	}
}

// Match returns up to limit projects whose score exceeds the threshold,
// highest first. Projects by caller are excluded. A draft without a
// description is rejected with domain.ErrInvalidDraft.
func (m *OnDemandMatcher) Match(ctx context.Context, d Draft, caller domain.Creator) (res []domain.MatchResult, err error) {
	defer func() { recordOnDemandCall(err) }()

	if strings.TrimSpace(d.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidDraft)
	}

	corpus, err := m.corpus.Snapshot(ctx, m.maxCorpus)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	res, err = finder.Find(ctx, d.Project(caller), corpus, m.scorer, finder.Options{
		Threshold: m.threshold,
		Limit:     m.limit,
	})
	if err != nil {
		return nil, err
	}

	logging.NewLogger(ctx).LogDebugf("AIMatching", "%d of %d projects matched draft %q", len(res), len(corpus), d.Project(caller).Name)
	return res, nil
}
