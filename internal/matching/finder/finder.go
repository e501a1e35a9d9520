// Package finder scans a project corpus for matches of one subject.
package finder

import (
	"context"
	"fmt"
	"sort"

	"github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/matching/scoring"
)

// Options controls one Find pass.
type Options struct {
	// Threshold must be in the scorer's unit. Kept scores are strictly above it.
	Threshold domain.Score
	// Limit caps the result size; 0 means unbounded.
	Limit int
	// SameAuthor excludes pairs created by one person. Defaults to domain.SameAuthor.
	SameAuthor func(a, b domain.Project) bool
}

// Find scores every candidate in corpus against subject and returns the
// matches above the threshold, highest first. Ties keep corpus order.
//
// The subject itself (same non-empty id) and same-author candidates are
// skipped. A cancelled ctx stops the scan and returns ctx.Err().
func Find(ctx context.Context, subject domain.Project, corpus []domain.Project, scorer scoring.Scorer, opt Options) ([]domain.MatchResult, error) {
	if opt.Threshold.Unit != scorer.Unit() {
		return nil, fmt.Errorf("%w: threshold is %s, scorer returns %s", domain.ErrUnitMismatch, opt.Threshold.Unit, scorer.Unit())
	}
	sameAuthor := opt.SameAuthor
	if sameAuthor == nil {
		sameAuthor = domain.SameAuthor
	}

	out := make([]domain.MatchResult, 0)
	for _, candidate := range corpus {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if subject.ID != "" && candidate.ID == subject.ID {
			continue
		}
		if sameAuthor(subject, candidate) {
			continue
		}

		score := scorer.Score(subject, candidate)
		ok, err := score.Exceeds(opt.Threshold)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, domain.MatchResult{Project: candidate, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.Value > out[j].Score.Value
	})

	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}
