package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/collabhub/project-match/config"
	"github.com/collabhub/project-match/internal/events"
	"github.com/collabhub/project-match/internal/logging"
	"github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/matching/finder"
	"github.com/collabhub/project-match/internal/matching/scoring"
	"github.com/collabhub/project-match/internal/notifications/dispatch"
)

// CorpusSource returns the most recent projects, newest first.
type CorpusSource interface {
	Snapshot(ctx context.Context, limit int) ([]domain.Project, error)
}

// Dispatcher notifies both owners of a match.
type Dispatcher interface {
	Dispatch(ctx context.Context, created domain.Project, m domain.MatchResult) dispatch.Report
}

// Outcome summarises one automatic pass.
type Outcome struct {
	Candidates int
	Qualifying int
	Report     dispatch.Report
}

// AutoMatcher runs the structured matching pass for newly created projects
// and notifies both owners of every strong match.
type AutoMatcher struct {
	corpus      CorpusSource
	dispatcher  Dispatcher
	scorer      scoring.StructuredScorer
	inclusion   domain.Score
	notify      domain.Score
	maxCorpus   int
	timeout     time.Duration
	concurrency int
}

func NewAutoMatcher(corpus CorpusSource, d Dispatcher, cfg config.MatchingConfig) *AutoMatcher {
	return &AutoMatcher{
		corpus:      corpus,
		dispatcher:  d,
		scorer:      scoring.NewStructuredScorer(),
		inclusion:   domain.Fraction(cfg.InclusionThreshold),
		notify:      domain.Fraction(cfg.NotifyThreshold),
		maxCorpus:   cfg.MaxCorpus,
		timeout:     cfg.Timeout,
		concurrency: max(1, cfg.DispatchConcurrency),
	}
}

// HandleProjectCreated is the events.Handler of the automatic path. Matching
// is a side effect of project creation, so failures are logged and the
// handler always returns nil.
func (a *AutoMatcher) HandleProjectCreated(ctx context.Context, ev events.ProjectCreated) error {
	logger := logging.NewLogger(ctx).With("project_id", ev.Project.ID)
	out, err := a.Run(ctx, ev.Project)
	if err != nil {
		logger.LogErrorf("AutoMatch", "matching pass for %q failed: %v", ev.Project.Name, err)
		return nil
	}
	logger.LogInfof("AutoMatch", "matching pass for %q done: %d candidates, %d notified, %d notifications sent",
		ev.Project.Name, out.Candidates, out.Qualifying, out.Report.Sent)
	return nil
}

// Run matches created against the corpus snapshot and dispatches the matches
// above the notify threshold. Panics in the pass are returned as errors.
func (a *AutoMatcher) Run(ctx context.Context, created domain.Project) (out Outcome, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("matching panic: %v", r)
		}
		recordAutoPass(time.Since(start), out.Candidates, err)
	}()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	logger := logging.NewLogger(ctx).With("project_id", created.ID)

	corpus, err := a.corpus.Snapshot(ctx, a.maxCorpus)
	if err != nil {
		return out, fmt.Errorf("load corpus: %w", err)
	}

	matches, err := finder.Find(ctx, created, corpus, a.scorer, finder.Options{Threshold: a.inclusion})
	if err != nil {
		return out, fmt.Errorf("find matches: %w", err)
	}
	out.Candidates = len(matches)

	qualifying := make([]domain.MatchResult, 0, len(matches))
	for _, m := range matches {
		strong, err := m.Score.Exceeds(a.notify)
		if err != nil {
			return out, err
		}
		logger.LogDebugf("AutoMatch", "candidate %q (%s) score %s fields %v notify=%t",
			m.Project.Name, m.Project.ID, m.Score, a.scorer.Breakdown(created, m.Project), strong)
		if strong {
			qualifying = append(qualifying, m)
		}
	}
	out.Qualifying = len(qualifying)
	if len(qualifying) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for _, m := range qualifying {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logger.LogErrorf("AutoMatch", "dispatch for %s panicked: %v", m.Project.ID, r)
				}
			}()
			rep := a.dispatcher.Dispatch(gctx, created, m)
			recordDispatch(rep)

			mu.Lock()
			out.Report.Sent += rep.Sent
			out.Report.Duplicates += rep.Duplicates
			out.Report.Failed += rep.Failed
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}
