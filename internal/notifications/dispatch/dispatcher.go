// Package dispatch turns qualifying matches into notification intents and
// hands them to a Sink.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/logging"
	"github.com/collabhub/project-match/internal/notifications/domain"
)

// Sink persists or delivers one intent. It must be safe for concurrent use.
type Sink interface {
	Deliver(ctx context.Context, in domain.Intent) error
}

// Deduper claims a key once. Claim returns false when the key was already
// claimed. Release gives a claimed key back so a later attempt can send.
type Deduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Report counts the outcome of one Dispatch call.
type Report struct {
	Sent       int
	Duplicates int
	Failed     int
}

type Dispatcher struct {
	sink    Sink
	dedup   Deduper
	limiter *rate.Limiter
}

type Option func(*Dispatcher)

// WithDeduper suppresses intents whose pair and direction were already sent.
func WithDeduper(d Deduper) Option {
	return func(ds *Dispatcher) { ds.dedup = d }
}

// WithRateLimit caps deliveries per second; perSecond <= 0 leaves them unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(ds *Dispatcher) {
		if perSecond > 0 {
			ds.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
		}
	}
}

func New(sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{sink: sink}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Dispatch sends both intents of the match between created and m.Project.
// Each intent is attempted independently: a failed or undeliverable one is
// logged and dropped, and never stops the other.
func (d *Dispatcher) Dispatch(ctx context.Context, created matching.Project, m matching.MatchResult) Report {
	logger := logging.NewLogger(ctx).With("project_id", created.ID)

	var rep Report
	for _, in := range BuildIntents(created, m.Project, m.Score) {
		err := d.send(ctx, in)
		switch {
		case err == nil:
			rep.Sent++
		case errors.Is(err, errDuplicate):
			rep.Duplicates++
			logger.LogDebugf("Dispatch", "skipped duplicate %s notification for pair %s/%s", in.Direction, in.Project.ID, in.Match.ID)
		case errors.Is(err, domain.ErrRecipientNotFound):
			rep.Failed++
			logger.LogWarnf("Dispatch", "dropped %s notification for project %q: no resolvable recipient", in.Direction, in.Project.Name)
		default:
			rep.Failed++
			logger.LogErrorf("Dispatch", "dropped %s notification for project %q: %v", in.Direction, in.Project.Name, err)
		}
	}

	if rep.Sent == 2 {
		logger.LogInfof("Dispatch", "bi-directional notifications sent for %q <-> %q (%s%% match)", created.Name, m.Project.Name, percentText(m.Score))
	}
	return rep
}

var errDuplicate = errors.New("duplicate notification")

func (d *Dispatcher) send(ctx context.Context, in domain.Intent) error {
	if !in.Recipient.Resolvable() {
		return domain.ErrRecipientNotFound
	}

	claimed := false
	if d.dedup != nil {
		ok, err := d.dedup.Claim(ctx, DedupKey(in))
		switch {
		case err != nil:
			// dedup is best effort; deliver anyway
			logging.NewLogger(ctx).LogWarnf("Dispatch", "dedup claim failed: %v", err)
		case !ok:
			return errDuplicate
		default:
			claimed = true
		}
	}

	err := d.deliver(ctx, in)
	if err != nil && claimed {
		d.release(ctx, in)
	}
	return err
}

func (d *Dispatcher) deliver(ctx context.Context, in domain.Intent) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	return d.sink.Deliver(ctx, in)
}

// release frees the key of an undelivered intent. ctx may already be done,
// so the release runs on its own short deadline.
func (d *Dispatcher) release(ctx context.Context, in domain.Intent) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := d.dedup.Release(rctx, DedupKey(in)); err != nil {
		logging.NewLogger(ctx).LogWarnf("Dispatch", "dedup release failed, %s notification for %s stays suppressed until the key expires: %v",
			in.Direction, in.Project.ID, err)
	}
}
