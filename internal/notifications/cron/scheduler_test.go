package cronjob

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls     atomic.Int64
	retention atomic.Int64
}

func (p *countingPurger) Purge(_ context.Context, retention time.Duration) (int64, error) {
	p.calls.Add(1)
	p.retention.Store(int64(retention))
	return 0, nil
}

func TestScheduler_RunOnce(t *testing.T) {
	p := &countingPurger{}
	NewScheduler(p, 90).RunOnce()

	assert.Equal(t, int64(1), p.calls.Load())
	assert.Equal(t, int64(90*24*time.Hour), p.retention.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	err := NewScheduler(&countingPurger{}, 1).Start("every night")
	assert.Error(t, err)
}

func TestScheduler_Fires(t *testing.T) {
	p := &countingPurger{}
	s := NewScheduler(p, 1)
	require.NoError(t, s.Start("* * * * * *"))
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
