package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/collabhub/project-match/internal/logging"
)

// LocalBus is an in-process Bus backed by a buffered channel and a fixed set
// of worker goroutines. Every subscriber sees every event. A panicking
// handler is recovered so remaining handlers still run.
type LocalBus struct {
	events chan ProjectCreated

	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int

	// closeMu guards closed and sends on events.
	closeMu sync.RWMutex
	closed  bool

	wg sync.WaitGroup
}

func NewLocalBus(workers, buffer int) *LocalBus {
	if workers < 1 {
		workers = 1
	}
	b := &LocalBus{
		events:   make(chan ProjectCreated, buffer),
		handlers: make(map[int]Handler),
	}
	b.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go b.worker()
	}
	return b
}

func (b *LocalBus) PublishProjectCreated(ctx context.Context, ev ProjectCreated) error {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	select {
	case b.events <- ev:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish %s: %w", ev.EventID, ctx.Err())
	}
}

func (b *LocalBus) SubscribeProjectCreated(h Handler) (func(), error) {
	b.closeMu.RLock()
	closed := b.closed
	b.closeMu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}, nil
}

// Close stops accepting events and waits for queued ones to be handled.
func (b *LocalBus) Close() {
	b.closeMu.Lock()
	if b.closed {
		b.closeMu.Unlock()
		return
	}
	b.closed = true
	close(b.events)
	b.closeMu.Unlock()
	b.wg.Wait()
}

func (b *LocalBus) worker() {
	defer b.wg.Done()
	for ev := range b.events {
		b.mu.RLock()
		snapshot := make([]Handler, 0, len(b.handlers))
		for _, h := range b.handlers {
			snapshot = append(snapshot, h)
		}
		b.mu.RUnlock()

		ctx := logging.WithRequestID(context.Background(), ev.EventID)
		for _, h := range snapshot {
			invoke(ctx, h, ev)
		}
	}
}

func invoke(ctx context.Context, h Handler, ev ProjectCreated) {
	logger := logging.NewLogger(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.LogErrorf("HandleProjectCreated", "handler panic for project %s: %v", ev.Project.ID, r)
		}
	}()
	if err := h(ctx, ev); err != nil {
		logger.LogErrorf("HandleProjectCreated", "handler failed for project %s: %v", ev.Project.ID, err)
	}
}
