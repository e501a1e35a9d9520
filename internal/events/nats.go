package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/collabhub/project-match/internal/logging"
)

// NATSBus publishes events as JSON on one subject. Subscribers join a queue
// group, so each event is handled by one member of the group.
type NATSBus struct {
	nc      *nats.Conn
	subject string
	queue   string
}

func ConnectNATS(url, subject, queue string) (*NATSBus, error) {
	nc, err := nats.Connect(url,
		nats.Name("project-match"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSBus{nc: nc, subject: subject, queue: queue}, nil
}

func (b *NATSBus) PublishProjectCreated(_ context.Context, ev ProjectCreated) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.nc.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", b.subject, err)
	}
	return nil
}

func (b *NATSBus) SubscribeProjectCreated(h Handler) (func(), error) {
	sub, err := b.nc.QueueSubscribe(b.subject, b.queue, func(msg *nats.Msg) {
		var ev ProjectCreated
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			logging.NewLogger(context.Background()).LogWarnf("HandleProjectCreated", "dropping malformed event on %s: %v", msg.Subject, err)
			return
		}
		invoke(logging.WithRequestID(context.Background(), ev.EventID), h, ev)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", b.subject, err)
	}
	// make sure the server knows about the subscription before returning
	if err := b.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flush subscription: %w", err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Connected reports whether the connection is currently up.
func (b *NATSBus) Connected() bool {
	return b.nc != nil && b.nc.IsConnected()
}

// Close drains pending messages and closes the connection.
func (b *NATSBus) Close() {
	if b.nc == nil {
		return
	}
	if err := b.nc.Drain(); err != nil {
		b.nc.Close()
	}
}
