package bootstrap

import (
	"github.com/collabhub/project-match/config"
	"github.com/collabhub/project-match/internal/events"
)

const (
	localBusWorkers = 4
	localBusBuffer  = 256
)

// OpenBus connects to NATS when a URL is configured and falls back to the
// in-process bus otherwise. remote reports which one was chosen.
func OpenBus(cfg config.NATSConfig) (bus events.Bus, remote bool, err error) {
	if cfg.URL == "" {
		return events.NewLocalBus(localBusWorkers, localBusBuffer), false, nil
	}
	nb, err := events.ConnectNATS(cfg.URL, cfg.Subject, cfg.QueueGroup)
	if err != nil {
		return nil, false, err
	}
	return nb, true, nil
}
