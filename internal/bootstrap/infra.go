package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/collabhub/project-match/config"
	httpapi "github.com/collabhub/project-match/internal/api/http"
	"github.com/collabhub/project-match/internal/events"
	"github.com/collabhub/project-match/internal/storage/postgres"
)

// Infra is the set of connections a binary needs.
type Infra struct {
	Pool   *pgxpool.Pool
	SQL    *sql.DB
	Redis  *redis.Client
	Bus    events.Bus
	Remote bool
}

// OpenInfra opens Postgres (pgx pool and database/sql), Redis when
// configured and the event bus. A Redis failure is fatal only when dedup
// depends on it.
func OpenInfra(ctx context.Context, cfg *config.Config) (*Infra, error) {
	in := &Infra{}

	pool, err := OpenDB(ctx, DBOptionsFrom(cfg.Database))
	if err != nil {
		return nil, err
	}
	in.Pool = pool

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.SQL = sqlDB

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		if cfg.Notify.DedupEnabled {
			in.Close()
			return nil, err
		}
		log.Warn().Err(err).Msg("redis unavailable, continuing without it")
	}
	in.Redis = rdb

	bus, remote, err := OpenBus(cfg.NATS)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("event bus: %w", err)
	}
	in.Bus, in.Remote = bus, remote

	return in, nil
}

// Pingers returns the health probes for the open connections.
func (in *Infra) Pingers() (db, rdb, nats httpapi.Pinger) {
	if in.Pool != nil {
		db = in.Pool
	}
	if in.Redis != nil {
		rdb = httpapi.PingFunc(func(ctx context.Context) error { return in.Redis.Ping(ctx).Err() })
	}
	if nb, ok := in.Bus.(*events.NATSBus); ok {
		nats = httpapi.PingFunc(func(context.Context) error {
			if !nb.Connected() {
				return fmt.Errorf("nats disconnected")
			}
			return nil
		})
	}
	return db, rdb, nats
}

func (in *Infra) Close() {
	if in.Bus != nil {
		in.Bus.Close()
	}
	if in.Redis != nil {
		_ = in.Redis.Close()
	}
	if in.SQL != nil {
		_ = in.SQL.Close()
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
