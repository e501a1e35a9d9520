package bootstrap

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/collabhub/project-match/config"
	matchsvc "github.com/collabhub/project-match/internal/matching/service"
	"github.com/collabhub/project-match/internal/notifications/dispatch"
	notifrepo "github.com/collabhub/project-match/internal/notifications/repository"
	notifsvc "github.com/collabhub/project-match/internal/notifications/service"
	projectrepo "github.com/collabhub/project-match/internal/projects/repository"
)

// Matching holds the repositories and services shared by the API and the
// worker.
type Matching struct {
	Projects      *projectrepo.Repo
	Notifications *notifsvc.NotificationService
	Dispatcher    *dispatch.Dispatcher
	Auto          *matchsvc.AutoMatcher
	OnDemand      *matchsvc.OnDemandMatcher
}

// BuildMatching wires the matching engine to its stores. rdb may be nil;
// dedup then stays off.
func BuildMatching(cfg *config.Config, pool *pgxpool.Pool, sqlDB *sql.DB, rdb *redis.Client) *Matching {
	projects := projectrepo.NewRepo(pool)
	notifications := notifsvc.NewNotificationService(notifrepo.NewNotificationRepository(sqlDB))

	opts := []dispatch.Option{dispatch.WithRateLimit(cfg.Notify.RatePerSecond)}
	if cfg.Notify.DedupEnabled && rdb != nil {
		opts = append(opts, dispatch.WithDeduper(dispatch.NewRedisDeduper(rdb, cfg.Notify.DedupTTL)))
	}
	d := dispatch.New(notifications, opts...)

	return &Matching{
		Projects:      projects,
		Notifications: notifications,
		Dispatcher:    d,
		Auto:          matchsvc.NewAutoMatcher(projects, d, cfg.Matching),
		OnDemand:      matchsvc.NewOnDemandMatcher(projects, cfg.Matching),
	}
}
