package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/collabhub/project-match/config"
	"github.com/collabhub/project-match/internal/auth"
	"github.com/collabhub/project-match/internal/bootstrap"
	"github.com/collabhub/project-match/internal/logging"
	projectsvc "github.com/collabhub/project-match/internal/projects/service"
	"github.com/collabhub/project-match/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(logging.Options{
		Service:     cfg.App.ServiceName,
		Environment: cfg.App.Environment,
		Level:       cfg.App.LogLevel,
		File:        cfg.App.LogFile,
	})
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := bootstrap.OpenInfra(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open infrastructure")
	}
	defer infra.Close()

	m := bootstrap.BuildMatching(cfg, infra.Pool, infra.SQL, infra.Redis)

	// without NATS nobody else consumes the events, so match in-process.
	// The subscription lives until infra.Close drains the bus.
	if !infra.Remote {
		if _, err := infra.Bus.SubscribeProjectCreated(m.Auto.HandleProjectCreated); err != nil {
			log.Fatal().Err(err).Msg("subscribe matcher")
		}
		log.Info().Msg("NATS_URL not set, matching in-process")
	}

	var verifier auth.TokenVerifier
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatal().Err(err).Msg("init firebase")
		}
		verifier = client
	}

	db, rdb, nats := infra.Pingers()
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   cfg.App.ServiceName,
		Version:       cfg.App.Version,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Users:         users.NewRepo(infra.Pool),
		Projects:      projectsvc.NewProjectService(m.Projects, infra.Bus),
		Matcher:       m.OnDemand,
		Notifications: m.Notifications,
		Verifier:      verifier,
		DB:            db,
		Redis:         rdb,
		NATS:          nats,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
		}
	}
}
