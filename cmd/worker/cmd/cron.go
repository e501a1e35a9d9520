package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cronjob "github.com/collabhub/project-match/internal/notifications/cron"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Run the notification retention schedule",
	Long:  "Purges read notifications on NOTIFY_PURGE_SCHEDULE (cron with seconds) until interrupted.",
	RunE:  runCron,
}

func runCron(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, infra, m, err := env(ctx)
	if err != nil {
		return err
	}
	defer infra.Close()

	s := cronjob.NewScheduler(m.Notifications, cfg.Notify.RetentionDays)
	if err := s.Start(cfg.Notify.PurgeSchedule); err != nil {
		return err
	}
	log.Info().Str("schedule", cfg.Notify.PurgeSchedule).Int("retention_days", cfg.Notify.RetentionDays).Msg("retention scheduler started")

	<-ctx.Done()
	s.Stop()
	return nil
}
