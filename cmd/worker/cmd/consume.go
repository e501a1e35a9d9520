package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Match newly created projects from NATS",
	Long:  "Joins the matcher queue group and runs the automatic matching pass for every project-created event until interrupted.",
	RunE:  runConsume,
}

func runConsume(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, infra, m, err := env(ctx)
	if err != nil {
		return err
	}
	defer infra.Close()

	if !infra.Remote {
		return fmt.Errorf("consume needs NATS_URL; the API matches in-process without it")
	}

	unsubscribe, err := infra.Bus.SubscribeProjectCreated(m.Auto.HandleProjectCreated)
	if err != nil {
		return err
	}
	defer unsubscribe()

	log.Info().Str("subject", cfg.NATS.Subject).Str("queue", cfg.NATS.QueueGroup).Msg("consuming project events")
	<-ctx.Done()
	log.Info().Msg("consumer stopping")
	return nil
}
