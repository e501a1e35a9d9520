package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collabhub/project-match/config"
	"github.com/collabhub/project-match/internal/bootstrap"
	"github.com/collabhub/project-match/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "worker",
	Short:        "project-match background worker",
	Long:         "Consumes project-created events, re-runs matching and purges old notifications.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(consumeCmd)
	rootCmd.AddCommand(rematchCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(cronCmd)
}

// env loads config, sets up logging and opens the connections every
// subcommand needs. The caller closes infra.
func env(ctx context.Context) (*config.Config, *bootstrap.Infra, *bootstrap.Matching, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logging.Setup(logging.Options{
		Service:     cfg.App.ServiceName + "-worker",
		Environment: cfg.App.Environment,
		Level:       cfg.App.LogLevel,
		File:        cfg.App.LogFile,
	})

	infra, err := bootstrap.OpenInfra(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, infra, bootstrap.BuildMatching(cfg, infra.Pool, infra.SQL, infra.Redis), nil
}
