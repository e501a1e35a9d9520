package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var purgeRetentionDays int

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete read notifications older than the retention window",
	RunE:  runPurge,
}

func init() {
	purgeCmd.Flags().IntVar(&purgeRetentionDays, "days", 0, "Retention in days (defaults to NOTIFY_RETENTION_DAYS)")
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, infra, m, err := env(ctx)
	if err != nil {
		return err
	}
	defer infra.Close()

	days := cfg.Notify.RetentionDays
	if purgeRetentionDays > 0 {
		days = purgeRetentionDays
	}

	n, err := m.Notifications.Purge(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "purged %d notifications older than %d days\n", n, days)
	return nil
}
