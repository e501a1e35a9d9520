package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rematchCmd = &cobra.Command{
	Use:   "rematch <public_id>",
	Short: "Re-run the automatic matching pass for one project",
	Args:  cobra.ExactArgs(1),
	RunE:  runRematch,
}

func runRematch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, infra, m, err := env(ctx)
	if err != nil {
		return err
	}
	defer infra.Close()

	p, err := m.Projects.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load project %s: %w", args[0], err)
	}

	out, err := m.Auto.Run(ctx, p.Match())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d candidates, %d qualifying, %d sent, %d duplicate, %d failed\n",
		p.PublicID, out.Candidates, out.Qualifying, out.Report.Sent, out.Report.Duplicates, out.Report.Failed)
	return nil
}
