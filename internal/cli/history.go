package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polyskel/pkg/session"
)

// historyCommand creates the history command for listing recent runs.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent skeleton runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if err := store.Cleanup(cmd.Context()); err != nil {
				c.Logger.Debug("history cleanup", "error", err)
			}

			runs, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			if len(runs) == 0 {
				printInfo("No recent runs")
				return nil
			}

			for _, run := range runs {
				printInfo("%s %s", run.CreatedAt.Format("2006-01-02 15:04"), run.Input)
				printDetail("%s · %d nodes · %d edges", run.Strategy, run.NodeCount, run.EdgeCount)
				for _, out := range run.Outputs {
					printFile(out)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(c.historyClearCommand())
	return cmd
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			runs, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			for _, run := range runs {
				if err := store.Delete(cmd.Context(), run.ID); err != nil {
					return err
				}
			}
			printSuccess("Cleared %d runs", len(runs))
			return nil
		},
	}
}
