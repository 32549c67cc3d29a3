package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	polyio "github.com/matzehuels/polyskel/pkg/io"
	"github.com/matzehuels/polyskel/pkg/pipeline"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// compareCommand creates the compare command for side-by-side strategy runs.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		output  string
		plain   bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "compare [polygon.json]",
		Short: "Compare skeleton strategies side by side",
		Long: `Compare skeleton strategies side by side.

The compare command runs every strategy against the same polygon and shows
an interactive table of node counts, edge counts, total length, and branch
counts. Selecting a row renders that strategy's skeleton to SVG.

With --plain, the table is printed without interaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.ValidateForCompute(); err != nil {
				return err
			}
			return c.runCompare(cmd.Context(), args[0], opts, output, plain, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for the selected strategy's SVG")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "vertex merge tolerance (0 = default)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the table without interaction")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runCompare runs every strategy and presents the comparison.
func (c *CLI) runCompare(ctx context.Context, input string, opts pipeline.Options, output string, plain, noCache bool) error {
	poly, err := polyio.ImportPolygon(input)
	if err != nil {
		return err
	}
	opts.Polygon = poly

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Comparing strategies...")
	spinner.Start()
	rows := c.compareStrategies(ctx, runner, opts)
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if plain {
		printCompareTable(input, rows)
		return nil
	}

	model := NewStrategyCompareModel(input, rows)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run comparison: %w", err)
	}

	selected := final.(StrategyCompareModel).Selected
	if selected == nil {
		return nil
	}
	return c.renderSelected(ctx, runner, opts, *selected, input, output)
}

// compareStrategies computes the skeleton once per strategy. A failed
// strategy produces a row with its error rather than aborting the run.
func (c *CLI) compareStrategies(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) []StrategyRow {
	var rows []StrategyRow
	for _, strategy := range skeleton.Strategies() {
		runOpts := opts
		runOpts.Strategy = strategy.String()

		start := time.Now()
		sk, err := runner.Skeletonize(ctx, runOpts)
		if err != nil {
			rows = append(rows, StrategyRow{Strategy: strategy.String(), Err: err})
			continue
		}
		analysis, err := runner.Analyze(ctx, sk, runOpts)
		if err != nil {
			rows = append(rows, StrategyRow{Strategy: strategy.String(), Err: err})
			continue
		}

		rows = append(rows, StrategyRow{
			Strategy:    strategy.String(),
			NodeCount:   sk.NodeCount(),
			EdgeCount:   sk.EdgeCount(),
			TotalLength: sk.TotalLength(),
			BranchCount: len(analysis.Branches),
			Duration:    time.Since(start),
		})
	}
	return rows
}

// renderSelected renders the chosen strategy's skeleton to SVG.
func (c *CLI) renderSelected(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, row StrategyRow, input, output string) error {
	opts.Strategy = row.Strategy
	opts.Formats = []string{pipeline.FormatSVG}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	sk, err := runner.Skeletonize(ctx, opts)
	if err != nil {
		return err
	}
	analysis, err := runner.Analyze(ctx, sk, opts)
	if err != nil {
		return err
	}
	artifacts, err := runner.Render(ctx, sk, analysis, opts)
	if err != nil {
		return err
	}

	if output == "" {
		output = basePath("", input) + "-" + row.Strategy + ".svg"
	}
	if err := writeArtifact(artifacts[pipeline.FormatSVG], output); err != nil {
		return err
	}

	printSuccess("Rendered %s skeleton", row.Strategy)
	printFile(output)
	return nil
}

// printCompareTable prints the comparison without the interactive table.
func printCompareTable(input string, rows []StrategyRow) {
	printInfo("Strategy comparison for %s", input)
	for _, r := range rows {
		if r.Err != nil {
			printDetail("%-10s failed: %v", r.Strategy, r.Err)
			continue
		}
		printDetail("%-10s %d nodes · %d edges · length %.2f · %d branches · %s",
			r.Strategy, r.NodeCount, r.EdgeCount, r.TotalLength, r.BranchCount, formatDuration(r.Duration))
	}
}
