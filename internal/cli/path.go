package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	polyio "github.com/matzehuels/polyskel/pkg/io"
	"github.com/matzehuels/polyskel/pkg/pipeline"
)

// pathCommand creates the path command for graph queries.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "path [polygon.json]",
		Short: "Print the longest path and branches of a skeleton",
		Long: `Print the longest path and branches of a skeleton.

The path command computes the skeleton of a polygon and reports its graph
queries: the longest path between any two skeleton nodes (the "spine" of
the shape) and the branch decomposition.

With --json, the full analysis is emitted as JSON for scripting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.ValidateForCompute(); err != nil {
				return err
			}
			return c.runPath(cmd.Context(), args[0], opts, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "strategy: straight (default), chordal, voronoi")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "vertex merge tolerance (0 = default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit analysis as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPath computes the skeleton and prints its graph analysis.
func (c *CLI) runPath(ctx context.Context, input string, opts pipeline.Options, asJSON, noCache bool) error {
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

	sk, err := runner.Skeletonize(ctx, opts)
	if err != nil {
		return err
	}
	analysis, err := runner.Analyze(ctx, sk, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	if sk.IsEmpty() {
		printWarning("Degenerate input: no skeleton for no shape")
		return nil
	}

	printKeyValue("Strategy", displayStrategy(opts.Strategy))
	printKeyValue("Nodes", fmt.Sprintf("%d", sk.NodeCount()))
	printKeyValue("Edges", fmt.Sprintf("%d", sk.EdgeCount()))
	printKeyValue("Length", fmt.Sprintf("%.4f", sk.TotalLength()))
	printKeyValue("Branches", fmt.Sprintf("%d", len(analysis.Branches)))
	printNewline()

	if len(analysis.Path) == 0 {
		printInfo("No longest path (skeleton has no resolvable endpoints)")
		return nil
	}
	printInfo("Longest path (%d points):", len(analysis.Path))
	for _, p := range analysis.Path {
		printDetail("(%.4f, %.4f)", p.X, p.Y)
	}
	return nil
}
