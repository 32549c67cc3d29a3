package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polyskel/pkg/config"
	polyio "github.com/matzehuels/polyskel/pkg/io"
	"github.com/matzehuels/polyskel/pkg/pipeline"
	"github.com/matzehuels/polyskel/pkg/session"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// skeletonCommand creates the skeleton command for computing skeletons.
func (c *CLI) skeletonCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "skeleton [polygon.json]",
		Short: "Compute the topological skeleton of a polygon",
		Long: `Compute the topological skeleton of a polygon.

The skeleton command reads a polygon boundary from a JSON file and computes
its internal skeleton graph using the selected strategy:

  straight   shrinking-boundary straight skeleton (default)
  chordal    chordal axis from a triangulation
  voronoi    approximate medial axis from a Voronoi dual

Results are cached locally for faster subsequent runs. Output formats:
svg, png, pdf, dot, json (comma-separated for multiple).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fileOpts := optionsFromConfig(cfg)
			mergeUnsetOptions(&opts, fileOpts, cmd)

			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runSkeleton(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Skeleton flags
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "strategy: straight (default), chordal, voronoi")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "vertex merge tolerance (0 = default)")
	cmd.Flags().BoolVar(&opts.KeepExteriorEdges, "keep-exterior", false, "keep voronoi edges that dip outside the boundary")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: annotated (default), simple")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height")

	return cmd
}

// mergeUnsetOptions fills options the user did not set on the command line
// with values from the config file.
func mergeUnsetOptions(opts *pipeline.Options, fileOpts pipeline.Options, cmd *cobra.Command) {
	if !cmd.Flags().Changed("strategy") && opts.Strategy == "" {
		opts.Strategy = fileOpts.Strategy
	}
	if !cmd.Flags().Changed("tolerance") && opts.Tolerance == 0 {
		opts.Tolerance = fileOpts.Tolerance
	}
	if !cmd.Flags().Changed("keep-exterior") {
		opts.KeepExteriorEdges = fileOpts.KeepExteriorEdges
	}
}

// runSkeleton loads the polygon, runs the pipeline, and writes outputs.
func (c *CLI) runSkeleton(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	poly, err := polyio.ImportPolygon(input)
	if err != nil {
		return err
	}
	opts.Polygon = poly
	c.Logger.Debug("loaded polygon", "vertices", len(poly.Vertices))

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s skeleton...", displayStrategy(opts.Strategy)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Skeleton computation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Skeleton.IsEmpty() {
		printWarning("Degenerate input: no skeleton for no shape")
	}

	written, err := c.writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodeCount: result.Stats.NodeCount,
		edgeCount: result.Stats.EdgeCount,
		cacheHit:  result.CacheInfo.SkeletonHit,
	})
	if err != nil {
		return err
	}

	c.recordRun(ctx, input, opts, result, written)

	printNewline()
	printNextStep("Longest path", "polyskel path "+input)
	printNextStep("Compare strategies", "polyskel compare "+input)
	return nil
}

// recordRun appends the run to the local history. History failures are
// logged, never fatal.
func (c *CLI) recordRun(ctx context.Context, input string, opts pipeline.Options, result *pipeline.Result, outputs []string) {
	store, err := session.NewFileStore("")
	if err != nil {
		c.Logger.Debug("history unavailable", "error", err)
		return
	}
	run := session.NewRun(input, opts.Strategy, session.DefaultTTL)
	run.NodeCount = result.Stats.NodeCount
	run.EdgeCount = result.Stats.EdgeCount
	run.Outputs = outputs
	run.CacheHit = result.CacheInfo.SkeletonHit
	if err := store.Set(ctx, run); err != nil {
		c.Logger.Debug("record run", "error", err)
	}
}

// displayStrategy resolves the display name for a possibly-empty strategy flag.
func displayStrategy(s string) string {
	parsed, err := skeleton.ParseStrategy(s)
	if err != nil {
		return s
	}
	return parsed.String()
}
