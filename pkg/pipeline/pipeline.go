// Package pipeline provides the core skeletonization pipeline.
//
// This package implements the complete skeletonize → analyze → render
// pipeline shared by the CLI and the HTTP server. Centralizing it keeps
// behavior and caching consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Skeletonize: compute the topological skeleton of a polygon
//  2. Analyze: derive the longest path and branch decomposition
//  3. Render: generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage is cached by content hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Polygon:  poly,
//	    Strategy: "straight",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polyskel/pkg/cache"
	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/geom"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// ===== Defaults - single source of truth for CLI and server =====

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the default raster scale factor for PNG output.
	DefaultPNGScale = 2.0

	// DefaultStrategy is the default skeletonization strategy.
	DefaultStrategy = "straight"

	// DefaultStyle is the default visual style.
	DefaultStyle = StyleAnnotated
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Style constants for SVG rendering.
const (
	// StyleSimple draws the polygon outline and raw skeleton edges.
	StyleSimple = "simple"

	// StyleAnnotated additionally highlights branches, the longest path,
	// and skeleton nodes.
	StyleAnnotated = "annotated"
)

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple:    true,
	StyleAnnotated: true,
}

// ===== Options =====

// Options contains all configuration for the skeletonization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Skeletonize options
	Polygon   geom.Polygon `json:"polygon"`
	Strategy  string       `json:"strategy,omitempty"`
	Tolerance float64      `json:"tolerance,omitempty"`

	// KeepExteriorEdges disables endpoint clipping for the Voronoi strategy,
	// keeping circumcenter edges that dip outside the boundary.
	KeepExteriorEdges bool `json:"keep_exterior_edges,omitempty"`

	// Refresh bypasses cache reads and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Skeleton is the computed skeleton graph.
	Skeleton skeleton.Skeleton

	// SkeletonHash is the content hash of the skeleton.
	SkeletonHash string

	// Analysis contains the derived graph queries.
	Analysis Analysis

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Analysis holds the graph queries derived from a skeleton.
type Analysis struct {
	Path     []geom.Point   `json:"path,omitempty"`
	Branches [][]geom.Point `json:"branches,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	SkeletonTime time.Duration
	AnalyzeTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SkeletonHit bool
	AnalyzeHit  bool
	RenderHit   bool
}

// ===== Validation =====

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be one of: simple, annotated)", style)
	}
	return nil
}

// ===== Options methods =====

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCompute(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompute checks required fields for skeletonization.
// A degenerate polygon is not an error; it yields an empty skeleton.
func (o *Options) ValidateForCompute() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if _, err := skeleton.ParseStrategy(o.Strategy); err != nil {
		return err
	}
	if o.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tolerance must be non-negative, got %v", o.Tolerance)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// ParsedStrategy returns the strategy as a skeleton.Strategy.
// Call only after validation.
func (o *Options) ParsedStrategy() skeleton.Strategy {
	s, _ := skeleton.ParseStrategy(o.Strategy)
	return s
}

// SkeletonOptions maps pipeline options to skeleton computation options.
func (o *Options) SkeletonOptions() skeleton.Options {
	opts := skeleton.DefaultOptions()
	if o.Tolerance > 0 {
		opts.Tolerance = o.Tolerance
	}
	opts.ClipEndpoints = !o.KeepExteriorEdges
	return opts
}

// SkeletonKeyOpts returns cache key options for the skeletonize stage.
func (o *Options) SkeletonKeyOpts() cache.SkeletonKeyOpts {
	sk := o.SkeletonOptions()
	return cache.SkeletonKeyOpts{
		Strategy:      o.ParsedStrategy().String(),
		Tolerance:     sk.Tolerance,
		ClipEndpoints: sk.ClipEndpoints,
	}
}

// AnalysisKeyOpts returns cache key options for the analyze stage.
func (o *Options) AnalysisKeyOpts() cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{LongestPath: true, Branches: true}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Width:  o.Width,
		Height: o.Height,
		Scale:  o.PNGScale,
	}
}
