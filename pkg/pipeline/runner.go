package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polyskel/pkg/cache"
	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/geom"
	"github.com/matzehuels/polyskel/pkg/observability"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete skeletonize → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Skeletonize
	skelStart := time.Now()
	sk, skelHit, err := r.SkeletonizeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "skeletonize")
	}
	result.Skeleton = sk
	result.Stats.SkeletonTime = time.Since(skelStart)
	result.Stats.NodeCount = sk.NodeCount()
	result.Stats.EdgeCount = sk.EdgeCount()
	result.CacheInfo.SkeletonHit = skelHit

	// Compute skeleton hash for cache keys and API responses
	if skelData, err := skeleton.Marshal(sk); err == nil {
		result.SkeletonHash = cache.Hash(skelData)
	}

	r.Logger.Info("computed skeleton",
		"strategy", opts.Strategy,
		"nodes", sk.NodeCount(),
		"edges", sk.EdgeCount(),
		"duration", result.Stats.SkeletonTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	analysis, analyzeHit, err := r.AnalyzeWithCacheInfo(ctx, sk, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "analyze")
	}
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.AnalyzeHit = analyzeHit

	r.Logger.Info("analyzed skeleton",
		"path_points", len(analysis.Path),
		"branches", len(analysis.Branches),
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sk, analysis, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SkeletonizeWithCacheInfo computes the skeleton with caching and returns
// cache hit info.
func (r *Runner) SkeletonizeWithCacheInfo(ctx context.Context, opts Options) (skeleton.Skeleton, bool, error) {
	if err := opts.ValidateForCompute(); err != nil {
		return skeleton.Skeleton{}, false, err
	}
	r.applyLogger(&opts)

	polyData, err := geom.MarshalPolygon(opts.Polygon)
	if err != nil {
		return skeleton.Skeleton{}, false, errors.Wrap(errors.ErrCodeInvalidPolygon, err, "serialize polygon")
	}
	cacheKey := r.Keyer.SkeletonKey(cache.Hash(polyData), opts.SkeletonKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			sk, err := skeleton.Unmarshal(data)
			if err == nil {
				return sk, true, nil // Cache hit
			}
		}
	}

	strategy := opts.ParsedStrategy()
	observability.Pipeline().OnSkeletonStart(ctx, strategy.String(), len(opts.Polygon.Vertices))
	start := time.Now()
	sk := skeleton.ComputeOpts(opts.Polygon, strategy, opts.SkeletonOptions())
	observability.Pipeline().OnSkeletonComplete(ctx, strategy.String(), sk.NodeCount(), sk.EdgeCount(), time.Since(start))

	// Cache the result
	if data, err := skeleton.Marshal(sk); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSkeleton)
	}

	return sk, false, nil // Cache miss
}

// Skeletonize is a convenience wrapper that discards the cache hit info.
func (r *Runner) Skeletonize(ctx context.Context, opts Options) (skeleton.Skeleton, error) {
	sk, _, err := r.SkeletonizeWithCacheInfo(ctx, opts)
	return sk, err
}

// AnalyzeWithCacheInfo derives graph queries with caching and returns cache
// hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, sk skeleton.Skeleton, opts Options) (Analysis, bool, error) {
	r.applyLogger(&opts)

	skelData, err := skeleton.Marshal(sk)
	if err != nil {
		return Analysis{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize skeleton for cache key")
	}
	cacheKey := r.Keyer.AnalysisKey(cache.Hash(skelData), opts.AnalysisKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	observability.Pipeline().OnAnalyzeStart(ctx, sk.NodeCount())
	start := time.Now()
	analysis := Analysis{
		Path:     sk.LongestPath(),
		Branches: sk.Branches(),
	}
	observability.Pipeline().OnAnalyzeComplete(ctx, polylineLength(analysis.Path), len(analysis.Branches), time.Since(start))

	if data, err := json.Marshal(analysis); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis)
	}

	return analysis, false, nil // Cache miss
}

// Analyze is a convenience wrapper that discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, sk skeleton.Skeleton, opts Options) (Analysis, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, sk, opts)
	return a, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sk skeleton.Skeleton, analysis Analysis, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	skelData, err := skeleton.Marshal(sk)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize skeleton for cache key")
	}
	skelHash := cache.Hash(skelData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(skelHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderArtifacts(sk, analysis, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(skelHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, sk skeleton.Skeleton, analysis Analysis, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sk, analysis, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// polylineLength sums segment lengths along a point sequence.
func polylineLength(pts []geom.Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}
