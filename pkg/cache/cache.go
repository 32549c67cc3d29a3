// Package cache provides caching for expensive pipeline stages.
//
// Skeletonization is deterministic: the same polygon, strategy, and options
// always produce the same skeleton. That makes every stage of the pipeline a
// pure function of its inputs and therefore safely cacheable by content
// hash. Three backends are provided:
//
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disabled caching
//
// Keys are generated through the Keyer interface so that key construction
// stays consistent between the CLI and the server, and so multi-tenant
// deployments can isolate namespaces with a ScopedKeyer.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Skeletons are pure functions of their
// inputs, so long TTLs are safe; artifacts are cheap to recompute and large,
// so they expire sooner.
const (
	TTLSkeleton = 30 * 24 * time.Hour
	TTLAnalysis = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// SkeletonKeyOpts carries the computation options that affect skeleton
// output and therefore must be part of the cache key.
type SkeletonKeyOpts struct {
	Strategy      string
	Tolerance     float64
	ClipEndpoints bool
}

// AnalysisKeyOpts carries the options affecting graph analysis output.
type AnalysisKeyOpts struct {
	LongestPath bool
	Branches    bool
}

// ArtifactKeyOpts carries the options affecting rendered artifacts.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Width  float64
	Height float64
	Scale  float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// SkeletonKey generates a key for a computed skeleton, derived from the
	// polygon content hash and the computation options.
	SkeletonKey(polygonHash string, opts SkeletonKeyOpts) string

	// AnalysisKey generates a key for graph analysis results.
	AnalysisKey(skeletonHash string, opts AnalysisKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(skeletonHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
// Keys embed a hash of all options, so any option change is a new key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// SkeletonKey generates a key for a computed skeleton.
func (k *DefaultKeyer) SkeletonKey(polygonHash string, opts SkeletonKeyOpts) string {
	return hashKey("skeleton", polygonHash, opts)
}

// AnalysisKey generates a key for graph analysis results.
func (k *DefaultKeyer) AnalysisKey(skeletonHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", skeletonHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(skeletonHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", skeletonHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
