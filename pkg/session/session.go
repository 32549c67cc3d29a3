// Package session records recent skeletonization runs.
//
// The CLI keeps a small local history of what was computed, so users can
// review past runs ('polyskel history') and re-render without remembering
// the exact flags. Runs are stored as JSON files with automatic expiration;
// this is bookkeeping, not a result cache — artifacts live in pkg/cache.
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/polyskel/history/
//	if err != nil {
//	    return err
//	}
//	run := session.NewRun("shape.json", "straight", session.DefaultTTL)
//	run.NodeCount = sk.NodeCount()
//	store.Set(ctx, run)
//
//	runs, err := store.List(ctx)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a run stays in the history before cleanup.
const DefaultTTL = 30 * 24 * time.Hour

// Run records one skeletonization invocation.
type Run struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Strategy  string    `json:"strategy"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Outputs   []string  `json:"outputs,omitempty"`
	CacheHit  bool      `json:"cache_hit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the run has passed its retention window.
func (r *Run) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Store is the interface for run history backends.
type Store interface {
	// Get retrieves a run by ID. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// Set stores a run.
	Set(ctx context.Context, run *Run) error

	// Delete removes a run.
	Delete(ctx context.Context, id string) error

	// List returns all unexpired runs, newest first.
	List(ctx context.Context) ([]Run, error)

	// Cleanup removes expired runs.
	Cleanup(ctx context.Context) error
}

// NewRun creates a run record with a fresh ID and retention window.
func NewRun(input, strategy string, ttl time.Duration) *Run {
	now := time.Now()
	return &Run{
		ID:        uuid.NewString(),
		Input:     input,
		Strategy:  strategy,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
