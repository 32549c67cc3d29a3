// Package store persists computed skeletons as documents.
//
// The server uses a store to make skeletons addressable: a POST computes and
// saves a skeleton under a generated ID, later GETs retrieve it without
// recomputation. Two implementations are provided: MongoStore for
// deployments and MemoryStore for tests and ephemeral CLI usage.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/polyskel/pkg/geom"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// SkeletonDocument is the persisted form of one skeletonization result.
// The source polygon travels with the skeleton so a document is
// self-contained and re-renderable.
type SkeletonDocument struct {
	ID          string            `json:"id" bson:"_id"`
	PolygonHash string            `json:"polygon_hash" bson:"polygon_hash"`
	Strategy    string            `json:"strategy" bson:"strategy"`
	Polygon     geom.Polygon      `json:"polygon" bson:"polygon"`
	Skeleton    skeleton.Skeleton `json:"skeleton" bson:"skeleton"`
	NodeCount   int               `json:"node_count" bson:"node_count"`
	EdgeCount   int               `json:"edge_count" bson:"edge_count"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}

// Store is the persistence interface for skeleton documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or replaces a document by its ID.
	Save(ctx context.Context, doc SkeletonDocument) error

	// Get retrieves a document by ID. A missing document is reported with
	// errors.ErrCodeSkeletonNotFound.
	Get(ctx context.Context, id string) (SkeletonDocument, error)

	// ListRecent returns up to limit documents, newest first.
	ListRecent(ctx context.Context, limit int) ([]SkeletonDocument, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
