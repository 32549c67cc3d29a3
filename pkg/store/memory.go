package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/polyskel/pkg/errors"
)

// MemoryStore is an in-process Store for tests and ephemeral usage.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]SkeletonDocument
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]SkeletonDocument)}
}

// Save inserts or replaces a document by its ID.
func (s *MemoryStore) Save(ctx context.Context, doc SkeletonDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (SkeletonDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return SkeletonDocument{}, errors.New(errors.ErrCodeSkeletonNotFound, "skeleton %s not found", id)
	}
	return doc, nil
}

// ListRecent returns up to limit documents, newest first.
func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]SkeletonDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]SkeletonDocument, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Delete removes a document by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
