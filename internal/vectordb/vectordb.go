package vectordb

import (
	"context"
)

// Record is the persisted form of an embedded page: the properties stored in
// the vector store plus the externally supplied vector.
type Record struct {
	File   string
	Page   string
	Text   string
	Vector []float32
}

// Hit is a vector search result, ordered by decreasing similarity.
type Hit struct {
	File  string
	Page  string
	Text  string
	Score float32
}

// Store describes the behaviour required of the vector store.
type Store interface {
	// EnsureCollection creates the collection if absent, configured for
	// externally supplied vectors of the given dimension.
	EnsureCollection(ctx context.Context, dimension int) error

	// InsertMany bulk-writes records. No partial-failure rollback is
	// guaranteed.
	InsertMany(ctx context.Context, records []Record) error

	// SearchNearVector returns up to limit hits nearest to the query vector,
	// most similar first. A non-nil scoreThreshold drops weaker hits.
	SearchNearVector(ctx context.Context, vector []float32, limit int, scoreThreshold *float32) ([]Hit, error)

	// ListFiles enumerates distinct source file names among up to limit
	// stored records, for the document selection UI.
	ListFiles(ctx context.Context, limit int) ([]string, error)
}
