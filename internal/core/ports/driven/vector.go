package driven

import (
	"context"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// VectorIndex serves similarity search over an immutable snapshot of
// chunk vectors. A snapshot is built or loaded once and never mutated,
// so it is safe for concurrent reads without locking. Rebuilds produce
// a new snapshot that callers swap in whole.
type VectorIndex interface {
	// Search returns the k chunks nearest to the query vector, ranked by
	// descending cosine similarity with ties broken by insertion order.
	// Returns domain.ErrInvalidArgument when k <= 0 and
	// domain.ErrDimensionMismatch when the query vector length does not
	// match the index dimension. An empty index returns an empty slice.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Len returns the number of indexed chunks.
	Len() int

	// ModelName returns the embedding model that produced the vectors.
	ModelName() string

	// Dimensions returns the vector dimensionality of the index.
	Dimensions() int

	// Save persists the snapshot to dir atomically: either the full
	// persisted state is written or none of it.
	Save(dir string) error
}

// IndexFactory builds vector index snapshots from embedded chunks.
// It lets core services construct indexes without depending on a
// concrete index implementation.
type IndexFactory interface {
	// Build creates an index from parallel chunk and vector slices,
	// recording the embedding model name and dimensionality.
	// Returns domain.ErrInvalidArgument when the slice lengths differ
	// and domain.ErrDimensionMismatch when vector lengths are not
	// uniformly dim.
	Build(model string, dim int, chunks []domain.Chunk, vectors [][]float32) (VectorIndex, error)
}
