// Package flat provides an exact nearest-neighbour vector index held in
// memory and persisted to a directory. The index is an immutable snapshot:
// built or loaded once, then safe for concurrent reads without locking.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Ensure Factory implements the interface.
var _ driven.IndexFactory = Factory{}

// Factory builds flat index snapshots for core services.
type Factory struct{}

// Build creates an index from parallel chunk and vector slices.
func (Factory) Build(model string, dim int, chunks []domain.Chunk, vectors [][]float32) (driven.VectorIndex, error) {
	return Build(model, dim, chunks, vectors)
}

// Index maps chunk ordinals to (vector, chunk) pairs and serves cosine
// similarity search by brute-force scan. Exact search keeps results
// reproducible; the corpus is a single statute, not a web crawl.
type Index struct {
	model   string
	dim     int
	chunks  []domain.Chunk
	vectors []float32 // row-major, len = len(chunks)*dim
	norms   []float64 // precomputed L2 norms, one per chunk
}

// Build creates an index from parallel chunk and vector slices.
// The model name and dimensionality are recorded so that a later Load can
// detect embedder mismatches. Returns domain.ErrInvalidArgument when the
// slice lengths differ and domain.ErrDimensionMismatch when any vector's
// length is not dim.
func Build(model string, dim int, chunks []domain.Chunk, vectors [][]float32) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidArgument, dim)
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors",
			domain.ErrInvalidArgument, len(chunks), len(vectors))
	}

	ix := &Index{
		model:   model,
		dim:     dim,
		chunks:  make([]domain.Chunk, len(chunks)),
		vectors: make([]float32, 0, len(chunks)*dim),
		norms:   make([]float64, len(chunks)),
	}
	copy(ix.chunks, chunks)

	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(vec), dim)
		}
		ix.vectors = append(ix.vectors, vec...)
		ix.norms[i] = norm(vec)
	}

	return ix, nil
}

// Search returns the k chunks nearest to the query vector, ranked by
// descending cosine similarity. Ties preserve insertion order.
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}
	if len(ix.chunks) == 0 {
		return []domain.RetrievedChunk{}, nil
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), ix.dim)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryNorm := norm(query)

	hits := make([]domain.RetrievedChunk, len(ix.chunks))
	for i := range ix.chunks {
		row := ix.vectors[i*ix.dim : (i+1)*ix.dim]
		hits[i] = domain.RetrievedChunk{
			Chunk:      ix.chunks[i],
			Similarity: cosine(query, queryNorm, row, ix.norms[i]),
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// ModelName returns the embedding model that produced the index vectors.
func (ix *Index) ModelName() string {
	return ix.model
}

// Dimensions returns the vector dimensionality of the index.
func (ix *Index) Dimensions() int {
	return ix.dim
}

// ValidateModel checks the index against the active embedder configuration.
// Returns domain.ErrModelMismatch when the model name or dimensionality of
// the persisted index does not match.
func (ix *Index) ValidateModel(model string, dim int) error {
	if ix.model != model || ix.dim != dim {
		return fmt.Errorf("%w: index built with %s/%d, active embedder is %s/%d",
			domain.ErrModelMismatch, ix.model, ix.dim, model, dim)
	}
	return nil
}

// norm computes the L2 norm of v.
func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine computes cosine similarity given precomputed norms.
// Zero-norm vectors score zero against everything.
func cosine(a []float32, normA float64, b []float32, normB float64) float64 {
	den := normA * normB
	if den == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / den
}
