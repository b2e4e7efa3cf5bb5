package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
	"github.com/legalis-labs/legalis-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the number of chunks retrieved when callers pass k <= 0.
const DefaultTopK = 5

// RetrievalService returns the chunks most relevant to a query.
// The index snapshot is injected at construction and treated as
// read-only; swapping snapshots is the caller's concern.
type RetrievalService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, index driven.VectorIndex) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
	}
}

// Retrieve embeds the query and returns the top k chunks ranked by
// similarity. k <= 0 falls back to DefaultTopK.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q, k=%d", query, k)

	if s.index.Len() == 0 {
		logger.Debug("Index is empty, returning no chunks")
		return []domain.RetrievedChunk{}, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	return hits, nil
}

// Context returns the top k chunk texts joined in rank order with a
// line-break separator. An empty index yields an empty string.
func (s *RetrievalService) Context(ctx context.Context, query string, k int) (string, error) {
	hits, err := s.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}

	texts := make([]string, len(hits))
	for i := range hits {
		texts[i] = hits[i].Chunk.Text
	}
	return strings.Join(texts, "\n"), nil
}
