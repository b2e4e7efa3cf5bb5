package services

import (
	"context"
	"fmt"

	"github.com/legalis-labs/legalis-cli/internal/chunker"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
	"github.com/legalis-labs/legalis-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// embedBatchSize bounds how many chunk texts go to the embedder per call.
const embedBatchSize = 64

// IngestService builds a persisted vector index from a source document.
// The pipeline is load -> chunk -> embed -> build -> save; any failure
// aborts the run before the new index becomes visible.
type IngestService struct {
	loader   driven.DocumentLoader
	splitter *chunker.Chunker
	embedder driven.EmbeddingService
	factory  driven.IndexFactory
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	loader driven.DocumentLoader,
	splitter *chunker.Chunker,
	embedder driven.EmbeddingService,
	factory driven.IndexFactory,
) *IngestService {
	return &IngestService{
		loader:   loader,
		splitter: splitter,
		embedder: embedder,
		factory:  factory,
	}
}

// Ingest loads the document at sourcePath, chunks and embeds it, and
// persists the resulting index to indexDir. The save is atomic, so a
// failed run never replaces an existing index.
func (s *IngestService) Ingest(ctx context.Context, sourcePath, indexDir string) (int, error) {
	logger.Section("Ingestion")
	logger.Debug("Source: %s", sourcePath)
	logger.Debug("Index dir: %s", indexDir)

	pages, err := s.loader.Load(ctx, sourcePath)
	if err != nil {
		return 0, fmt.Errorf("load document: %w", err)
	}
	logger.Info("Loaded %d pages", len(pages))

	chunks := s.splitter.Split(pages)
	logger.Info("Split into %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return 0, fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)
		}
		vectors = append(vectors, batch...)
		logger.Debug("Embedded %d/%d chunks", end, len(texts))
	}

	index, err := s.factory.Build(s.embedder.ModelName(), s.embedder.Dimensions(), chunks, vectors)
	if err != nil {
		return 0, fmt.Errorf("build index: %w", err)
	}

	if err := index.Save(indexDir); err != nil {
		return 0, fmt.Errorf("save index: %w", err)
	}
	logger.Info("Index persisted to %s", indexDir)

	return len(chunks), nil
}
