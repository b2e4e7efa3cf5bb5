package driving

import "context"

// IngestService builds a persisted vector index from a source document.
type IngestService interface {
	// Ingest loads the document at sourcePath, chunks and embeds it, and
	// persists the resulting index to indexDir with atomic swap semantics.
	// Re-running against the same indexDir overwrites the previous index.
	// Returns the number of chunks indexed.
	Ingest(ctx context.Context, sourcePath, indexDir string) (int, error)
}
