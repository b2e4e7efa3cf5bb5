package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// Ingestion errors.

	// ErrSourceNotFound indicates the source document path does not exist
	// or cannot be read.
	ErrSourceNotFound = errors.New("source document not found")

	// ErrParse indicates the source document could not be decoded.
	ErrParse = errors.New("source document cannot be parsed")

	// ErrInvalidConfig indicates bad chunking parameters
	// (e.g. overlap >= chunk size).
	ErrInvalidConfig = errors.New("invalid configuration")

	// Index errors.

	// ErrDimensionMismatch indicates embedding vectors of inconsistent
	// length, or a vector that does not match the index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidArgument indicates a malformed search argument (e.g. k <= 0).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexNotFound indicates no persisted index exists at the
	// configured location.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrCorruptIndex indicates the persisted index payload is unreadable
	// or internally inconsistent.
	ErrCorruptIndex = errors.New("vector index is corrupt")

	// ErrModelMismatch indicates the persisted index was built by a
	// different embedding model than the active one.
	ErrModelMismatch = errors.New("index embedding model mismatch")

	// Provider errors.

	// ErrEmbeddingUnavailable indicates the embedding provider could not
	// be created or reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM provider could not be created
	// or reached.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Query errors.

	// ErrGeneration indicates the external generation service failed or
	// timed out. Callers decide whether to retry; the core never does.
	ErrGeneration = errors.New("generation service failed")
)
