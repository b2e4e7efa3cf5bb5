// Package domain defines the core business entities for Legalis.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A single page of text extracted from a source document
//   - Chunk: The unit of embedding and retrieval
//   - RetrievedChunk: A chunk ranked by similarity to a query
//   - Exchange: A recorded question/answer pair
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
