// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentLoader: Extracts page-ordered text from a source document
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores chunk vectors and serves similarity search
//   - LLMService: Generates grounded answers
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Persists the question/answer transcript. Without it,
//     exchanges are simply not recorded.
//   - ConfigStore: Application configuration. Without it, defaults apply.
//   - PromptStore: User-editable prompt templates. Without it, the
//     built-in templates are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
