package domain

import "time"

// Page is a single page of text extracted from a source document.
// Pages are produced once by the document loader, consumed immediately
// by the chunker, and never persisted.
type Page struct {
	// Index is the zero-based position of the page in the document.
	Index int

	// Text is the extracted page text, verbatim apart from encoding.
	Text string
}

// Chunk is the unit of embedding and retrieval. It is created at
// ingestion time and immutable thereafter; once indexed it is owned
// exclusively by the vector index.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string `json:"id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// SourcePage is the zero-based index of the page the chunk came from.
	// Set to -1 when chunking spans page boundaries.
	SourcePage int `json:"source_page"`

	// Start is the character offset of the chunk within its page.
	Start int `json:"start"`

	// End is the character offset one past the last character of the chunk.
	End int `json:"end"`
}

// RetrievedChunk is a chunk ranked by similarity to a query vector.
type RetrievedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity score to the query.
	Similarity float64
}

// Exchange is a recorded question/answer pair. The transcript is the
// only part of chat history that Legalis persists; user accounts and
// sessions are out of scope.
type Exchange struct {
	// ID is the unique identifier for the exchange.
	ID string

	// Question is the user's question verbatim.
	Question string

	// Answer is the generated answer verbatim.
	Answer string

	// ContextChunks is the number of retrieved chunks that grounded the answer.
	ContextChunks int

	// Model is the generation model that produced the answer.
	Model string

	// CreatedAt is when the exchange was recorded.
	CreatedAt time.Time
}
