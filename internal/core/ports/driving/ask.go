package driving

import (
	"context"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// RetrievalService returns the chunks most relevant to a query.
type RetrievalService interface {
	// Retrieve embeds the query and returns the top k chunks ranked by
	// similarity. An empty index yields an empty slice.
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)

	// Context returns the retrieval context for the query: the top k chunk
	// texts joined in rank order with a line-break separator. An empty
	// index yields an empty string.
	Context(ctx context.Context, query string, k int) (string, error)
}

// AskService answers a question grounded in the indexed corpus.
type AskService interface {
	// Ask retrieves context for the question, composes a grounding prompt,
	// and returns the generated answer.
	Ask(ctx context.Context, question string) (domain.Exchange, error)
}
