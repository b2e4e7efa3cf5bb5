package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the legal question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer        string `json:"answer"`
	ContextChunks int    `json:"context_chunks"`
	Model         string `json:"model,omitempty"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the query to find relevant excerpts"`
	K     int    `json:"k,omitempty" jsonschema:"maximum number of excerpts to return (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []RetrievedChunkOutput `json:"chunks"`
	Count  int                    `json:"count"`
}

// RetrievedChunkOutput represents a single retrieved excerpt.
type RetrievedChunkOutput struct {
	Text       string  `json:"text"`
	SourcePage int     `json:"source_page"`
	Similarity float64 `json:"similarity"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a legal question grounded in the indexed corpus",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the corpus excerpts most relevant to a query",
	}, s.handleRetrieve)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	exchange, err := s.ports.Ask.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:        exchange.Answer,
		ContextChunks: exchange.ContextChunks,
		Model:         exchange.Model,
	}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	hits, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.K)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]RetrievedChunkOutput, len(hits)),
		Count:  len(hits),
	}
	for i := range hits {
		output.Chunks[i] = RetrievedChunkOutput{
			Text:       hits[i].Chunk.Text,
			SourcePage: hits[i].Chunk.SourcePage,
			Similarity: hits[i].Similarity,
		}
	}

	return nil, output, nil
}
