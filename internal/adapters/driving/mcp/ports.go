package mcp

import (
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions grounded in the indexed corpus.
	Ask driving.AskService

	// Retrieval returns ranked chunks for a query.
	Retrieval driving.RetrievalService

	// History provides access to past exchanges. Optional.
	History driven.HistoryStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// History is optional
	return nil
}
