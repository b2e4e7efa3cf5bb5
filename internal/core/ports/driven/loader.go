package driven

import (
	"context"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// DocumentLoader extracts page-ordered text from a source document.
// Each format (PDF, plain text) has its own implementation.
type DocumentLoader interface {
	// Load reads the document at path and returns its pages in order.
	// Returns domain.ErrSourceNotFound if the path does not exist or is
	// unreadable, and domain.ErrParse if the document cannot be decoded.
	Load(ctx context.Context, path string) ([]domain.Page, error)
}
