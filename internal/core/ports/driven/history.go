package driven

import (
	"context"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// HistoryStore persists the question/answer transcript.
// This is an optional service - when nil, exchanges are not recorded.
type HistoryStore interface {
	// Record appends an exchange to the transcript.
	Record(ctx context.Context, ex domain.Exchange) error

	// Recent returns up to limit exchanges, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Exchange, error)

	// Close releases resources.
	Close() error
}
