// Package chunker splits page text into overlapping fixed-size chunks.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 100

// chunkNamespace seeds deterministic chunk IDs so that rebuilding the
// index from identical input produces identical identifiers.
var chunkNamespace = uuid.MustParse("8a6e1a94-6b3f-4f0e-9c1d-2e5b7a4d9f31")

// Chunker splits pages into fixed-size chunks with overlap.
// Boundaries are computed per page unless cross-page mode is enabled.
type Chunker struct {
	chunkSize int
	overlap   int
	crossPage bool
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// WithCrossPage makes chunk windows span page boundaries. Pages are
// concatenated with a line break and SourcePage is -1 on every chunk.
func WithCrossPage(enabled bool) Option {
	return func(c *Chunker) {
		c.crossPage = enabled
	}
}

// New creates a chunker with the given options.
// Returns domain.ErrInvalidConfig when chunkSize <= 0, overlap < 0,
// or overlap >= chunkSize.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, c.chunkSize)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrInvalidConfig, c.overlap)
	}
	if c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfig, c.overlap, c.chunkSize)
	}

	return c, nil
}

// Split chunks the given pages. Deterministic: the same pages and
// parameters always yield the same chunks, including IDs.
func (c *Chunker) Split(pages []domain.Page) []domain.Chunk {
	if c.crossPage {
		return c.splitJoined(pages)
	}

	var chunks []domain.Chunk
	for _, page := range pages {
		chunks = append(chunks, c.splitText(page.Text, page.Index)...)
	}
	return chunks
}

// splitJoined concatenates all pages and chunks across page boundaries.
func (c *Chunker) splitJoined(pages []domain.Page) []domain.Chunk {
	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.Text
	}
	return c.splitText(strings.Join(texts, "\n"), -1)
}

// splitText slides a window of chunkSize characters over text, advancing
// by chunkSize-overlap each step. The final partial window is emitted
// even when shorter than chunkSize. Offsets count runes, not bytes.
func (c *Chunker) splitText(text string, sourcePage int) []domain.Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := c.chunkSize - c.overlap

	chunks := make([]domain.Chunk, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		content := string(runes[start:end])
		chunks = append(chunks, domain.Chunk{
			ID:         chunkID(sourcePage, start, end, content),
			Text:       content,
			SourcePage: sourcePage,
			Start:      start,
			End:        end,
		})

		if end == len(runes) {
			break
		}
	}

	return chunks
}

// chunkID derives a stable identifier from the chunk's position and content.
func chunkID(page, start, end int, text string) string {
	name := fmt.Sprintf("%d:%d:%d:%s", page, start, end, text)
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}
