// Package pdf provides a document loader for PDF files.
package pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader extracts page-ordered text from PDF documents.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the PDF at path and returns one Page per PDF page, in order.
// Page text is extracted verbatim; no normalisation beyond decoding.
func (l *Loader) Load(ctx context.Context, path string) (pages []domain.Page, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
	}

	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", domain.ErrParse, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages = make([]domain.Page, 0, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: page %d: %v", domain.ErrParse, path, i, err)
		}

		pages = append(pages, domain.Page{
			Index: len(pages),
			Text:  text,
		})
	}

	return pages, nil
}
