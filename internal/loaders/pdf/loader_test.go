package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	loader := New()
	require.NotNil(t, loader)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := New()

	pages, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Nil(t, pages)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestLoad_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o600))

	loader := New()
	pages, err := loader.Load(context.Background(), path)
	assert.Nil(t, pages)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestLoad_TruncatedPDF(t *testing.T) {
	// A valid header followed by garbage must surface as a parse error,
	// never a panic.
	path := filepath.Join(t.TempDir(), "truncated.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\ngarbage"), 0o600))

	loader := New()
	pages, err := loader.Load(context.Background(), path)
	assert.Nil(t, pages)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.DocumentLoader = (*Loader)(nil)
}
