package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/index/flat"
	"github.com/legalis-labs/legalis-cli/internal/chunker"
	"github.com/legalis-labs/legalis-cli/internal/core/services"
	"github.com/legalis-labs/legalis-cli/internal/loaders/pdf"
)

var (
	ingestChunkSize int
	ingestOverlap   int
	ingestCrossPage bool
	ingestIndexDir  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [corpus.pdf]",
	Short: "Index a PDF corpus for question answering",
	Long: `Loads a PDF corpus, splits it into overlapping chunks, embeds each
chunk with the configured embedding provider, and persists the vector
index. Questions are answered against the most recently ingested index.

Re-running ingest replaces the index atomically, so queries against the
old index keep working until the new one is complete.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "chunk window in characters (default from settings)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", 0, "characters shared between consecutive chunks (default from settings)")
	ingestCmd.Flags().BoolVar(&ingestCrossPage, "cross-page", false, "let chunk windows span page boundaries")
	ingestCmd.Flags().StringVar(&ingestIndexDir, "index-dir", "", "index directory (default ~/.legalis/index)")
	rootCmd.AddCommand(ingestCmd)
}

// acquireIngestLock serializes rebuilds against the same index
// directory. Both 'legalis ingest' and the serve --watch rebuild take
// it, so they fail fast instead of racing a swap.
func acquireIngestLock(indexDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(indexDir), 0o700); err != nil {
		return nil, fmt.Errorf("create index parent directory: %w", err)
	}
	lock := flock.New(indexDir + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another ingest is already running for %s", indexDir)
	}
	return lock, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	source := args[0]

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	chunkSize := settings.Chunking.Size
	if cmd.Flags().Changed("chunk-size") {
		chunkSize = ingestChunkSize
	}
	overlap := settings.Chunking.Overlap
	if cmd.Flags().Changed("overlap") {
		overlap = ingestOverlap
	}
	crossPage := settings.Chunking.CrossPage
	if cmd.Flags().Changed("cross-page") {
		crossPage = ingestCrossPage
	}

	splitter, err := chunker.New(
		chunker.WithChunkSize(chunkSize),
		chunker.WithOverlap(overlap),
		chunker.WithCrossPage(crossPage),
	)
	if err != nil {
		return err
	}

	indexDir := ingestIndexDir
	if indexDir == "" {
		indexDir, err = defaultIndexDir()
		if err != nil {
			return err
		}
	}

	embedder, err := ensureEmbedder()
	if err != nil {
		return err
	}

	// One ingest at a time per index directory.
	lock, err := acquireIngestLock(indexDir)
	if err != nil {
		return err
	}
	defer lock.Unlock() //nolint:errcheck // Best-effort release on exit.

	svc := services.NewIngestService(pdf.New(), splitter, embedder, flat.Factory{})

	count, err := svc.Ingest(cmd.Context(), source, indexDir)
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d chunks from %s\n", count, source)
	cmd.Printf("Index written to %s\n", indexDir)
	return nil
}
