package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/index/flat"
	"github.com/legalis-labs/legalis-cli/internal/adapters/driving/httpapi"
	"github.com/legalis-labs/legalis-cli/internal/chunker"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
	"github.com/legalis-labs/legalis-cli/internal/core/services"
	"github.com/legalis-labs/legalis-cli/internal/loaders/pdf"
	"github.com/legalis-labs/legalis-cli/internal/watcher"
)

var (
	serveAddr     string
	serveIndexDir string
	serveWatch    bool
	serveSource   string
	serveDebounce time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question answering HTTP API",
	Long: `Starts an HTTP server exposing the ask and retrieve endpoints.

With --watch, the source corpus is monitored and the index is rebuilt
automatically when the file changes. Queries keep using the previous
index until the rebuilt one is ready.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveIndexDir, "index-dir", "", "index directory (default ~/.legalis/index)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index when the source corpus changes")
	serveCmd.Flags().StringVar(&serveSource, "source", "", "source corpus to watch (required with --watch)")
	serveCmd.Flags().DurationVar(&serveDebounce, "debounce", watcher.DefaultDebounce, "delay before rebuilding after a change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveWatch && serveSource == "" {
		return errors.New("--watch requires --source")
	}

	indexDir := serveIndexDir
	if indexDir == "" {
		dir, err := defaultIndexDir()
		if err != nil {
			return err
		}
		indexDir = dir
	}

	embedder, err := ensureEmbedder()
	if err != nil {
		return err
	}

	index, err := loadIndex(embedder, indexDir)
	if err != nil {
		return err
	}

	var swap *watcher.SwapIndex
	served := index
	if serveWatch {
		swap = watcher.NewSwapIndex(index)
		served = swap
	}

	if err := wireQueryServices(embedder, served, 0); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		rebuild, err := newRebuildFunc(embedder, swap, indexDir)
		if err != nil {
			return err
		}
		w := watcher.New(serveSource, serveDebounce, rebuild)
		go func() {
			if err := w.Run(ctx); err != nil {
				cmd.PrintErrf("watcher stopped: %v\n", err)
			}
		}()
	}

	server := httpapi.NewServer(httpapi.Config{Addr: serveAddr}, askService, retrievalService)
	cmd.Printf("Legalis API listening on %s\n", serveAddr)
	return server.Run(ctx)
}

// newRebuildFunc builds the watch rebuild step: re-ingest the source,
// reload the persisted index, and swap it in atomically.
func newRebuildFunc(embedder driven.EmbeddingService, swap *watcher.SwapIndex, indexDir string) (watcher.RebuildFunc, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	splitter, err := chunker.New(
		chunker.WithChunkSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
		chunker.WithCrossPage(settings.Chunking.CrossPage),
	)
	if err != nil {
		return nil, err
	}

	ingester := services.NewIngestService(pdf.New(), splitter, embedder, flat.Factory{})

	return func(ctx context.Context) error {
		lock, err := acquireIngestLock(indexDir)
		if err != nil {
			return err
		}
		defer lock.Unlock() //nolint:errcheck // Best-effort release on exit.

		if _, err := ingester.Ingest(ctx, serveSource, indexDir); err != nil {
			return err
		}

		rebuilt, err := flat.Load(indexDir)
		if err != nil {
			return err
		}
		if err := rebuilt.ValidateModel(embedder.ModelName(), embedder.Dimensions()); err != nil {
			return err
		}

		swap.Swap(rebuilt)
		return nil
	}, nil
}
