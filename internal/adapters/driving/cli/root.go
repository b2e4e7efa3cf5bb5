// Package cli implements the legalis command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/ai"
	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/config/file"
	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/index/flat"
	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/storage/sqlite"
	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
	"github.com/legalis-labs/legalis-cli/internal/core/services"
	"github.com/legalis-labs/legalis-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. Wired lazily on first use so commands
// that don't need AI providers (version, settings) work unconfigured.
// Tests replace these with mocks.
var (
	configStore      driven.ConfigStore
	settingsService  driving.SettingsService
	askService       driving.AskService
	retrievalService driving.RetrievalService
	historyStore     driven.HistoryStore
	promptStore      driven.PromptStore
)

// cleanups holds resource releases registered during wiring, run after
// every command.
var cleanups []func()

var rootCmd = &cobra.Command{
	Use:   "legalis",
	Short: "Legal question answering over an indexed statute corpus",
	Long: `Legalis answers legal questions grounded in an indexed PDF corpus,
such as the Nepal Electronic Transactions Act.

Ingest a PDF once, then ask questions from the command line, the chat
TUI, the HTTP API, or an MCP client. Answers are generated only from
retrieved passages of the indexed corpus.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Local .env beats nothing, never beats the real environment.
		_ = godotenv.Load()
		logger.SetVerbose(verbose)
		return initSettings()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		for _, fn := range cleanups {
			fn()
		}
		cleanups = nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
}

// Execute runs the root command.
func Execute(ver string) error {
	if ver != "" {
		version = ver
	}
	return rootCmd.Execute()
}

// defaultIndexDir returns the default persisted index location.
func defaultIndexDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".legalis", "index"), nil
}

// initSettings wires the config store and settings service. These are
// cheap and needed by nearly every command.
func initSettings() error {
	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = store
	settingsService = services.NewSettingsService(configStore, ai.NewConfigValidator())
	return nil
}

// ensureEmbedder creates and validates the configured embedding service.
func ensureEmbedder() (driven.EmbeddingService, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, errors.New("embedding provider is not configured; run 'legalis settings embedding'")
	}
	cleanups = append(cleanups, func() { embedder.Close() })
	return embedder, nil
}

// loadIndex loads the persisted index and checks it against the active
// embedding model.
func loadIndex(embedder driven.EmbeddingService, indexDir string) (driven.VectorIndex, error) {
	idx, err := flat.Load(indexDir)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return nil, fmt.Errorf("%w at %s; run 'legalis ingest <corpus.pdf>' first", err, indexDir)
		}
		return nil, err
	}

	if err := idx.ValidateModel(embedder.ModelName(), embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("%w; re-run 'legalis ingest' with the current embedding model", err)
	}
	return idx, nil
}

// ensureHistoryStore opens the SQLite transcript store.
func ensureHistoryStore() (driven.HistoryStore, error) {
	if historyStore != nil {
		return historyStore, nil
	}

	store, err := sqlite.NewHistoryStore("")
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	historyStore = store
	cleanups = append(cleanups, func() {
		store.Close()
		historyStore = nil
	})
	return historyStore, nil
}

// ensurePromptStore opens the on-disk prompt template store.
func ensurePromptStore() (driven.PromptStore, error) {
	if promptStore != nil {
		return promptStore, nil
	}

	store, err := file.NewPromptStore("")
	if err != nil {
		return nil, fmt.Errorf("open prompt store: %w", err)
	}
	promptStore = store
	return promptStore, nil
}

// wireQueryServices builds the retrieval and answer services on top of
// an already loaded index. topK <= 0 falls back to the configured value.
func wireQueryServices(embedder driven.EmbeddingService, index driven.VectorIndex, topK int) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		return err
	}
	if llm == nil {
		return errors.New("LLM provider is not configured; run 'legalis settings llm'")
	}
	cleanups = append(cleanups, func() { llm.Close() })

	if topK <= 0 {
		topK = settings.Retrieval.TopK
	}

	history, err := ensureHistoryStore()
	if err != nil {
		return err
	}
	prompts, err := ensurePromptStore()
	if err != nil {
		return err
	}

	retrievalService = services.NewRetrievalService(embedder, index)
	askService = services.NewAnswerService(retrievalService, llm,
		services.WithHistory(history),
		services.WithPrompts(prompts),
		services.WithTopK(topK),
	)
	return nil
}

// ensureQueryServices wires everything needed to answer a question.
func ensureQueryServices(indexDir string, topK int) error {
	if askService != nil {
		return nil
	}

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

	return wireQueryServices(embedder, index, topK)
}
