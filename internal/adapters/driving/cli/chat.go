package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/legalis-labs/legalis-cli/internal/adapters/driving/tui"
)

var chatIndexDir string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat TUI",
	Long: `Launch an interactive terminal chat for asking questions about the
indexed corpus.

Controls:
  Enter         - Ask the typed question
  Ctrl+C, Esc   - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatIndexDir, "index-dir", "", "index directory (default ~/.legalis/index)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	// Panic recovery so a TUI crash still prints a usable stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureQueryServices(chatIndexDir, 0); err != nil {
		return err
	}

	return tui.Run(askService)
}
