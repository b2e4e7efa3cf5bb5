package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askTopK     int
	askJSON     bool
	askIndexDir string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed corpus",
	Long: `Answers a question using only passages retrieved from the indexed
corpus. The exchange is recorded in the local history.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from settings)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full exchange as JSON")
	askCmd.Flags().StringVar(&askIndexDir, "index-dir", "", "index directory (default ~/.legalis/index)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if err := ensureQueryServices(askIndexDir, askTopK); err != nil {
		return err
	}

	exchange, err := askService.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(exchange, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal exchange: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(exchange.Answer)
	return nil
}
