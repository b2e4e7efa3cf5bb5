package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent question and answer exchanges",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of exchanges")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output exchanges as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := ensureHistoryStore()
	if err != nil {
		return err
	}

	exchanges, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(exchanges, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(exchanges) == 0 {
		cmd.Println("No exchanges recorded yet.")
		return nil
	}

	for i := range exchanges {
		ex := exchanges[i]
		cmd.Printf("[%s] %s\n", ex.CreatedAt.Local().Format("2006-01-02 15:04"), ex.Question)
		cmd.Printf("  %s\n", ex.Answer)
		cmd.Printf("  (%d chunks, %s)\n", ex.ContextChunks, ex.Model)
		cmd.Println()
	}
	return nil
}
