package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/core/services"
)

var (
	contextTopK int
	contextJSON bool
)

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Retrieve formatted context for a query",
	Long: `Scores every chunk of every active document against the query and
prints the top-ranked chunks as a delimited context block, ready to
prepend to an LLM prompt. Use --json for the raw scored chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().IntVarP(&contextTopK, "top-k", "k", services.DefaultTopK, "maximum number of chunks")
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "output scored chunks as JSON")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	chunks, err := retrievalService.Retrieve(cmd.Context(), query, contextTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if contextJSON {
		data, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal chunks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	out := retrievalService.FormatContext(chunks)
	if out == "" {
		cmd.Println("No matching chunks found.")
		return nil
	}

	cmd.Println(out)
	return nil
}
