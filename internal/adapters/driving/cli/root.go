// Package cli provides the cobra command tree for the corpus binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/corpus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/corpus-cli/internal/chunker"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/core/services"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// version is the corpus CLI version, overridable at build time.
var version = "0.1.0"

// Services used by the commands. Wired in initServices; tests inject
// mocks directly.
var (
	libraryService   driving.LibraryService
	retrievalService driving.RetrievalService
	blobStore        *sqlite.Store
)

// Persistent flags.
var (
	verboseFlag bool
	configDir   string
	dataDir     string
)

var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Local document retrieval for LLM prompts",
	Long: `Corpus maintains a local library of text documents, splits them into
overlapping chunks at ingestion, and serves ranked, formatted context
blocks ready to prepend to an LLM prompt.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.corpus)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.corpus/data)")
}

// Execute runs the root command.
func Execute() error {
	defer closeStores()
	return rootCmd.Execute()
}

// initServices wires the real adapters and services. It is a no-op when
// the services are already set, which is how tests inject mocks.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if libraryService != nil && retrievalService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.GetBool(configfile.KeyVerbose) {
		logger.SetVerbose(true)
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.GetString(configfile.KeyDataDir)
	}
	blobStore, err = sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	logger.Debug("Using document store at %s", blobStore.Path())

	var opts []chunker.Option
	if size := cfg.GetInt(configfile.KeyChunkSize); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt(configfile.KeyChunkOverlap); overlap > 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}

	library, err := services.NewLibraryService(cmd.Context(), blobStore, chunker.New(opts...))
	if err != nil {
		return err
	}

	libraryService = library
	retrievalService = services.NewRetrievalService(library)
	return nil
}

// closeStores releases the blob store if it was opened.
func closeStores() {
	if blobStore != nil {
		_ = blobStore.Close()
	}
}
