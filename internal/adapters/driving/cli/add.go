package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addName string
	addMIME string
)

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a document to the library",
	Long: `Reads a text file, splits it into chunks, and stores it in the library.
Binary formats (PDF, DOCX) are rejected; only text files are supported.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "document name (default: file basename)")
	addCmd.Flags().StringVar(&addMIME, "type", "", "MIME type (default: detected from extension)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	path := args[0]

	if libraryService == nil {
		return errors.New("library service not configured")
	}

	// Read failures propagate unchanged; nothing is committed.
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := addName
	if name == "" {
		name = filepath.Base(path)
	}

	mimeType := addMIME
	if mimeType == "" {
		mimeType = detectMIMEType(path)
	}

	doc, err := libraryService.Add(cmd.Context(), content, name, mimeType)
	if err != nil {
		return fmt.Errorf("adding document: %w", err)
	}

	cmd.Printf("Added %q (%s)\n", doc.Name, doc.ID)
	cmd.Printf("  %d bytes, %d chunks\n", doc.SizeBytes, len(doc.Chunks))
	return nil
}

// detectMIMEType resolves a MIME type from the file extension,
// defaulting to text/plain.
func detectMIMEType(path string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		return "text/plain"
	}
	// Strip parameters such as "; charset=utf-8".
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}
