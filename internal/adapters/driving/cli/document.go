package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the library",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show a document's details and content",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var rmCmd = &cobra.Command{
	Use:   "rm [doc-id]",
	Short: "Remove a document from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [doc-id]",
	Short: "Toggle a document's inclusion in retrieval",
	Long: `Flips the document's active flag. Inactive documents stay in the
library but are skipped during retrieval.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all documents from the library",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(clearCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("Library is empty. Add a document with 'corpus add <file>'.")
		return nil
	}

	cmd.Printf("Documents (%d):\n\n", len(docs))
	for _, doc := range docs {
		marker := " "
		if !doc.Active {
			marker = "-"
		}
		cmd.Printf("  [%s] %s  %s\n", marker, doc.ID, doc.Name)
		cmd.Printf("       %d bytes, %d chunks, added %s\n",
			doc.SizeBytes, len(doc.Chunks), doc.AddedAt.Format("2006-01-02 15:04"))
	}
	cmd.Println()
	cmd.Println("Documents marked '-' are inactive and excluded from retrieval.")
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Name:     %s\n", doc.Name)
	cmd.Printf("Type:     %s\n", doc.MIMEType)
	cmd.Printf("Size:     %d bytes\n", doc.SizeBytes)
	cmd.Printf("Chunks:   %d\n", len(doc.Chunks))
	cmd.Printf("Added:    %s\n", doc.AddedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Active:   %t\n", doc.Active)
	cmd.Println()
	cmd.Println(doc.Content)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing document: %w", err)
	}

	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Toggle(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	state := "inactive"
	if doc.Active {
		state = "active"
	}
	cmd.Printf("Document %q is now %s\n", doc.Name, state)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if !clearForce {
		cmd.Println("This removes every document in the library. Re-run with --yes to confirm.")
		return nil
	}

	if err := libraryService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing library: %w", err)
	}

	cmd.Println("Library cleared.")
	return nil
}
