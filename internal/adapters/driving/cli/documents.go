package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocuments,
}

func init() {
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	docs, err := svc.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	cmd.Printf("%d document(s):\n", len(docs))
	for _, doc := range docs {
		cmd.Printf("  %-40s %4d chunks  uploaded %s\n",
			doc.Filename, doc.Chunks, doc.UploadedAt.Local().Format("2006-01-02 15:04"))
	}

	return nil
}
