package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [pdf...]",
	Short: "Ingest PDF documents",
	Long: `Extract text from one or more PDFs, split it into chunks and index
them for question answering.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		receipt, err := svc.Upload(cmd.Context(), filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}

		cmd.Printf("Uploaded %s (%d chunks)\n", receipt.Filename, receipt.Chunks)
	}

	return nil
}
