package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models installed on the Ollama server",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	models, err := svc.Models(cmd.Context())
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	if len(models) == 0 {
		cmd.Println("No models installed. Run 'ollama pull llama3.2:1b' to get started.")
		return nil
	}

	cmd.Println("Installed models:")
	for _, m := range models {
		cmd.Printf("  %-40s %10s  %s\n", m.Name, humanSize(m.Size), m.ModifiedAt)
	}

	return nil
}

// humanSize renders a byte count the way Ollama's own CLI does.
func humanSize(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
