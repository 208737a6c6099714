package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all uploaded documents",
	Long: `Delete every stored chunk and upload record. The next question will
answer with "No documents found" until something is uploaded again.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		cmd.Print("This deletes every stored document. Continue? [y/N]: ")

		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			cmd.Println()
			cmd.Println("Aborted.")
			return nil
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	if err := svc.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Println("Database cleared successfully")
	return nil
}
