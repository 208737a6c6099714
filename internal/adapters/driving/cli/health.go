package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether Ollama is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	health := svc.Health(cmd.Context())

	cmd.Printf("Status: %s\n", health.Status)
	cmd.Printf("Ollama: %s\n", health.Ollama)

	if health.Status != domain.HealthStatusHealthy {
		cmd.Printf("Error:  %s\n", health.Error)
		return nil
	}

	if health.ModelAvailable {
		cmd.Printf("Default model: %s\n", health.DefaultModel)
	} else {
		cmd.Printf("Default model: %s (not installed - run 'ollama pull %s')\n",
			health.DefaultModel, health.DefaultModel)
	}

	cmd.Printf("Models installed: %d\n", len(health.Models))
	if len(health.SmallModels) > 0 {
		cmd.Printf("Small models: %s\n", strings.Join(health.SmallModels, ", "))
	}

	return nil
}
