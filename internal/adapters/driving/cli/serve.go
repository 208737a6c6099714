package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API the web frontend talks to.

The listen address comes from the config file (server.addr, default :8000)
or the STUDY_ASSISTANT_ADDR environment variable. Stop with ctrl+c.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(svc, runtimeSettings.Server.Addr)
	cmd.Printf("Study assistant API listening on http://localhost%s\n", server.Addr())

	return server.Run(ctx)
}
