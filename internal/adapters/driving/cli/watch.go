package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Auto-ingest PDFs dropped into a directory",
	Long: `Watch a directory (default: the current one) and ingest every PDF
that appears or changes. PDFs already present are ingested on start.
Stop with ctrl+c.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for PDFs (ctrl+c to stop)\n", dir)

	err = watcher.New(svc, watcher.Config{}).Watch(ctx, dir)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
